package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/applkanji/website/util"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	DefaultSyncInterval = time.Hour

	syncTimeout = 30 * time.Minute
)

// ObjectStore lists and downloads the remote image objects.
type ObjectStore interface {
	List(ctx context.Context) ([]string, error)
	Download(ctx context.Context, key string, w io.WriterAt) error
}

// S3Store is an ObjectStore backed by an S3 bucket.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store loads the shared AWS configuration, using profile when set.
func NewS3Store(ctx context.Context, profile, bucket string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("no s3 bucket provided")
	}

	var opts []func(*config.LoadOptions) error
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	ctxCfg, cancelCfg := context.WithTimeout(ctx, 3*time.Second)
	cfg, err := config.LoadDefaultConfig(ctxCfg, opts...)
	cancelCfg()
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
	}, nil
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3 objects in %s: %w", s.bucket, err)
		}
		for object := range slices.Values(page.Contents) {
			keys = append(keys, aws.ToString(object.Key))
		}
	}
	return keys, nil
}

func (s *S3Store) Download(ctx context.Context, key string, w io.WriterAt) error {
	downloader := manager.NewDownloader(s.client)
	if _, err := downloader.Download(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("unable to download object from s3, %s, %w", key, err)
	}
	return nil
}

// RemoteSync mirrors the image objects of a store into a library's
// directory. Local images that are not in the store are removed.
type RemoteSync struct {
	store    ObjectStore
	library  *Library
	interval time.Duration
}

func NewRemoteSync(store ObjectStore, library *Library, interval time.Duration) *RemoteSync {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &RemoteSync{
		store:    store,
		library:  library,
		interval: interval,
	}
}

func (r *RemoteSync) getRemoteFiles(ctx context.Context) (mapset.Set[string], error) {
	keys, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}

	remoteFiles := mapset.NewSet[string]()
	for key := range slices.Values(keys) {
		if !util.IsImage(key) {
			continue
		}
		if name, ok := cleanName(key); ok && name == key {
			remoteFiles.Add(name)
			continue
		}
		slog.Warn("skipping remote object with unsafe key", "key", key)
	}

	if remoteFiles.Cardinality() == 0 {
		slog.Info("no remote files found")
	}
	return remoteFiles, nil
}

func (r *RemoteSync) getLocalFiles() (mapset.Set[string], error) {
	localFiles, err := scanDir(r.library.Dir())
	if errors.Is(err, fs.ErrNotExist) {
		return mapset.NewSet[string](), nil
	}
	return localFiles, err
}

// Sync downloads missing objects and deletes local files that are gone from
// the store. It reports whether anything changed.
func (r *RemoteSync) Sync(ctx context.Context) (bool, error) {
	localFiles, err := r.getLocalFiles()
	if err != nil {
		return false, fmt.Errorf("unable to read directory, %s, %w", r.library.Dir(), err)
	}

	remoteFiles, err := r.getRemoteFiles(ctx)
	if err != nil {
		return false, err
	}

	changed := false
	toDelete := localFiles.Difference(remoteFiles).ToSlice()
	toDownload := remoteFiles.Difference(localFiles).ToSlice()
	slices.Sort(toDelete)
	slices.Sort(toDownload)

	if len(toDelete) > 0 {
		slog.Info("deleting local files", "count", len(toDelete), "names", toDelete)
		for name := range slices.Values(toDelete) {
			if err := os.Remove(r.localPath(name)); err != nil {
				slog.Warn("unable to remove local file", "name", name, "error", err)
				continue
			}
			changed = true
		}
	}
	if len(toDownload) > 0 {
		slog.Info("adding files", "count", len(toDownload), "names", toDownload)
		for name := range slices.Values(toDownload) {
			if err := r.download(ctx, name); err != nil {
				slog.Warn("error while downloading object", "name", name, "error", err)
				continue
			}
			changed = true
		}
	}

	if changed {
		r.library.Rescan()
	}
	return changed, nil
}

func (r *RemoteSync) localPath(name string) string {
	return filepath.Join(r.library.Dir(), filepath.FromSlash(name))
}

// download writes to a temporary file first so a partial object is never
// picked up by a library scan.
func (r *RemoteSync) download(ctx context.Context, name string) error {
	dest := r.localPath(name)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}

	f, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("unable to create file for download, %s, %w", name, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := r.store.Download(ctx, name, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, dest)
}

// Run syncs immediately and then on every interval until ctx is done.
func (r *RemoteSync) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		syncCtx, cancel := context.WithTimeout(ctx, syncTimeout)
		if _, err := r.Sync(syncCtx); err != nil && ctx.Err() == nil {
			slog.Warn("error while syncing with remote", "error", err)
		}
		cancel()

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
