// Package assets serves the site's image files from disk and keeps them in
// sync with an optional S3 bucket.
package assets

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/applkanji/website/util"
	mapset "github.com/deckarep/golang-set/v2"
)

const (
	// URLPrefix is the route under which library files are served.
	URLPrefix = "/assets/"

	DefaultScanInterval = time.Hour
)

// Library tracks the image files below a directory. Names are slash
// separated paths relative to that directory, e.g. "team/hamza.png".
type Library struct {
	dir      string
	interval time.Duration

	mu           sync.RWMutex
	trackedFiles mapset.Set[string]

	// Updated receives a value after a scan that changed the file set.
	Updated chan bool
}

// NewLibrary scans dir. A missing directory is treated as empty so the site
// still starts; every image then resolves to the placeholder.
func NewLibrary(dir string, interval time.Duration) (*Library, error) {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	l := &Library{
		dir:          dir,
		interval:     interval,
		trackedFiles: mapset.NewSet[string](),
		Updated:      make(chan bool, 1),
	}

	currentFiles, err := scanDir(dir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		slog.Warn("asset directory does not exist", "path", dir)
		currentFiles = mapset.NewSet[string]()
	}
	l.trackedFiles = currentFiles
	return l, nil
}

func scanDir(dir string) (mapset.Set[string], error) {
	files := mapset.NewSet[string]()
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !util.IsImage(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		files.Add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Dir is the directory backing the library.
func (l *Library) Dir() string {
	return l.dir
}

// Len is the number of tracked files.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trackedFiles.Cardinality()
}

func (l *Library) Has(name string) bool {
	name, ok := cleanName(name)
	if !ok {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trackedFiles.Contains(name)
}

// Resolve returns the URL of name, or PlaceholderURL when the library does
// not have it.
func (l *Library) Resolve(name string) string {
	clean, ok := cleanName(name)
	if !ok || !l.Has(clean) {
		return PlaceholderURL
	}
	return URLPrefix + clean
}

// Path returns the file path of a tracked name.
func (l *Library) Path(name string) (string, bool) {
	clean, ok := cleanName(name)
	if !ok || !l.Has(clean) {
		return "", false
	}
	return filepath.Join(l.dir, filepath.FromSlash(clean)), true
}

func cleanName(name string) (string, bool) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", false
	}
	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return "", false
	}
	return clean, true
}

// Rescan refreshes the tracked files and signals Updated when they changed.
func (l *Library) Rescan() {
	currentFiles, err := scanDir(l.dir)
	if err != nil {
		slog.Warn("error reading asset directory", "path", l.dir, "error", err)
		return
	}

	l.mu.Lock()
	added := currentFiles.Difference(l.trackedFiles).ToSlice()
	removed := l.trackedFiles.Difference(currentFiles).ToSlice()
	l.trackedFiles = currentFiles
	l.mu.Unlock()

	if len(added) == 0 && len(removed) == 0 {
		return
	}
	slog.Info("asset library changed", "added", len(added), "removed", len(removed), "total", currentFiles.Cardinality())

	select {
	case l.Updated <- true:
	default:
		// Channel is full, skip
	}
}

// Run rescans the directory on every interval until ctx is done.
func (l *Library) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Rescan()
		}
	}
}
