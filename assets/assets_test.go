package assets

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestLibraryScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.svg", "<svg/>")
	writeFile(t, dir, "team/hamza.png", "png")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, ".hidden/x.png", "ignored")

	lib, err := NewLibrary(dir, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, lib.Len())
	assert.True(t, lib.Has("team/hamza.png"))
	assert.True(t, lib.Has("/logo.svg"))
	assert.False(t, lib.Has("notes.txt"))
	assert.False(t, lib.Has("../etc/passwd"))

	assert.Equal(t, "/assets/team/hamza.png", lib.Resolve("team/hamza.png"))
	assert.Equal(t, PlaceholderURL, lib.Resolve("team/missing.png"))
	assert.Equal(t, PlaceholderURL, lib.Resolve(""))

	p, ok := lib.Path("team/hamza.png")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "team", "hamza.png"), p)
	_, ok = lib.Path("../../secret.png")
	assert.False(t, ok)
}

func TestLibraryMissingDirectory(t *testing.T) {
	lib, err := NewLibrary(filepath.Join(t.TempDir(), "nope"), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 0, lib.Len())
	assert.Equal(t, PlaceholderURL, lib.Resolve("team/hamza.png"))
}

func TestLibraryRescanSignalsChanges(t *testing.T) {
	dir := t.TempDir()
	lib, err := NewLibrary(dir, time.Minute)
	require.NoError(t, err)

	lib.Rescan()
	select {
	case <-lib.Updated:
		t.Fatal("unexpected update without changes")
	default:
	}

	writeFile(t, dir, "team/saif.jpeg", "jpeg")
	lib.Rescan()
	select {
	case <-lib.Updated:
	default:
		t.Fatal("expected update after adding a file")
	}
	assert.True(t, lib.Has("team/saif.jpeg"))
}

func TestLibraryRunStops(t *testing.T) {
	dir := t.TempDir()
	lib, err := NewLibrary(dir, 5*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		lib.Run(ctx)
		close(done)
	}()

	writeFile(t, dir, "a.png", "png")
	select {
	case <-lib.Updated:
	case <-time.After(2 * time.Second):
		t.Fatal("library never noticed the new file")
	}

	cancel()
	<-done
}

func TestPhotoFallback(t *testing.T) {
	src, ok := PhotoFallback("/assets/team/hamza.png")
	require.True(t, ok)
	assert.Equal(t, PlaceholderURL, src)

	_, ok = PhotoFallback(PlaceholderURL)
	assert.False(t, ok)
}

type fakeStore struct {
	objects map[string][]byte
	listErr error
	failed  map[string]bool
}

func (f *fakeStore) List(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeStore) Download(_ context.Context, key string, w io.WriterAt) error {
	if f.failed[key] {
		return errors.New("boom")
	}
	_, err := w.WriteAt(f.objects[key], 0)
	return err
}

func TestRemoteSync(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.png", "stale")
	writeFile(t, dir, "keep.png", "local copy")

	lib, err := NewLibrary(dir, time.Minute)
	require.NoError(t, err)

	store := &fakeStore{
		objects: map[string][]byte{
			"keep.png":        []byte("remote copy"),
			"new.webp":        []byte("webp"),
			"team/maen.png":   []byte("maen"),
			"readme.md":       []byte("not an image"),
			"../escape.png":   []byte("nope"),
			"team/broken.png": []byte("x"),
		},
		failed: map[string]bool{"team/broken.png": true},
	}

	rs := NewRemoteSync(store, lib, 0)
	changed, err := rs.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)

	assert.NoFileExists(t, filepath.Join(dir, "old.png"))
	assert.NoFileExists(t, filepath.Join(dir, "readme.md"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dir), "escape.png"))
	assert.NoFileExists(t, filepath.Join(dir, "team", "broken.png"))

	data, err := os.ReadFile(filepath.Join(dir, "team", "maen.png"))
	require.NoError(t, err)
	assert.Equal(t, "maen", string(data))

	// existing files are not downloaded again
	data, err = os.ReadFile(filepath.Join(dir, "keep.png"))
	require.NoError(t, err)
	assert.Equal(t, "local copy", string(data))

	assert.True(t, lib.Has("new.webp"))
	assert.True(t, lib.Has("team/maen.png"))
	assert.False(t, lib.Has("old.png"))

	// only the failed download remains to do
	delete(store.objects, "team/broken.png")
	changed, err = rs.Sync(context.Background())
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRemoteSyncListError(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), time.Minute)
	require.NoError(t, err)

	rs := NewRemoteSync(&fakeStore{listErr: errors.New("denied")}, lib, time.Minute)
	changed, err := rs.Sync(context.Background())
	require.Error(t, err)
	assert.False(t, changed)
}

func TestRemoteSyncRunStops(t *testing.T) {
	lib, err := NewLibrary(t.TempDir(), time.Minute)
	require.NoError(t, err)
	rs := NewRemoteSync(&fakeStore{objects: map[string][]byte{"a.png": []byte("a")}}, lib, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rs.Run(ctx)
		close(done)
	}()

	select {
	case <-lib.Updated:
	case <-time.After(2 * time.Second):
		t.Fatal("initial sync did not run")
	}
	cancel()
	<-done
	assert.True(t, lib.Has("a.png"))
}
