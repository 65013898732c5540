package cache

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/mondrian/pkg/errors"
)

// FileStore keeps each artifact as a file named by its key, fanned out into
// subdirectories by the first two digest characters. Artifacts older than
// the store's max age are treated as missing and removed on access.
type FileStore struct {
	dir    string
	maxAge time.Duration
	now    func() time.Time
}

// NewFileStore opens (creating if needed) a store rooted at dir. A
// non-positive maxAge keeps artifacts forever.
func NewFileStore(dir string, maxAge time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create cache dir %s", dir)
	}
	return &FileStore{dir: dir, maxAge: maxAge, now: time.Now}, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Get(ctx context.Context, k Key) ([]byte, bool, error) {
	path := s.path(k)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if s.expired(info) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put writes through a temporary file so readers never see a partial
// artifact.
func (s *FileStore) Put(ctx context.Context, k Key, data []byte) error {
	path := s.path(k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (s *FileStore) Close() error { return nil }

// Prune removes expired artifacts and returns how many were removed.
func (s *FileStore) Prune(ctx context.Context) (int, error) {
	return s.remove(ctx, s.expired)
}

// Clear removes every artifact and the emptied subdirectories, returning
// how many artifacts were removed.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	return s.remove(ctx, func(fs.FileInfo) bool { return true })
}

func (s *FileStore) remove(ctx context.Context, match func(fs.FileInfo) bool) (int, error) {
	subdirs, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	count := 0
	for _, sub := range subdirs {
		if !sub.IsDir() {
			continue
		}
		dir := filepath.Join(s.dir, sub.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return count, err
		}
		for _, e := range entries {
			if err := ctx.Err(); err != nil {
				return count, err
			}
			info, err := e.Info()
			if err != nil || info.IsDir() || !match(info) {
				continue
			}
			if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
				count++
			}
		}
		// Fails harmlessly while artifacts remain.
		_ = os.Remove(dir)
	}
	return count, nil
}

func (s *FileStore) expired(info fs.FileInfo) bool {
	return s.maxAge > 0 && s.now().Sub(info.ModTime()) > s.maxAge
}

func (s *FileStore) path(k Key) string {
	prefix := "00"
	if len(k.Digest) >= 2 {
		prefix = k.Digest[:2]
	}
	return filepath.Join(s.dir, prefix, k.String())
}

var _ Store = (*FileStore)(nil)
