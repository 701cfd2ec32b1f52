package store

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// FileStore keeps the payload in a single file under a resolved cache
// directory. It holds no state besides its settings: the path is resolved
// again on every call and nothing read from disk is retained.
type FileStore struct {
	resolver Resolver
	atomic   bool
	log      logrus.FieldLogger
}

var _ Store = (*FileStore)(nil)

// Option customizes a FileStore.
type Option func(*FileStore)

// WithAtomicWrite makes Save write a temporary file and rename it over the
// data file, so a crash never leaves a truncated file behind.
func WithAtomicWrite(atomic bool) Option {
	return func(fs *FileStore) {
		fs.atomic = atomic
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(fs *FileStore) {
		fs.log = log
	}
}

// NewFileStore creates a FileStore rooted wherever r points.
func NewFileStore(r Resolver, opts ...Option) *FileStore {
	fs := &FileStore{
		resolver: r,
		log:      logrus.StandardLogger().WithField("component", "store"),
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs
}

// ensureDir creates the cache directory and its parents.
func (fs *FileStore) ensureDir() (string, error) {
	dir, err := fs.resolver.CacheDir()
	if err != nil {
		return "", errors.Wrap(err, "resolve cache dir")
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", errors.Wrapf(err, "create cache dir %s", dir)
	}
	return dir, nil
}

func (fs *FileStore) writeFile(path string, data []byte) error {
	if fs.atomic {
		return writeFileAtomic(path, data)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

// writeFileAtomic writes data next to path and renames it into place. The
// temporary file is removed on any failure.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "create temp file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return errors.Wrapf(err, "write %s", tmp.Name())
	}
	if err = tmp.Chmod(fileMode); err != nil {
		return errors.Wrapf(err, "chmod %s", tmp.Name())
	}
	if err = tmp.Sync(); err != nil {
		return errors.Wrapf(err, "sync %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "close %s", tmp.Name())
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "rename %s to %s", tmp.Name(), path)
	}
	return nil
}
