package store

import (
	"os"
	"path/filepath"

	"github.com/infohazards/indranet-explorer/constant"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Path returns the data file location. It is recomputed on every call.
func (fs *FileStore) Path() (string, error) {
	return DataFilePath(fs.resolver)
}

// Save creates the cache directory if needed and replaces the data file with
// payload, byte for byte.
func (fs *FileStore) Save(payload string) error {
	dir, err := fs.ensureDir()
	if err != nil {
		return err
	}
	filePath := filepath.Join(dir, constant.DataFileName)
	if err := fs.writeFile(filePath, []byte(payload)); err != nil {
		return err
	}
	fs.log.WithFields(logrus.Fields{
		"path":   filePath,
		"bytes":  len(payload),
		"atomic": fs.atomic,
	}).Debug("saved data")
	return nil
}

// Load returns the data file's content. Every failure, a missing file
// included, yields constant.DefaultPayload.
func (fs *FileStore) Load() string {
	payload, err := fs.LoadErr()
	if err == nil {
		return payload
	}
	entry := fs.log.WithError(err)
	if errors.Is(err, os.ErrNotExist) {
		entry.Debug("no saved data, using default")
	} else {
		entry.Warn("unable to read saved data, using default")
	}
	return payload
}

// LoadErr is Load with the swallowed error exposed for diagnostics. The
// returned payload is always the one Load would return.
func (fs *FileStore) LoadErr() (string, error) {
	filePath, err := fs.Path()
	if err != nil {
		return constant.DefaultPayload, errors.Wrap(err, "resolve data file")
	}
	serialized, err := os.ReadFile(filePath)
	if err != nil {
		return constant.DefaultPayload, errors.Wrapf(err, "read %s", filePath)
	}
	return string(serialized), nil
}
