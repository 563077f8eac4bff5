package mirrorstore

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Provider is the file mirror of the durable local store. It keeps a
// best-effort on-disk copy used as fallback when the cache comes up empty.
type Provider interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

func NewInstance(path string) Provider {
	return &impl{
		path: path,
	}
}

type impl struct {
	path string
}

func (i impl) Read() ([]byte, error) {
	data, err := os.ReadFile(i.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "mirror read failed, path=%v", i.path)
	}
	return data, nil
}

// Write replaces the mirror contents via a temp file and rename, so a
// crash mid-write never leaves a truncated mirror behind.
func (i impl) Write(data []byte) error {
	dir := filepath.Dir(i.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.Wrapf(err, "mirror dir create failed, path=%v", dir)
	}
	tmp, err := os.CreateTemp(dir, ".requests-*.tmp")
	if err != nil {
		return errors.Wrap(err, "mirror temp file create failed")
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "mirror temp file write failed")
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "mirror temp file close failed")
	}
	if err = os.Rename(tmpName, i.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "mirror replace failed, path=%v", i.path)
	}
	return nil
}
