package main

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/xerror"
)

var fs = afero.NewOsFs()

var ErrOutputLocked = xerror.New("signal output is being written by another process")

// lockOutput takes an exclusive lock beside path for as long as the signal
// is being produced. The returned func releases it.
func lockOutput(path string) (func(), error) {
	if err := fs.MkdirAll(filepath.Dir(path), os.ModeDir|os.ModePerm); err != nil {
		return nil, xerror.Errorf("unable to create signal directory: %w", err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, xerror.Errorf("unable to lock %s: %w", path, err)
	}
	if !ok {
		return nil, xerror.Errorf("%w: %s", ErrOutputLocked, path)
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			log.Warn("Unable to release lock on %s: %v", path, err)
			return
		}
		fs.Remove(lockPath) //nolint
	}, nil
}
