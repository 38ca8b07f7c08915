package signal

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio/npy"
	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/xerror"
)

var fs = afero.NewOsFs()

// Store persists signals as 1-D little endian float64 NumPy arrays.
type Store interface {
	Save(name string, s Signal) (string, error)
	Load(name string) (Signal, error)
	// Path is the file name resolves to.
	Path(name string) string
}

type npyStore struct {
	root string
}

// NewStore resolves relative signal names against root. An empty root
// leaves names relative to the working directory.
func NewStore(root string) Store {
	return &npyStore{root: root}
}

func (s *npyStore) Path(name string) string {
	if filepath.Ext(name) == "" {
		name += ".npy"
	}
	if len(s.root) == 0 || filepath.IsAbs(name) || s.within(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// within reports whether name already sits under the store's root, as the
// paths returned by Save do.
func (s *npyStore) within(name string) bool {
	rel, err := filepath.Rel(filepath.Clean(s.root), filepath.Clean(name))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (s *npyStore) Save(name string, sig Signal) (string, error) {
	if err := sig.Validate(); err != nil {
		return "", err
	}

	path := s.Path(name)
	if dir := filepath.Dir(path); len(dir) > 0 {
		if err := fs.MkdirAll(dir, os.ModeDir|os.ModePerm); err != nil {
			return "", xerror.Errorf("unable to create signal directory %s: %w", dir, err)
		}
	}

	file, err := fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", xerror.Errorf("unable to create/open signal file: %w", err)
	}
	defer file.Close()

	values := []float64(sig)
	if values == nil {
		values = []float64{}
	}
	if err := npy.Write(file, values); err != nil {
		return "", xerror.Errorf("unable to write signal to file: %s: %w", path, err)
	}

	log.Debug("Saved signal of %d values to %s", len(sig), path)
	return path, nil
}

func (s *npyStore) Load(name string) (Signal, error) {
	path := s.Path(name)
	file, err := fs.Open(path)
	if err != nil {
		return nil, xerror.Errorf("unable to open signal file: %w", err)
	}
	defer file.Close()

	r, err := npy.NewReader(file)
	if err != nil {
		return nil, xerror.Errorf("%w: %s: %v", ErrMalformedSignal, path, err)
	}
	if r.Header.Descr.Type != "<f8" {
		return nil, xerror.Errorf("%w: %s: dtype %s, want <f8", ErrMalformedSignal, path, r.Header.Descr.Type)
	}
	if len(r.Header.Descr.Shape) != 1 {
		return nil, xerror.Errorf("%w: %s: shape %v is not 1-D", ErrMalformedSignal, path, r.Header.Descr.Shape)
	}

	var values []float64
	if err := r.Read(&values); err != nil {
		return nil, xerror.Errorf("%w: %s: %v", ErrMalformedSignal, path, err)
	}
	if len(values) != r.Header.Descr.Shape[0] {
		return nil, xerror.Errorf(
			"%w: %s: read %d values, header declares %d", ErrMalformedSignal, path, len(values), r.Header.Descr.Shape[0],
		)
	}

	sig := Signal(values)
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}
