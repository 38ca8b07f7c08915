package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/xerror"
)

var fs = afero.NewOsFs()

// ExportSurface writes every presented composite to dir as a PNG and
// quits once each of the total boundaries has been written.
type ExportSurface struct {
	dir     string
	total   int
	written []string
}

func NewExportSurface(dir string, total int) (*ExportSurface, error) {
	if err := fs.MkdirAll(dir, os.ModeDir|os.ModePerm); err != nil {
		return nil, xerror.Errorf("unable to create export directory %s: %w", dir, err)
	}
	return &ExportSurface{dir: dir, total: total}, nil
}

func (s *ExportSurface) Present(img image.Image, caption string) error {
	path := filepath.Join(s.dir, fmt.Sprintf("transition_%04d.png", len(s.written)+1))
	file, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return xerror.Errorf("unable to create %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return xerror.Errorf("unable to encode %s: %w", path, err)
	}
	log.Info("Exported [%s] to %s", caption, path)
	s.written = append(s.written, path)
	return nil
}

func (s *ExportSurface) Await() Action {
	if len(s.written) >= s.total {
		return ActionQuit
	}
	return ActionNext
}

// Written lists the exported files in presentation order.
func (s *ExportSurface) Written() []string {
	return s.written
}

func (s *ExportSurface) Close() error { return nil }
