// Package textdraw renders label text onto in-memory images using the Go
// regular TrueType font.
package textdraw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/tauraamui/xerror"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

var (
	parseOnce sync.Once
	regular   *truetype.Font
	parseErr  error
)

func loadFont() (*truetype.Font, error) {
	parseOnce.Do(func() {
		regular, parseErr = freetype.ParseFont(goregular.TTF)
	})
	return regular, parseErr
}

// Draw writes text onto canvas with its top left corner at x, y.
func Draw(canvas *image.RGBA, x, y int, size float64, c color.Color, text string) error {
	fontFace, err := loadFont()
	if err != nil {
		return xerror.Errorf("unable to parse label font: %w", err)
	}

	fontDrawer := &font.Drawer{
		Dst: canvas,
		Src: image.NewUniform(c),
		Face: truetype.NewFace(fontFace, &truetype.Options{
			Size:    size,
			Hinting: font.HintingFull,
		}),
	}
	ascent := fontDrawer.Face.Metrics().Ascent
	fontDrawer.Dot = fixed.Point26_6{
		X: fixed.I(x),
		Y: fixed.I(y) + ascent,
	}
	fontDrawer.DrawString(text)
	return nil
}

// Width measures text in pixels at the given size.
func Width(size float64, text string) (int, error) {
	fontFace, err := loadFont()
	if err != nil {
		return 0, xerror.Errorf("unable to parse label font: %w", err)
	}
	face := truetype.NewFace(fontFace, &truetype.Options{Size: size})
	return font.MeasureString(face, text).Ceil(), nil
}
