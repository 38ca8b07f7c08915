// Package display presents navigator views, either in an OpenCV window
// or as PNG files for headless review.
package display

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tauraamui/shotdetect/internal/textdraw"
	"github.com/tauraamui/shotdetect/pkg/navigator"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const (
	padding      = 8
	headerHeight = 32
	labelHeight  = 24
	captionSize  = 16
	labelSize    = 12
)

var (
	background = color.RGBA{R: 24, G: 24, B: 24, A: 255}
	foreground = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	highlight  = color.RGBA{R: 255, G: 196, B: 0, A: 255}
)

var labels = [3]string{"Previous", "Transition", "Next"}

// Compose lays the three frames of view out side by side beneath its
// caption, each with a label naming its place around the boundary.
func Compose(view navigator.View) (image.Image, error) {
	frames := view.Frames()
	images := make([]image.Image, len(frames))
	w, h := 0, 0
	for i, f := range frames {
		img, err := toImage(f)
		if err != nil {
			return nil, xerror.Errorf("unable to compose %s frame: %w", labels[i], err)
		}
		images[i] = img
		b := img.Bounds()
		if b.Dx() > w {
			w = b.Dx()
		}
		if b.Dy() > h {
			h = b.Dy()
		}
	}

	canvas := image.NewRGBA(image.Rect(0, 0, len(images)*w+(len(images)+1)*padding, headerHeight+labelHeight+h+padding))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	if err := textdraw.Draw(canvas, padding, (headerHeight-captionSize)/2, captionSize, foreground, view.Caption); err != nil {
		return nil, err
	}

	for i, img := range images {
		x := padding + i*(w+padding)
		c := foreground
		if i == 1 {
			c = highlight
		}
		if err := textdraw.Draw(canvas, x, headerHeight+(labelHeight-labelSize)/2, labelSize, c, labels[i]); err != nil {
			return nil, err
		}
		dst := image.Rect(x, headerHeight+labelHeight, x+img.Bounds().Dx(), headerHeight+labelHeight+img.Bounds().Dy())
		draw.Draw(canvas, dst, img, img.Bounds().Min, draw.Src)
	}

	return canvas, nil
}

func toImage(frame videoframe.Frame) (image.Image, error) {
	if frame == nil || frame.Empty() {
		return nil, xerror.New("frame is empty")
	}
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return nil, xerror.New("frame does not hold an OpenCV mat")
	}
	return mat.ToImage()
}
