// Package videotest builds small synthetic frames and reels for tests.
package videotest

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
)

var (
	Black = color.RGBA{A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func SolidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// SplitImage paints the left half of the image with left and the rest
// with right.
func SplitImage(w, h int, left, right color.RGBA) *image.RGBA {
	img := SolidImage(w, h, right)
	draw.Draw(img, image.Rect(0, 0, w/2, h), image.NewUniform(left), image.Point{}, draw.Src)
	return img
}

func SolidFrame(w, h int, c color.RGBA) (videoframe.Frame, error) {
	return videobackend.FrameFromImage(SolidImage(w, h, c))
}

func SplitFrame(w, h int, left, right color.RGBA) (videoframe.Frame, error) {
	return videobackend.FrameFromImage(SplitImage(w, h, left, right))
}

// CutReel is a reel of before frames of one colour followed by after
// frames of another, a single hard cut.
func CutReel(before, after int, from, to color.RGBA) videobackend.Reel {
	return videobackend.Reel{
		Width: 32, Height: 24, FPS: 30,
		Segments: []videobackend.Segment{
			videobackend.SolidSegment(before, from),
			videobackend.SolidSegment(after, to),
		},
	}
}

// BlackToWhite is thirty black frames followed by thirty white ones.
func BlackToWhite() videobackend.Reel {
	return CutReel(30, 30, Black, White)
}
