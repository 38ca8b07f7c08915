package videobackend

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/tauraamui/shotdetect/internal/textdraw"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

// Canvas renders the still image shown for every frame of a segment.
type Canvas func(w, h int) (image.Image, error)

// Segment is a run of identical frames, one shot of a synthetic reel.
type Segment struct {
	Frames int
	Canvas Canvas
}

// Reel describes an in-memory video made of consecutive segments.
type Reel struct {
	Width, Height int
	FPS           float64
	Segments      []Segment
}

func (r Reel) FrameCount() int {
	total := 0
	for _, s := range r.Segments {
		total += s.Frames
	}
	return total
}

// SolidSegment is a segment of frames filled entirely with c.
func SolidSegment(frames int, c color.RGBA) Segment {
	return Segment{
		Frames: frames,
		Canvas: func(w, h int) (image.Image, error) {
			img := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
			return img, nil
		},
	}
}

// CircleSegment renders three overlapping red, green and blue circles
// rotated by rotation radians with a shot label in the corner.
func CircleSegment(frames int, rotation float64, label string) Segment {
	return Segment{
		Frames: frames,
		Canvas: func(w, h int) (image.Image, error) {
			img := renderCircleCanvas(w, h, rotation)
			if len(label) > 0 {
				if err := textdraw.Draw(img, 5, 5, float64(h)/8, color.White, label); err != nil {
					return nil, err
				}
			}
			return img, nil
		},
	}
}

// DefaultReel is four shots of the circle canvas, thirty frames each.
func DefaultReel() Reel {
	segments := make([]Segment, 4)
	for i := range segments {
		segments[i] = CircleSegment(30, float64(i)*math.Pi/5, fmt.Sprintf("SHOT %d", i+1))
	}
	return Reel{Width: 320, Height: 240, FPS: 30, Segments: segments}
}

// Synthetic returns a backend which ignores the address passed to Open
// and plays back reel instead.
func Synthetic(reel Reel) Backend {
	return &syntheticBackend{reel: reel}
}

type syntheticBackend struct {
	reel Reel
}

func (b *syntheticBackend) Open(cancel context.Context, addr string) (Source, error) {
	select {
	case <-cancel.Done():
		return nil, xerror.Errorf("opening %s cancelled: %w", addr, cancel.Err())
	default:
	}
	if b.reel.Width <= 0 || b.reel.Height <= 0 {
		return nil, xerror.Errorf("%w: synthetic reel has no dimensions", ErrSourceUnavailable)
	}
	return &syntheticSource{reel: b.reel, canvases: map[int]image.Image{}}, nil
}

func (b *syntheticBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type syntheticSource struct {
	mu       sync.Mutex
	reel     Reel
	canvases map[int]image.Image
	pos      int
	closed   bool
}

func (s *syntheticSource) FrameCount() int { return s.reel.FrameCount() }

func (s *syntheticSource) FPS() float64 { return s.reel.FPS }

func (s *syntheticSource) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *syntheticSource) segmentAt(index int) int {
	for i, seg := range s.reel.Segments {
		if index < seg.Frames {
			return i
		}
		index -= seg.Frames
	}
	return -1
}

func (s *syntheticSource) canvas(segment int) (image.Image, error) {
	if img, ok := s.canvases[segment]; ok {
		return img, nil
	}
	img, err := s.reel.Segments[segment].Canvas(s.reel.Width, s.reel.Height)
	if err != nil {
		return nil, err
	}
	s.canvases[segment] = img
	return img, nil
}

func (s *syntheticSource) ReadNext(frame videoframe.Frame) error {
	frameMatRef, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to synthetic source read")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrEndOfStream
	}

	segment := s.segmentAt(s.pos)
	if segment < 0 {
		return ErrEndOfStream
	}

	img, err := s.canvas(segment)
	if err != nil {
		// decode faults end the stream, as with a real container
		return ErrEndOfStream
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return ErrEndOfStream
	}
	defer mat.Close()

	mat.CopyTo(frameMatRef)
	s.pos++
	return nil
}

func (s *syntheticSource) Seek(index int) error {
	count := s.reel.FrameCount()
	if index < 0 || index >= count {
		return xerror.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, count)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = index
	return nil
}

func (s *syntheticSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.canvases = map[int]image.Image{}
	return nil
}

func renderCircleCanvas(w, h int, rotation float64) *image.RGBA {
	var hw, hh float64 = float64(w / 2), float64(h / 2)
	r := float64(h) / 2
	θ := 2 * math.Pi / 3
	cr := &circle{hw - r*math.Sin(rotation), hh - r*math.Cos(rotation), r * 1.5}
	cg := &circle{hw - r*math.Sin(rotation+θ), hh - r*math.Cos(rotation+θ), r * 1.5}
	cb := &circle{hw - r*math.Sin(rotation-θ), hh - r*math.Cos(rotation-θ), r * 1.5}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := color.RGBA{
				cr.Brightness(float64(x), float64(y)),
				cg.Brightness(float64(x), float64(y)),
				cb.Brightness(float64(x), float64(y)),
				255,
			}
			img.Set(x, y, c)
		}
	}
	return img
}

type circle struct {
	X, Y, R float64
}

func (c *circle) Brightness(x, y float64) uint8 {
	var dx, dy float64 = c.X - x, c.Y - y
	d := math.Sqrt(dx*dx+dy*dy) / c.R
	if d > 1 {
		return 0
	}
	return 255
}
