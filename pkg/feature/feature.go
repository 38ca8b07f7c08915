// Package feature turns decoded frames into scalar values which spike at
// shot transitions. Three extractors share the Extractor contract: colour
// histogram cosine distance, entropy of a motion video, and mean dense
// optical flow magnitude.
package feature

import (
	"strings"

	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type Mode string

const (
	HistogramDistance Mode = "histogram"
	EntropyOfMotion   Mode = "entropy"
	OpticalFlow       Mode = "optical-flow"
)

var ErrUnknownMode = xerror.New("unknown feature extraction mode")

var modeAliases = map[string]Mode{
	"histogram":          HistogramDistance,
	"hist":               HistogramDistance,
	"histogram-distance": HistogramDistance,
	"entropy":            EntropyOfMotion,
	"entropy-of-motion":  EntropyOfMotion,
	"optical-flow":       OpticalFlow,
	"optical_flow":       OpticalFlow,
	"flow":               OpticalFlow,
}

func ParseMode(s string) (Mode, error) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", xerror.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

func Modes() []Mode {
	return []Mode{HistogramDistance, EntropyOfMotion, OpticalFlow}
}

// DefaultProminence is the peak prominence the mode's signal is usually
// searched with.
func (m Mode) DefaultProminence() float64 {
	if m == EntropyOfMotion {
		return 6
	}
	return 0.5
}

// Pairwise extractors emit one value per pair of consecutive frames and
// so produce a signal one shorter than the frame count.
func (m Mode) Pairwise() bool {
	return m != EntropyOfMotion
}

func (m Mode) String() string { return string(m) }

// Extractor consumes frames one at a time in decode order.
type Extractor interface {
	Mode() Mode
	Pairwise() bool
	// Step reports ok as false while a pairwise extractor primes its
	// history from the first frame, or when given an empty frame.
	Step(videoframe.Frame) (value float64, ok bool)
	Reset()
	Close()
}

type Options struct {
	// FlowScalePercent downsamples frames before optical flow. Zero or
	// 100 disables downsampling.
	FlowScalePercent int
}

func DefaultOptions() Options {
	return Options{FlowScalePercent: 50}
}

func New(m Mode, opts Options) (Extractor, error) {
	switch m {
	case HistogramDistance:
		return NewHistogramDistance(), nil
	case EntropyOfMotion:
		return NewEntropyOfMotion(), nil
	case OpticalFlow:
		return NewOpticalFlow(opts.FlowScalePercent), nil
	default:
		return nil, xerror.Errorf("%w: %q", ErrUnknownMode, string(m))
	}
}

func matOf(frame videoframe.NoCloser) (*gocv.Mat, bool) {
	if frame == nil || frame.Empty() {
		return nil, false
	}
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok || mat == nil || mat.Empty() {
		return nil, false
	}
	return mat, true
}
