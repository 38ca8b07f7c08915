// Package signal holds the per-frame feature series extracted from a video,
// how it is built from a video source and how it is persisted.
package signal

import (
	"math"

	"github.com/tauraamui/xerror"
)

const MalformedSignal xerror.Kind = "malformed_signal"

var (
	ErrMalformedSignal = xerror.NewWithKind(MalformedSignal, "signal failed integrity check")
	ErrEmptySignal     = xerror.New("signal is empty")
	ErrZeroLengthVideo = xerror.New("video reports zero frames")
)

// Signal is an ordered, gap free series with one value per extraction step.
type Signal []float64

func (s Signal) Len() int { return len(s) }

// Validate rejects values which are not finite.
func (s Signal) Validate() error {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return xerror.Errorf("%w: value %d is %v", ErrMalformedSignal, i, v)
		}
	}
	return nil
}

// ExpectedLen is the signal length a video of frameCount frames yields.
func ExpectedLen(frameCount int, pairwise bool) int {
	if pairwise {
		if frameCount < 1 {
			return 0
		}
		return frameCount - 1
	}
	return frameCount
}
