package feature

import (
	"math"

	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Entropy is the base 2 Shannon entropy of h normalised to a probability
// distribution. An empty histogram has zero entropy.
func Entropy(h Histogram) float64 {
	total := floats.Sum(h[:])
	if total <= 0 {
		return 0
	}
	p := make([]float64, Bins)
	floats.ScaleTo(p, 1/total, h[:])
	return stat.Entropy(p) / math.Ln2
}

type entropyOfMotion struct{}

// NewEntropyOfMotion scores each frame of a motion (frame difference)
// video by the mean entropy of its three channel histograms.
func NewEntropyOfMotion() Extractor {
	return entropyOfMotion{}
}

func (entropyOfMotion) Mode() Mode { return EntropyOfMotion }

func (entropyOfMotion) Pairwise() bool { return false }

func (entropyOfMotion) Step(frame videoframe.Frame) (float64, bool) {
	hists, ok := HistogramsOf(frame)
	if !ok {
		return 0, false
	}
	var e [3]float64
	for ch := range e {
		e[ch] = Entropy(hists[ch])
	}
	return meanOf(e), true
}

func (entropyOfMotion) Reset() {}

func (entropyOfMotion) Close() {}
