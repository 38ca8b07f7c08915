package feature

import (
	"math"

	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

const Bins = 256

// Channel indexes follow OpenCV's BGR layout.
const (
	Blue  = 0
	Green = 1
	Red   = 2
)

// Histogram is the intensity frequency distribution of one channel.
type Histogram [Bins]float64

// ChannelHistograms holds one histogram per BGR channel of a frame.
type ChannelHistograms [3]Histogram

var calcHist = func(mat gocv.Mat, channel int) Histogram {
	var h Histogram
	hist := gocv.NewMat()
	defer hist.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.CalcHist([]gocv.Mat{mat}, []int{channel}, mask, &hist, []int{Bins}, []float64{0, Bins}, false)
	for i := 0; i < Bins && i < hist.Rows(); i++ {
		h[i] = float64(hist.GetFloatAt(i, 0))
	}
	return h
}

// HistogramsOf computes per channel histograms of frame. Single channel
// frames have their one histogram repeated across all three.
func HistogramsOf(frame videoframe.NoCloser) (ChannelHistograms, bool) {
	var hists ChannelHistograms
	mat, ok := matOf(frame)
	if !ok {
		return hists, false
	}

	if mat.Channels() < 3 {
		h := calcHist(*mat, 0)
		return ChannelHistograms{h, h, h}, true
	}

	for ch := range hists {
		hists[ch] = calcHist(*mat, ch)
	}
	return hists, true
}

// CosineDistance is 1 minus the cosine similarity of a and b. Two empty
// histograms are identical; an empty and non-empty pair are maximally apart.
func CosineDistance(a, b Histogram) float64 {
	na, nb := floats.Norm(a[:], 2), floats.Norm(b[:], 2)
	switch {
	case na == 0 && nb == 0:
		return 0
	case na == 0 || nb == 0:
		return 1
	}
	d := 1 - floats.Dot(a[:], b[:])/(na*nb)
	// rounding can push identical histograms a hair below zero
	return math.Max(0, d)
}

// ChannelDistances pairs each channel of prev with the same channel of
// curr.
func ChannelDistances(prev, curr ChannelHistograms) [3]float64 {
	var d [3]float64
	for ch := range d {
		d[ch] = CosineDistance(prev[ch], curr[ch])
	}
	return d
}

func meanOf(v [3]float64) float64 {
	return floats.Sum(v[:]) / float64(len(v))
}

type histogramDistance struct {
	prev    ChannelHistograms
	hasPrev bool
}

// NewHistogramDistance compares each frame's colour histograms with the
// frame before it, averaging the per channel cosine distances.
func NewHistogramDistance() Extractor {
	return &histogramDistance{}
}

func (e *histogramDistance) Mode() Mode { return HistogramDistance }

func (e *histogramDistance) Pairwise() bool { return true }

func (e *histogramDistance) Step(frame videoframe.Frame) (float64, bool) {
	curr, ok := HistogramsOf(frame)
	if !ok {
		return 0, false
	}

	if !e.hasPrev {
		e.prev, e.hasPrev = curr, true
		return 0, false
	}

	v := meanOf(ChannelDistances(e.prev, curr))
	e.prev = curr
	return v, true
}

func (e *histogramDistance) Reset() {
	e.prev, e.hasPrev = ChannelHistograms{}, false
}

func (e *histogramDistance) Close() { e.Reset() }
