package feature

import (
	"image"

	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/floats"
)

// Farneback parameters, fixed so signals from different runs compare.
const (
	flowPyrScale   = 0.5
	flowLevels     = 3
	flowWinSize    = 15
	flowIterations = 3
	flowPolyN      = 5
	flowPolySigma  = 1.2
	flowFlags      = 0
)

type opticalFlow struct {
	scalePercent int
	prev         gocv.Mat
	hasPrev      bool
}

// NewOpticalFlow scores each consecutive pair of frames by the mean
// magnitude of their dense Farneback optical flow field, computed on
// grayscale frames shrunk to scalePercent of their linear size.
func NewOpticalFlow(scalePercent int) Extractor {
	return &opticalFlow{scalePercent: scalePercent}
}

func (e *opticalFlow) Mode() Mode { return OpticalFlow }

func (e *opticalFlow) Pairwise() bool { return true }

func (e *opticalFlow) intensity(mat *gocv.Mat) gocv.Mat {
	src := *mat
	if e.scalePercent > 0 && e.scalePercent < 100 {
		w, h := mat.Cols()*e.scalePercent/100, mat.Rows()*e.scalePercent/100
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		resized := gocv.NewMat()
		defer resized.Close()
		gocv.Resize(*mat, &resized, image.Pt(w, h), 0, 0, gocv.InterpolationNearestNeighbor)
		src = resized
	}

	gray := gocv.NewMat()
	if src.Channels() == 1 {
		src.CopyTo(&gray)
		return gray
	}
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray
}

func (e *opticalFlow) Step(frame videoframe.Frame) (float64, bool) {
	mat, ok := matOf(frame)
	if !ok {
		return 0, false
	}

	next := e.intensity(mat)
	if !e.hasPrev {
		e.prev, e.hasPrev = next, true
		return 0, false
	}

	v := meanFlowMagnitude(e.prev, next)
	e.prev.Close()
	e.prev = next
	return v, true
}

func meanFlowMagnitude(prev, next gocv.Mat) float64 {
	flow := gocv.NewMat()
	defer flow.Close()
	gocv.CalcOpticalFlowFarneback(
		prev, next, &flow,
		flowPyrScale, flowLevels, flowWinSize, flowIterations, flowPolyN, flowPolySigma, flowFlags,
	)

	components := gocv.Split(flow)
	defer func() {
		for _, c := range components {
			c.Close()
		}
	}()
	if len(components) < 2 {
		return 0
	}

	magnitude, angle := gocv.NewMat(), gocv.NewMat()
	defer magnitude.Close()
	defer angle.Close()
	gocv.CartToPolar(components[0], components[1], &magnitude, &angle, false)

	return magnitude.Mean().Val1
}

// PostProcess min-max normalises the flow magnitudes to [0, 1]. A flat
// signal normalises to zeros.
func (e *opticalFlow) PostProcess(values []float64) []float64 {
	return MinMaxNormalize(values)
}

func (e *opticalFlow) Reset() {
	if e.hasPrev {
		e.prev.Close()
	}
	e.prev, e.hasPrev = gocv.Mat{}, false
}

func (e *opticalFlow) Close() { e.Reset() }

func MinMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range values {
		out[i] = (v - lo) / span
	}
	return out
}
