package feature_test

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/shotdetect/internal/videotest"
	"github.com/tauraamui/shotdetect/pkg/feature"
)

func TestMinMaxNormalizeScalesToUnitRange(t *testing.T) {
	is := is.New(t)
	is.Equal(feature.MinMaxNormalize([]float64{2, 4, 6}), []float64{0, 0.5, 1})
}

func TestMinMaxNormalizeOfFlatSignalIsZeros(t *testing.T) {
	is := is.New(t)
	is.Equal(feature.MinMaxNormalize([]float64{3, 3, 3}), []float64{0, 0, 0})
	is.Equal(len(feature.MinMaxNormalize(nil)), 0)
}

func TestOpticalFlowOfStillFramesIsZero(t *testing.T) {
	is := is.New(t)
	frame, err := videotest.SplitFrame(64, 48, videotest.Black, videotest.White)
	require.NoError(t, err)
	defer frame.Close()

	for _, scale := range []int{100, 50} {
		ext := feature.NewOpticalFlow(scale)
		_, ok := ext.Step(frame)
		is.True(!ok)

		v, ok := ext.Step(frame)
		is.True(ok)
		assert.InDelta(t, 0, v, 1e-6)
		ext.Close()
	}
}

func TestOpticalFlowPostProcessNormalizes(t *testing.T) {
	is := is.New(t)
	ext := feature.NewOpticalFlow(50)
	defer ext.Close()

	pp, ok := ext.(interface{ PostProcess([]float64) []float64 })
	is.True(ok)
	is.Equal(pp.PostProcess([]float64{1, 3}), []float64{0, 1})
}
