package feature_test

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/shotdetect/pkg/feature"
)

func TestParseModeAcceptsAliases(t *testing.T) {
	is := is.New(t)
	for alias, want := range map[string]feature.Mode{
		"histogram":          feature.HistogramDistance,
		"Histogram-Distance": feature.HistogramDistance,
		"entropy":            feature.EntropyOfMotion,
		"entropy-of-motion":  feature.EntropyOfMotion,
		" optical-flow ":     feature.OpticalFlow,
		"flow":               feature.OpticalFlow,
	} {
		m, err := feature.ParseMode(alias)
		is.NoErr(err)
		is.Equal(m, want)
	}
}

func TestParseModeRejectsUnknownMode(t *testing.T) {
	is := is.New(t)
	_, err := feature.ParseMode("audio")
	is.True(errors.Is(err, feature.ErrUnknownMode))
}

func TestModeDefaultsMatchExtractorShape(t *testing.T) {
	is := is.New(t)
	is.Equal(feature.HistogramDistance.DefaultProminence(), 0.5)
	is.Equal(feature.OpticalFlow.DefaultProminence(), 0.5)
	is.Equal(feature.EntropyOfMotion.DefaultProminence(), 6.0)

	for _, m := range feature.Modes() {
		ext, err := feature.New(m, feature.DefaultOptions())
		is.NoErr(err)
		is.Equal(ext.Mode(), m)
		is.Equal(ext.Pairwise(), m.Pairwise())
		ext.Close()
	}
}

func TestNewRejectsUnknownMode(t *testing.T) {
	is := is.New(t)
	ext, err := feature.New(feature.Mode("audio"), feature.DefaultOptions())
	is.True(ext == nil)
	is.True(errors.Is(err, feature.ErrUnknownMode))
}
