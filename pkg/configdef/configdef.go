package configdef

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tauraamui/shotdetect/pkg/feature"
	"gopkg.in/dealancer/validate.v2"
)

type Prominence struct {
	Histogram   float64 `json:"histogram" validate:"gte=0"`
	Entropy     float64 `json:"entropy" validate:"gte=0"`
	OpticalFlow float64 `json:"optical_flow" validate:"gte=0"`
}

type Catalog struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type Values struct {
	Prominence              Prominence `json:"prominence"`
	OpticalFlowScalePercent int        `json:"optical_flow_scale_percent" validate:"gte=1 & lte=100"`
	VideoBackend            string     `json:"video_backend"`
	SignalDir               string     `json:"signal_dir"`
	Catalog                 Catalog    `json:"catalog"`
}

var knownBackends = []string{"opencv", "synthetic", "mock"}

func (v Values) RunValidate() error {
	if err := validate.Validate(&v); err != nil {
		return err
	}
	return v.Validate()
}

func (v Values) Validate() error {
	const validationErrorHeader = "validation failed: %w"
	if !isKnownBackend(v.VideoBackend) {
		return fmt.Errorf(validationErrorHeader, fmt.Errorf("unknown video backend %q", v.VideoBackend))
	}
	for _, p := range []float64{v.Prominence.Histogram, v.Prominence.Entropy, v.Prominence.OpticalFlow} {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf(validationErrorHeader, errors.New("prominence must be finite"))
		}
	}
	return nil
}

func isKnownBackend(backend string) bool {
	backend = strings.ToLower(backend)
	for _, known := range knownBackends {
		if backend == known {
			return true
		}
	}
	return false
}

// ProminenceFor is the configured detection threshold for signals built
// with mode.
func (v Values) ProminenceFor(mode feature.Mode) float64 {
	switch mode {
	case feature.EntropyOfMotion:
		return v.Prominence.Entropy
	case feature.OpticalFlow:
		return v.Prominence.OpticalFlow
	default:
		return v.Prominence.Histogram
	}
}

func (v Values) FeatureOptions() feature.Options {
	return feature.Options{FlowScalePercent: v.OpticalFlowScalePercent}
}
