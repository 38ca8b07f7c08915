// Package pipeline wires extraction, boundary detection and review
// together, recording each run in the catalog when one is configured.
package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/tauraamui/shotdetect/pkg/catalog/models"
	"github.com/tauraamui/shotdetect/pkg/feature"
	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/shotdetect/pkg/navigator"
	"github.com/tauraamui/shotdetect/pkg/peaks"
	"github.com/tauraamui/shotdetect/pkg/signal"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
	"github.com/tauraamui/xerror"
)

// Recorder keeps a history of runs. *catalog.Catalog satisfies it.
type Recorder interface {
	RecordExtraction(*models.Extraction) error
	RecordDetection(*models.Detection) error
}

type noRecorder struct{}

func (noRecorder) RecordExtraction(*models.Extraction) error { return nil }
func (noRecorder) RecordDetection(*models.Detection) error   { return nil }

type Settings struct {
	Backend        videobackend.Backend
	Store          signal.Store
	Recorder       Recorder
	Progress       signal.Progress
	FeatureOptions feature.Options
}

type Pipeline struct {
	backend  videobackend.Backend
	store    signal.Store
	recorder Recorder
	builder  *signal.Builder
	options  feature.Options
}

func New(settings Settings) *Pipeline {
	backend := settings.Backend
	if backend == nil {
		backend = videobackend.Default()
	}
	store := settings.Store
	if store == nil {
		store = signal.NewStore("")
	}
	recorder := settings.Recorder
	if recorder == nil {
		recorder = noRecorder{}
	}
	return &Pipeline{
		backend:  backend,
		store:    store,
		recorder: recorder,
		builder:  signal.NewBuilder(backend, settings.Progress),
		options:  settings.FeatureOptions,
	}
}

type Extraction struct {
	VideoPath  string
	SignalPath string
	Mode       feature.Mode
	Signal     signal.Signal
	FrameCount int
	FPS        float64
}

// SignalName derives where the signal of video extracted with mode is
// stored when no output is given.
func SignalName(video string, mode feature.Mode) string {
	base := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	return base + "." + mode.String() + ".npy"
}

// Extract builds the mode signal of video and stores it under output.
func (p *Pipeline) Extract(ctx context.Context, video string, mode feature.Mode, output string) (Extraction, error) {
	if len(output) == 0 {
		output = SignalName(video, mode)
	}

	ext, err := feature.New(mode, p.options)
	if err != nil {
		return Extraction{}, err
	}
	defer ext.Close()

	src, err := p.backend.Open(ctx, video)
	if err != nil {
		return Extraction{}, err
	}
	defer src.Close()

	log.Info("Extracting %s signal from [%s]...", mode, video)
	start := time.Now()
	sig, path, err := p.builder.BuildAndSave(ctx, src, ext, p.store, output)
	if err != nil {
		return Extraction{}, xerror.Errorf("unable to extract %s signal from %s: %w", mode, video, err)
	}
	log.Info("Extracted %d values to %s in %s", len(sig), path, time.Since(start).Round(time.Millisecond))

	extraction := Extraction{
		VideoPath:  video,
		SignalPath: path,
		Mode:       mode,
		Signal:     sig,
		FrameCount: src.FrameCount(),
		FPS:        src.FPS(),
	}

	if err := p.recorder.RecordExtraction(&models.Extraction{
		VideoPath:    video,
		Mode:         mode.String(),
		SignalPath:   path,
		FrameCount:   extraction.FrameCount,
		SignalLength: len(sig),
		FPS:          extraction.FPS,
	}); err != nil {
		log.Warn("Unable to record extraction in catalog: %v", err)
	}

	return extraction, nil
}

// Transitions are the boundaries found in a signal along with the open
// video they index into. Close releases the video.
type Transitions struct {
	SignalPath string
	VideoPath  string
	Prominence float64
	Signal     signal.Signal
	Boundaries peaks.BoundarySet
	Navigator  *navigator.Navigator
	source     videobackend.Source
}

func (t *Transitions) FPS() float64 {
	if t.source == nil {
		return 0
	}
	return t.source.FPS()
}

func (t *Transitions) Report() []ReportRow {
	return Report(t.Signal, t.Boundaries, t.FPS())
}

func (t *Transitions) Close() error {
	if t.source == nil {
		return nil
	}
	return t.source.Close()
}

// FindTransitions loads the signal at signalPath, finds its boundaries
// at prominence and opens video ready to review them. A search which
// finds nothing returns peaks.ErrNoTransitions.
func (p *Pipeline) FindTransitions(
	ctx context.Context, signalPath, video string, mode feature.Mode, prominence float64,
) (*Transitions, error) {
	sig, err := p.store.Load(signalPath)
	if err != nil {
		return nil, err
	}
	if len(sig) == 0 {
		return nil, xerror.Errorf("%w: %s", signal.ErrEmptySignal, signalPath)
	}

	boundaries, err := peaks.Find(sig, prominence)
	if err != nil {
		return nil, err
	}
	log.Info("Found %d transitions in %s at prominence %v", boundaries.Len(), signalPath, prominence)

	src, err := p.backend.Open(ctx, video)
	if err != nil {
		return nil, err
	}

	last := boundaries[boundaries.Len()-1]
	if last >= src.FrameCount() {
		src.Close()
		return nil, xerror.Errorf(
			"%w: boundary %d beyond the %d frames of %s", signal.ErrMalformedSignal, last, src.FrameCount(), video,
		)
	}

	nav, err := navigator.New(src, p.backend, boundaries)
	if err != nil {
		src.Close()
		return nil, err
	}

	detection := models.Detection{
		SignalPath: signalPath,
		VideoPath:  video,
		Mode:       mode.String(),
		Prominence: prominence,
	}
	detection.SetBoundaries(boundaries)
	if err := p.recorder.RecordDetection(&detection); err != nil {
		log.Warn("Unable to record detection in catalog: %v", err)
	}

	return &Transitions{
		SignalPath: signalPath,
		VideoPath:  video,
		Prominence: prominence,
		Signal:     sig,
		Boundaries: boundaries,
		Navigator:  nav,
		source:     src,
	}, nil
}

type DetectRequest struct {
	Video string
	// MotionVideo is extracted from instead of Video when set. Boundaries
	// are still reviewed against Video.
	MotionVideo string
	Mode        feature.Mode
	Output      string
	Prominence  float64
}

// Detect extracts a signal and searches it in one pass.
func (p *Pipeline) Detect(ctx context.Context, req DetectRequest) (Extraction, *Transitions, error) {
	source := req.Video
	if len(req.MotionVideo) > 0 {
		source = req.MotionVideo
	}

	extraction, err := p.Extract(ctx, source, req.Mode, req.Output)
	if err != nil {
		return Extraction{}, nil, err
	}

	transitions, err := p.FindTransitions(ctx, extraction.SignalPath, req.Video, req.Mode, req.Prominence)
	if err != nil {
		return extraction, nil, err
	}
	return extraction, transitions, nil
}
