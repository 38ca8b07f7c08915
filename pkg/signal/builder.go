package signal

import (
	"context"
	"errors"

	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

var ErrDroppedFrame = xerror.New("extractor produced no value for a decoded frame")

// Extractor is the part of feature.Extractor the builder drives.
type Extractor interface {
	Pairwise() bool
	Step(videoframe.Frame) (float64, bool)
}

// PostProcessor is implemented by extractors whose raw series needs a
// whole-signal pass, such as normalisation, before it is stored.
type PostProcessor interface {
	PostProcess([]float64) []float64
}

// Progress observes extraction. Increment is called once per decoded frame.
type Progress interface {
	Start(total int)
	Increment()
	Finish()
}

type noProgress struct{}

func (noProgress) Start(int)  {}
func (noProgress) Increment() {}
func (noProgress) Finish()    {}

type Builder struct {
	newFrame func() videoframe.Frame
	progress Progress
}

func NewBuilder(backend videobackend.Backend, progress Progress) *Builder {
	if progress == nil {
		progress = noProgress{}
	}
	return &Builder{newFrame: backend.NewFrame, progress: progress}
}

// Build decodes src from its current position to the end of the stream,
// stepping ext once per frame. Any decode fault other than the end of the
// stream aborts the whole run, a skipped frame would misalign every later
// value with the video.
func (b *Builder) Build(ctx context.Context, src videobackend.Source, ext Extractor) (Signal, error) {
	total := src.FrameCount()
	if total <= 0 {
		return nil, xerror.Errorf("%w: nothing to extract", ErrZeroLengthVideo)
	}

	frame := b.newFrame()
	defer frame.Close()

	b.progress.Start(total)
	defer b.progress.Finish()

	sig := make(Signal, 0, ExpectedLen(total, ext.Pairwise()))
	decoded := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, xerror.Errorf("extraction stopped after %d frames: %w", decoded, err)
		}

		err := src.ReadNext(frame)
		if errors.Is(err, videobackend.ErrEndOfStream) {
			break
		}
		if err != nil {
			return nil, xerror.Errorf("unable to decode frame %d: %w", decoded, err)
		}

		v, ok := ext.Step(frame)
		priming := ext.Pairwise() && decoded == 0
		decoded++
		b.progress.Increment()

		if priming {
			continue
		}
		if !ok {
			return nil, xerror.Errorf("%w: frame %d", ErrDroppedFrame, decoded-1)
		}
		sig = append(sig, v)
	}

	if decoded != total {
		log.Warn("Video reported %d frames but %d were decoded", total, decoded)
	}

	if pp, ok := ext.(PostProcessor); ok && len(sig) > 0 {
		sig = Signal(pp.PostProcess(sig))
	}

	if err := sig.Validate(); err != nil {
		return nil, err
	}
	log.Debug("Extracted signal of %d values from %d frames", len(sig), decoded)
	return sig, nil
}

// BuildAndSave builds a signal and persists it in one bulk write.
func (b *Builder) BuildAndSave(
	ctx context.Context, src videobackend.Source, ext Extractor, store Store, name string,
) (Signal, string, error) {
	sig, err := b.Build(ctx, src, ext)
	if err != nil {
		return nil, "", err
	}
	if len(sig) == 0 {
		return sig, "", ErrEmptySignal
	}

	path, err := store.Save(name, sig)
	if err != nil {
		return nil, "", err
	}
	return sig, path, nil
}
