package videobackend

import (
	"context"
	"strings"

	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

const (
	SourceUnavailable xerror.Kind = "source_unavailable"
	OutOfRange        xerror.Kind = "out_of_range"
)

var (
	ErrSourceUnavailable = xerror.NewWithKind(SourceUnavailable, "video source unavailable")
	ErrOutOfRange        = xerror.NewWithKind(OutOfRange, "frame index out of range")
	// ErrEndOfStream is returned by ReadNext once no further frame can be
	// decoded. It is terminal, callers should stop reading.
	ErrEndOfStream = xerror.New("end of stream")
)

// Source is a sequential, seekable reader over a decoded video.
type Source interface {
	FrameCount() int
	FPS() float64
	// Position is the index of the frame the next ReadNext will decode.
	Position() int
	ReadNext(videoframe.Frame) error
	Seek(index int) error
	Close() error
}

type Backend interface {
	Open(context.Context, string) (Source, error)
	NewFrame() videoframe.Frame
}

func Default() Backend {
	return OpenCV()
}

func OpenCV() Backend {
	return &openCVBackend{}
}

func Resolve(t string) Backend {
	switch strings.ToLower(t) {
	case "synthetic", "mock":
		return Synthetic(DefaultReel())
	default:
		return Default()
	}
}
