package videobackend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
	"gocv.io/x/gocv"
)

func TestOpenCVBackendOpenReturnsSourceUnavailableOnOpenFailure(t *testing.T) {
	is := is.New(t)
	reset := videobackend.OverloadOpenVideoCapture(func(addr string) (*gocv.VideoCapture, error) {
		return nil, errors.New("test open failure")
	})
	defer reset()

	src, err := videobackend.OpenCV().Open(context.Background(), "/not/a/video.mp4")
	is.True(src == nil)
	is.True(errors.Is(err, videobackend.ErrSourceUnavailable))
}

func TestOpenCVBackendOpenReturnsSourceUnavailableForMissingFile(t *testing.T) {
	is := is.New(t)
	src, err := videobackend.OpenCV().Open(context.Background(), "/definitely/not/here.mp4")
	is.True(src == nil)
	is.True(errors.Is(err, videobackend.ErrSourceUnavailable))
}

func TestOpenCVBackendOpenRespectsCancelledContext(t *testing.T) {
	is := is.New(t)
	block := make(chan struct{})
	reset := videobackend.OverloadOpenVideoCapture(func(addr string) (*gocv.VideoCapture, error) {
		<-block
		return nil, errors.New("never opened")
	})
	defer reset()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src, err := videobackend.OpenCV().Open(ctx, "/blocked.mp4")
	is.True(src == nil)
	is.True(errors.Is(err, context.Canceled))
}

func TestOpenCVBackendClosesCaptureOpenedAfterCancel(t *testing.T) {
	is := is.New(t)
	late := &gocv.VideoCapture{}
	block := make(chan struct{})
	reset := videobackend.OverloadOpenVideoCapture(func(addr string) (*gocv.VideoCapture, error) {
		<-block
		return late, nil
	})
	defer reset()

	closed := make(chan *gocv.VideoCapture, 1)
	resetClose := videobackend.OverloadCloseVideoCapture(func(vc *gocv.VideoCapture) error {
		closed <- vc
		return nil
	})
	defer resetClose()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src, err := videobackend.OpenCV().Open(ctx, "/slow.mp4")
	is.True(src == nil)
	is.True(errors.Is(err, context.Canceled))

	close(block)
	select {
	case vc := <-closed:
		is.True(vc == late)
	case <-time.After(time.Second):
		t.Fatal("capture opened after cancellation was never closed")
	}
}

func TestOpenCVBackendNewFrameIsEmpty(t *testing.T) {
	is := is.New(t)
	frame := videobackend.OpenCV().NewFrame()
	defer frame.Close()
	is.True(frame.Empty())
}
