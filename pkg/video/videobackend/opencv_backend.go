package videobackend

import (
	"context"
	"image"
	"sync"

	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

type openCVFrame struct {
	isClosed bool
	mat      gocv.Mat
}

func (frame *openCVFrame) DataRef() interface{} {
	return &frame.mat
}

func (frame *openCVFrame) Dimensions() videoframe.Dimensions {
	return videoframe.Dimensions{W: frame.mat.Cols(), H: frame.mat.Rows()}
}

func (frame *openCVFrame) Empty() bool {
	return frame.isClosed || frame.mat.Empty()
}

func (frame *openCVFrame) Close() {
	if !frame.isClosed {
		frame.mat.Close()
		frame.isClosed = true
	}
}

// FrameFromImage converts img into an owned BGR frame.
func FrameFromImage(img image.Image) (videoframe.Frame, error) {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, xerror.Errorf("unable to convert Go image into OpenCV mat: %w", err)
	}
	return &openCVFrame{mat: mat}, nil
}

type openCVBackend struct{}

func (b *openCVBackend) Open(cancel context.Context, addr string) (Source, error) {
	src := openCVSource{addr: addr}
	if err := src.open(cancel); err != nil {
		return nil, err
	}
	return &src, nil
}

func (b *openCVBackend) NewFrame() videoframe.Frame {
	return &openCVFrame{mat: gocv.NewMat()}
}

type openVideoCaptureResult struct {
	vc  *gocv.VideoCapture
	err error
}

var openVideoCapture = func(addr string) (*gocv.VideoCapture, error) {
	return gocv.VideoCaptureFile(addr)
}

var closeVideoCapture = func(vc *gocv.VideoCapture) error {
	return vc.Close()
}

var readFromVideoCapture = func(vc *gocv.VideoCapture, mat *gocv.Mat) bool {
	if vc.IsOpened() {
		return vc.Read(mat)
	}
	return false
}

var videoCaptureProp = func(vc *gocv.VideoCapture, prop gocv.VideoCaptureProperties) float64 {
	return vc.Get(prop)
}

var seekVideoCapture = func(vc *gocv.VideoCapture, index int) {
	vc.Set(gocv.VideoCapturePosFrames, float64(index))
}

type openCVSource struct {
	addr       string
	mu         sync.Mutex
	vc         *gocv.VideoCapture
	frameCount int
	fps        float64
	pos        int
}

func (s *openCVSource) open(cancel context.Context) error {
	result := make(chan openVideoCaptureResult, 1)
	go func(addr string) {
		vc, err := openVideoCapture(addr)
		result <- openVideoCaptureResult{vc: vc, err: err}
	}(s.addr)

	select {
	case r := <-result:
		if r.err != nil {
			return xerror.Errorf("%w: %s: %v", ErrSourceUnavailable, s.addr, r.err)
		}
		if r.vc == nil {
			return xerror.Errorf("%w: %s", ErrSourceUnavailable, s.addr)
		}
		if !r.vc.IsOpened() {
			closeVideoCapture(r.vc) //nolint
			return xerror.Errorf("%w: %s", ErrSourceUnavailable, s.addr)
		}
		s.vc = r.vc
	case <-cancel.Done():
		// the open may still succeed after we give up on it
		go func() {
			if r := <-result; r.vc != nil {
				closeVideoCapture(r.vc) //nolint
			}
		}()
		return xerror.Errorf("opening %s cancelled: %w", s.addr, cancel.Err())
	}

	s.frameCount = int(videoCaptureProp(s.vc, gocv.VideoCaptureFrameCount))
	if s.frameCount < 0 {
		s.frameCount = 0
	}
	s.fps = videoCaptureProp(s.vc, gocv.VideoCaptureFPS)
	log.Debug("Opened video [%s]: %d frames at %.3f fps", s.addr, s.frameCount, s.fps)
	return nil
}

func (s *openCVSource) FrameCount() int { return s.frameCount }

func (s *openCVSource) FPS() float64 { return s.fps }

func (s *openCVSource) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

func (s *openCVSource) ReadNext(frame videoframe.Frame) error {
	mat, ok := frame.DataRef().(*gocv.Mat)
	if !ok {
		return xerror.New("must pass OpenCV frame to OpenCV source read")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vc == nil || !readFromVideoCapture(s.vc, mat) || mat.Empty() {
		return ErrEndOfStream
	}
	s.pos++
	return nil
}

func (s *openCVSource) Seek(index int) error {
	if index < 0 || index >= s.frameCount {
		return xerror.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, index, s.frameCount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vc == nil {
		return xerror.New("cannot seek closed video source")
	}
	seekVideoCapture(s.vc, index)
	s.pos = index
	return nil
}

func (s *openCVSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vc == nil {
		return nil
	}
	err := closeVideoCapture(s.vc)
	s.vc = nil
	return err
}
