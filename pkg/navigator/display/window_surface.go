package display

import (
	"image"

	"github.com/tauraamui/xerror"
	"gocv.io/x/gocv"
)

const pollDelayMillis = 100

// key codes as reported by WaitKey across the GTK, Qt and Win32 highgui
// builds, both masked and unmasked
var keyActions = map[int]Action{
	'n': ActionNext, 'd': ActionNext,
	83: ActionNext, 65363: ActionNext, 2555904: ActionNext,
	'p': ActionPrevious, 'a': ActionPrevious,
	81: ActionPrevious, 65361: ActionPrevious, 2424832: ActionPrevious,
	'q': ActionQuit, 27: ActionQuit,
}

// ActionForKey maps a WaitKey result to a review action.
func ActionForKey(key int) (Action, bool) {
	action, ok := keyActions[key]
	return action, ok
}

type WindowSurface struct {
	window *gocv.Window
}

func NewWindowSurface(title string) *WindowSurface {
	return &WindowSurface{window: gocv.NewWindow(title)}
}

func (s *WindowSurface) Present(img image.Image, caption string) error {
	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return xerror.Errorf("unable to convert composite for display: %w", err)
	}
	defer mat.Close()

	s.window.SetWindowTitle(caption)
	s.window.IMShow(mat)
	return nil
}

// Await blocks until a mapped key is pressed. Closing the window quits.
func (s *WindowSurface) Await() Action {
	for s.window.IsOpen() {
		key := s.window.WaitKey(pollDelayMillis)
		if key < 0 {
			continue
		}
		if action, ok := ActionForKey(key); ok {
			return action
		}
	}
	return ActionQuit
}

func (s *WindowSurface) Close() error {
	return s.window.Close()
}
