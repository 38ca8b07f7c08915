// Package navigator steps an operator through detected shot boundaries,
// decoding the frames either side of each for review. It holds no
// rendering state; see package display for presenting views.
package navigator

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/tauraamui/shotdetect/pkg/peaks"
	"github.com/tauraamui/shotdetect/pkg/video/videobackend"
	"github.com/tauraamui/shotdetect/pkg/video/videoframe"
	"github.com/tauraamui/xerror"
)

// View is the decoded context around one boundary. The caller owns the
// frames and must Close the view.
type View struct {
	Previous   videoframe.Frame
	Transition videoframe.Frame
	Next       videoframe.Frame
	// FrameIndex is the boundary's index into the video.
	FrameIndex int
	// Position is the boundary's index into the boundary set.
	Position  int
	Total     int
	Timestamp time.Duration
	Caption   string
}

func (v View) Frames() []videoframe.Frame {
	return []videoframe.Frame{v.Previous, v.Transition, v.Next}
}

func (v View) Close() {
	for _, f := range v.Frames() {
		if f != nil {
			f.Close()
		}
	}
}

type Navigator struct {
	mu         sync.Mutex
	src        videobackend.Source
	backend    videobackend.Backend
	boundaries peaks.BoundarySet
	cursor     int
}

func New(src videobackend.Source, backend videobackend.Backend, boundaries peaks.BoundarySet) (*Navigator, error) {
	if boundaries.Empty() {
		return nil, peaks.ErrNoTransitions
	}
	for _, b := range boundaries {
		if b < 0 || b >= src.FrameCount() {
			return nil, xerror.Errorf("%w: boundary %d not in [0, %d)", videobackend.ErrOutOfRange, b, src.FrameCount())
		}
	}
	return &Navigator{src: src, backend: backend, boundaries: boundaries}, nil
}

func (n *Navigator) Len() int { return len(n.boundaries) }

func (n *Navigator) Boundaries() peaks.BoundarySet { return n.boundaries }

func (n *Navigator) Cursor() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursor
}

// Current renders the boundary under the cursor.
func (n *Navigator) Current() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.show(n.cursor)
}

// Show moves the cursor to boundary i, wrapping out of range positions,
// and renders it.
func (n *Navigator) Show(i int) (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.moveTo(i)
}

// Next advances the cursor, wrapping from the last boundary to the first.
func (n *Navigator) Next() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.moveTo(n.cursor + 1)
}

// Previous moves the cursor back, wrapping from the first boundary to the last.
func (n *Navigator) Previous() (View, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.moveTo(n.cursor - 1)
}

// moveTo renders boundary i and only then commits the cursor, so a failed
// decode leaves it on the last boundary shown.
func (n *Navigator) moveTo(i int) (View, error) {
	i = wrap(i, len(n.boundaries))
	view, err := n.show(i)
	if err != nil {
		return View{}, err
	}
	n.cursor = i
	return view, nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// ContextIndices are the frames shown around boundary b. The neighbours
// clamp to the first and last frames of the video.
func ContextIndices(b, frameCount int) (prev, at, next int) {
	prev, at, next = b-1, b, b+1
	if prev < 0 {
		prev = 0
	}
	if next > frameCount-1 {
		next = frameCount - 1
	}
	return prev, at, next
}

func (n *Navigator) show(i int) (View, error) {
	b := n.boundaries[i]
	prev, at, next := ContextIndices(b, n.src.FrameCount())

	view := View{FrameIndex: b, Position: i, Total: len(n.boundaries)}
	var err error
	if view.Previous, err = n.decode(prev); err != nil {
		view.Close()
		return View{}, err
	}
	if view.Transition, err = n.decode(at); err != nil {
		view.Close()
		return View{}, err
	}
	if view.Next, err = n.decode(next); err != nil {
		view.Close()
		return View{}, err
	}

	view.Timestamp = Timestamp(b, n.src.FPS())
	view.Caption = Caption(b, i, len(n.boundaries), view.Timestamp)
	return view, nil
}

func (n *Navigator) decode(index int) (videoframe.Frame, error) {
	if err := n.src.Seek(index); err != nil {
		return nil, err
	}
	frame := n.backend.NewFrame()
	if err := n.src.ReadNext(frame); err != nil {
		frame.Close()
		return nil, xerror.Errorf("unable to decode frame %d: %w", index, err)
	}
	return frame, nil
}

// Timestamp is the presentation time of frame index at fps. Unknown frame
// rates give zero.
func Timestamp(index int, fps float64) time.Duration {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return 0
	}
	return time.Duration(float64(index) / fps * float64(time.Second))
}

// Clock formats d as minutes:seconds.
func Clock(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func Caption(frameIndex, position, total int, ts time.Duration) string {
	return fmt.Sprintf("Transition frame #%d - %d/%d - %s", frameIndex, position+1, total, Clock(ts))
}
