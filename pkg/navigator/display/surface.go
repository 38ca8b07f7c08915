package display

import (
	"context"
	"image"

	"github.com/tauraamui/shotdetect/pkg/log"
	"github.com/tauraamui/shotdetect/pkg/navigator"
)

type Action int

const (
	ActionNext Action = iota
	ActionPrevious
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrevious:
		return "previous"
	default:
		return "quit"
	}
}

// Surface is somewhere composed views are shown and operator input is
// read back from.
type Surface interface {
	Present(img image.Image, caption string) error
	Await() Action
	Close() error
}

// Navigator is the part of navigator.Navigator the review loop drives.
type Navigator interface {
	Show(int) (navigator.View, error)
	Next() (navigator.View, error)
	Previous() (navigator.View, error)
}

// Run presents the first boundary and then follows the surface's actions
// until it asks to quit or ctx is done.
func Run(ctx context.Context, nav Navigator, surface Surface) error {
	view, err := nav.Show(0)
	for {
		if err != nil {
			return err
		}
		if err := present(surface, view); err != nil {
			return err
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		action := surface.Await()
		log.Debug("Review action: %s", action)
		switch action {
		case ActionNext:
			view, err = nav.Next()
		case ActionPrevious:
			view, err = nav.Previous()
		default:
			return nil
		}
	}
}

func present(surface Surface, view navigator.View) error {
	defer view.Close()
	img, err := Compose(view)
	if err != nil {
		return err
	}
	return surface.Present(img, view.Caption)
}
