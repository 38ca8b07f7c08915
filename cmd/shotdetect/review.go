package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/tauraamui/shotdetect/pkg/navigator/display"
	"github.com/tauraamui/shotdetect/pkg/peaks"
	"github.com/tauraamui/shotdetect/pkg/pipeline"
)

type reviewOptions struct {
	exportDir string
	noReview  bool
}

// review prints the boundary report and then hands the transitions to
// the chosen surface.
func review(ctx context.Context, reporter *terminalReporter, transitions *pipeline.Transitions, opts reviewOptions) error {
	reporter.Heading("TRANSITIONS")
	reporter.Label(11, "Signal:", transitions.SignalPath)
	reporter.Label(11, "Video:", transitions.VideoPath)
	reporter.Label(11, "Prominence:", fmt.Sprintf("%v", transitions.Prominence))
	reporter.Label(11, "Found:", fmt.Sprintf("%d", transitions.Boundaries.Len()))
	reporter.Print(renderBoundaryReport(transitions.Report()))

	if opts.noReview {
		return nil
	}

	var surface display.Surface
	if len(opts.exportDir) > 0 {
		export, err := display.NewExportSurface(opts.exportDir, transitions.Boundaries.Len())
		if err != nil {
			return err
		}
		surface = export
		reporter.Step("Exporting transition frames to %s", opts.exportDir)
	} else {
		surface = display.NewWindowSurface("shotdetect - " + transitions.VideoPath)
		reporter.Step("Reviewing in window: n/d/right next, p/a/left previous, q/esc quit")
	}
	defer surface.Close()

	if err := display.Run(ctx, transitions.Navigator, surface); err != nil {
		return err
	}
	reporter.Success("Review finished")
	return nil
}

// reportNoTransitions turns an empty search into advice rather than a
// failure.
func reportNoTransitions(reporter *terminalReporter, err error, prominence float64) error {
	if !errors.Is(err, peaks.ErrNoTransitions) {
		return err
	}
	reporter.Warning("No transitions found at prominence %v, try a lower --prominence", prominence)
	return nil
}
