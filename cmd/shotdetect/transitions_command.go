package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/shotdetect/pkg/feature"
	"github.com/tauraamui/shotdetect/pkg/log"
)

func newTransitionsCommand(ctx *commandContext) *cobra.Command {
	var signalPath, video, modeName string
	var prominence float64
	var opts reviewOptions

	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Find transitions in a stored signal and review them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := ctx.modeForSignal(signalPath, modeName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prominence") {
				prominence = ctx.prominenceFor(mode)
			}

			reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			p, release := ctx.newPipeline(reporter)
			defer release()

			transitions, err := p.FindTransitions(cmd.Context(), signalPath, video, mode, prominence)
			if err != nil {
				return reportNoTransitions(reporter, err, prominence)
			}
			defer transitions.Close()

			return review(cmd.Context(), reporter, transitions, opts)
		},
	}

	cmd.Flags().StringVarP(&signalPath, "signal", "s", "", "Signal file to search")
	cmd.Flags().StringVarP(&video, "file", "f", "", "Video the signal was extracted from")
	cmd.Flags().StringVar(&modeName, "mode", "", "Feature the signal holds, looked up in the run catalog when omitted")
	cmd.Flags().Float64VarP(&prominence, "prominence", "p", 0, "Minimum peak prominence, defaults per mode from config")
	cmd.Flags().StringVar(&opts.exportDir, "export", "", "Write transition frames as PNGs to this directory instead of opening a window")
	cmd.Flags().BoolVar(&opts.noReview, "no-review", false, "Only print the transition report")
	_ = cmd.MarkFlagRequired("signal")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// modeForSignal parses modeName, or when it is empty asks the catalog
// which mode produced signalPath. Histogram is assumed otherwise.
func (c *commandContext) modeForSignal(signalPath, modeName string) (feature.Mode, error) {
	if len(modeName) > 0 {
		return feature.ParseMode(modeName)
	}

	cat := c.openCatalog()
	if cat == nil {
		return feature.HistogramDistance, nil
	}
	defer cat.Close()

	extraction, err := cat.ExtractionFor(c.store().Path(signalPath))
	if err != nil {
		log.Debug("No catalog entry for %s, assuming %s", signalPath, feature.HistogramDistance)
		return feature.HistogramDistance, nil
	}
	return feature.ParseMode(extraction.Mode)
}

func (c *commandContext) prominenceFor(mode feature.Mode) float64 {
	if c.values == nil {
		return mode.DefaultProminence()
	}
	return c.values.ProminenceFor(mode)
}
