package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/shotdetect/pkg/feature"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var video, motion, modeName, output string
	var prominence float64
	var opts reviewOptions

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Extract a signal, find its transitions and review them in one pass",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(motion) > 0 && !cmd.Flags().Changed("mode") {
				modeName = string(feature.EntropyOfMotion)
			}
			mode, err := feature.ParseMode(modeName)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("prominence") {
				prominence = ctx.prominenceFor(mode)
			}

			source := video
			if len(motion) > 0 {
				source = motion
			}

			reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			extraction, err := extract(cmd, ctx, reporter, source, mode, output)
			if err != nil {
				return err
			}

			p, release := ctx.newPipeline(reporter)
			defer release()

			transitions, err := p.FindTransitions(cmd.Context(), extraction.SignalPath, video, mode, prominence)
			if err != nil {
				return reportNoTransitions(reporter, err, prominence)
			}
			defer transitions.Close()

			return review(cmd.Context(), reporter, transitions, opts)
		},
	}

	cmd.Flags().StringVarP(&video, "file", "f", "", "Video to detect transitions in")
	cmd.Flags().StringVarP(&motion, "motion", "m", "", "Motion video to extract from instead, implies --mode entropy")
	cmd.Flags().StringVar(&modeName, "mode", string(feature.HistogramDistance), "Feature to extract (histogram, entropy, optical-flow)")
	cmd.Flags().Float64VarP(&prominence, "prominence", "p", 0, "Minimum peak prominence, defaults per mode from config")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Signal file to write, defaults to <video>.<mode>.npy")
	cmd.Flags().StringVar(&opts.exportDir, "export", "", "Write transition frames as PNGs to this directory instead of opening a window")
	cmd.Flags().BoolVar(&opts.noReview, "no-review", false, "Only print the transition report")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
