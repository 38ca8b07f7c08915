package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tauraamui/shotdetect/pkg/feature"
	"github.com/tauraamui/shotdetect/pkg/pipeline"
)

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var video, modeName, output string

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract a transition signal from a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := feature.ParseMode(modeName)
			if err != nil {
				return err
			}

			reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			extraction, err := extract(cmd, ctx, reporter, video, mode, output)
			if err != nil {
				return err
			}

			reporter.Success("Signal written to %s", extraction.SignalPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&video, "file", "f", "", "Video to extract from")
	cmd.Flags().StringVar(&modeName, "mode", string(feature.HistogramDistance), "Feature to extract (histogram, entropy, optical-flow)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Signal file to write, defaults to <video>.<mode>.npy")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// extract runs one locked extraction and prints its summary.
func extract(
	cmd *cobra.Command, ctx *commandContext, reporter *terminalReporter, video string, mode feature.Mode, output string,
) (pipeline.Extraction, error) {
	if len(output) == 0 {
		output = pipeline.SignalName(video, mode)
	}

	unlock, err := lockOutput(ctx.store().Path(output))
	if err != nil {
		return pipeline.Extraction{}, err
	}
	defer unlock()

	p, release := ctx.newPipeline(reporter)
	defer release()

	reporter.Heading("EXTRACTION")
	reporter.Label(7, "Video:", video)
	reporter.Label(7, "Mode:", mode.String())

	extraction, err := p.Extract(cmd.Context(), video, mode, output)
	if err != nil {
		return pipeline.Extraction{}, err
	}

	reporter.Label(7, "Frames:", fmt.Sprintf("%d at %.3f fps", extraction.FrameCount, extraction.FPS))
	reporter.Label(7, "Values:", fmt.Sprintf("%d", extraction.Signal.Len()))
	return extraction, nil
}
