package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/xerror"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent extractions and transition searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 {
				return xerror.Errorf("history limit must be at least 1, got %d", limit)
			}

			reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			cat := ctx.openCatalog()
			if cat == nil {
				reporter.Warning("Run catalog is disabled or unavailable")
				return nil
			}
			defer cat.Close()

			extractions, err := cat.Extractions(limit)
			if err != nil {
				return err
			}
			detections, err := cat.Detections(limit)
			if err != nil {
				return err
			}

			reporter.Heading("EXTRACTIONS")
			reporter.Print(renderExtractionHistory(extractions))
			reporter.Heading("SEARCHES")
			reporter.Print(renderDetectionHistory(detections))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "number", "n", 10, "Number of entries to list")

	return cmd
}
