package main

import (
	"github.com/spf13/cobra"
	"github.com/tauraamui/shotdetect/pkg/log"
)

func newRootCommand() *cobra.Command {
	var verbose bool
	var backendFlag string

	ctx := newCommandContext(&backendFlag)

	rootCmd := &cobra.Command{
		Use:           "shotdetect",
		Short:         "Find and review shot transitions in videos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				log.SetLevel("debug")
			}
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Video backend to decode with (opencv, synthetic)")

	rootCmd.AddCommand(newDetectCommand(ctx))
	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newTransitionsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}
