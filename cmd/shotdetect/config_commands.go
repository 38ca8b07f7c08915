package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/tauraamui/shotdetect/pkg/config"
	"github.com/tauraamui/shotdetect/pkg/configdef"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the shotdetect config file",
	}

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			path, err := config.DefaultCreator().Create()
			if err != nil {
				if errors.Is(err, configdef.ErrConfigAlreadyExists) {
					reporter.Warning("Config already exists at %s", path)
					return nil
				}
				return err
			}
			reporter.Success("Wrote default config to %s", path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where the config file is read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(path)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "remove",
		Short: "Delete the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DefaultDestroyer().Destroy(); err != nil {
				return err
			}
			newTerminalReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()).Success("Config removed")
			return nil
		},
	})

	return configCmd
}
