// Copyright 2016 Aleksandr Demakin. All rights reserved.

package main

import (
	"io"

	"github.com/spf13/cobra"
)

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var configFlag string
	var debugFlag bool
	var logFileFlag string

	ctx := newCommandContext(&configFlag, &debugFlag, &logFileFlag, stdin, stdout, stderr)

	rootCmd := &cobra.Command{
		Use:           "duplexchat",
		Short:         "Two-way chat between two processes over System V message queues",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write diagnostics to this file instead of stderr")

	rootCmd.AddCommand(newInitiatorCommand(ctx))
	rootCmd.AddCommand(newJoinerCommand(ctx))
	rootCmd.AddCommand(newCleanupCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
