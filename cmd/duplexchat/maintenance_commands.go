// Copyright 2016 Aleksandr Demakin. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/nxgtw/duplexchat/internal/common"
	"github.com/nxgtw/duplexchat/mq"

	"github.com/spf13/cobra"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var aToBFlag, bToAFlag string
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove queues left behind by killed processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("a-to-b-key") {
				cfg.Queues.AToBKey = aToBFlag
			}
			if cmd.Flags().Changed("b-to-a-key") {
				cfg.Queues.BToAKey = bToAFlag
			}
			aToB, bToA, err := cfg.QueueKeys()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, k := range []common.Key{aToB, bToA} {
				removed, err := removeQueue(k)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(out, "removed queue %v\n", k)
				} else {
					fmt.Fprintf(out, "queue %v does not exist\n", k)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&aToBFlag, "a-to-b-key", "", "Key of the initiator-to-joiner queue")
	cmd.Flags().StringVar(&bToAFlag, "b-to-a-key", "", "Key of the joiner-to-initiator queue")
	return cmd
}

func removeQueue(k common.Key) (bool, error) {
	q, err := mq.OpenSystemVMessageQueue(k, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, q.Destroy()
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", ctx.configPath)
			return cfg.Encode(cmd.OutOrStdout())
		},
	}
}
