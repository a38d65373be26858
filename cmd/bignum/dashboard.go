package main

import (
	"fmt"

	"github.com/biggernumbers/biggernumbers/internal/session"
	"github.com/biggernumbers/biggernumbers/internal/tui"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Watch the numbers get bigger in your terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			mgr, store, err := newSessionManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if mgr.State() != session.StateConnected {
				return fmt.Errorf("no account linked; run 'bignum link' first")
			}

			return tui.Run(mgr, mgr.Snapshot())
		},
	}
}
