package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func disconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the linked account",
		Long:  `Remove the stored access token. Spending totals reset to zero.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			mgr, store, err := newSessionManager(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := mgr.Disconnect(ctx); err != nil {
				return err
			}

			fmt.Println("Account disconnected.")
			return nil
		},
	}
}
