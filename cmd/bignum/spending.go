package main

import (
	"fmt"
	"os"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/ofx"
	"github.com/biggernumbers/biggernumbers/internal/session"
	"github.com/biggernumbers/biggernumbers/internal/spending"
	"github.com/spf13/cobra"
)

func spendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Show current spending totals",
		Long: `Fetch the three rolling totals (daily, weekly, monthly) from the API
server and print them.

With --ofx, aggregate a downloaded OFX/QFX statement file instead of
talking to the server. Useful when the bank connection is down.`,
		RunE: runSpending,
	}

	cmd.Flags().String("ofx", "", "aggregate an OFX/QFX file instead of fetching from the API")

	return cmd
}

func runSpending(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if path, _ := cmd.Flags().GetString("ofx"); path != "" {
		return spendingFromOFX(path)
	}

	mgr, store, err := newSessionManager(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if mgr.State() != session.StateConnected {
		return fmt.Errorf("no account linked; run 'bignum link' first")
	}

	snap, err := mgr.RefreshSpending(ctx)
	if err != nil {
		return err
	}

	printSnapshot(snap)
	return nil
}

func spendingFromOFX(path string) error {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open OFX file: %w", err)
	}
	defer func() { _ = f.Close() }()

	txns, err := ofx.NewParser().ParseFile(f)
	if err != nil {
		return fmt.Errorf("failed to parse OFX file: %w", err)
	}

	printSnapshot(spending.Aggregate(txns, time.Now()))
	return nil
}

func printSnapshot(snap spending.Snapshot) {
	rounded := snap.Rounded()
	fmt.Printf("Daily:   £%.2f\n", rounded.Daily)
	fmt.Printf("Weekly:  £%.2f\n", rounded.Weekly)
	fmt.Printf("Monthly: £%.2f\n", rounded.Monthly)
}
