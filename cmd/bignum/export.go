package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/config"
	"github.com/biggernumbers/biggernumbers/internal/session"
	"github.com/biggernumbers/biggernumbers/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Append the current totals to a Google Sheets spreadsheet",
		Long: `Refresh the spending totals and append them as a row to a Google
Sheets spreadsheet. The first run walks you through Google OAuth2 in
your browser; the token is saved for later runs.`,
		RunE: runExport,
	}

	cmd.Flags().String("spreadsheet-id", "", "existing spreadsheet to append to (created if empty)")
	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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

	cfg := sheets.DefaultConfig()
	cfg.LoadFromEnv()
	if id := viper.GetString("sheets.spreadsheet_id"); id != "" {
		cfg.SpreadsheetID = id
	}
	if cfg.TokenFile == "" {
		stateDir, dirErr := config.StateDir()
		if dirErr != nil {
			return fmt.Errorf("failed to locate state directory: %w", dirErr)
		}
		cfg.TokenFile = filepath.Join(stateDir, "sheets-token.json")
	}

	exporter, err := sheets.NewExporter(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}

	if err := exporter.Export(ctx, snap, time.Now()); err != nil {
		return err
	}

	fmt.Println("Exported spending totals to Google Sheets.")
	return nil
}
