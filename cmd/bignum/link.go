package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/biggernumbers/biggernumbers/internal/config"
	"github.com/biggernumbers/biggernumbers/internal/session"
	"github.com/spf13/cobra"
)

func linkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Link a bank account via Plaid",
		Long: `Open the Plaid Link flow in your browser and store the resulting
access token locally. Requires the API server to be running (bignum serve).

With --demo, skip linking entirely and use canned demo figures.`,
		RunE: runLink,
	}

	cmd.Flags().Bool("demo", false, "use demo mode instead of linking a real account")
	cmd.Flags().Bool("https", false, "serve the Link page over HTTPS (required for OAuth banks)")
	cmd.Flags().Bool("no-browser", false, "print the Link URL instead of opening a browser")
	cmd.Flags().String("link-addr", ":8080", "listen address for the Link page")

	return cmd
}

func runLink(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	mgr, store, err := newSessionManager(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		if err := mgr.UseDemoMode(ctx); err != nil {
			return err
		}
		fmt.Println("Demo mode enabled. Run 'bignum spending' to see the numbers.")
		return nil
	}

	if mgr.State() == session.StateConnected {
		fmt.Println("An account is already linked. Linking again replaces it.")
	}

	linkToken, err := mgr.RequestLinkToken(ctx)
	if err != nil {
		return err
	}

	https, _ := cmd.Flags().GetBool("https")
	noBrowser, _ := cmd.Flags().GetBool("no-browser")
	addr, _ := cmd.Flags().GetString("link-addr")

	certDir := ""
	if https {
		stateDir, dirErr := config.StateDir()
		if dirErr != nil {
			return fmt.Errorf("failed to locate state directory: %w", dirErr)
		}
		certDir = filepath.Join(stateDir, "certs")
	}

	handler := session.NewBrowserLinkHandler(session.BrowserConfig{
		Addr:      addr,
		HTTPS:     https,
		CertDir:   certDir,
		NoBrowser: noBrowser,
	})

	err = mgr.BeginLinking(ctx, handler, linkToken)
	switch {
	case errors.Is(err, session.ErrLinkExit):
		slog.Info("Link flow exited without connecting", "error", err)
		fmt.Println("Linking was cancelled. Try again, or run 'bignum link --demo'.")
		return nil
	case err != nil:
		return err
	}

	fmt.Println("Account linked. Run 'bignum spending' to see the numbers.")
	return nil
}
