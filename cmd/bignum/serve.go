package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/plaid"
	"github.com/biggernumbers/biggernumbers/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the API server",
		Long: `Start the HTTP/JSON API that the link flow and dashboard talk to.

Requires Plaid credentials (PLAID_CLIENT_ID, PLAID_SECRET) in the
environment, a .env file, or the config file.`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", ":8000", "listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	client, err := plaid.NewClient(plaidConfigFromEnv())
	if err != nil {
		return fmt.Errorf("failed to create Plaid client: %w", err)
	}

	addr := viper.GetString("server.addr")
	srv := server.NewServer(addr, client)

	errChan := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
