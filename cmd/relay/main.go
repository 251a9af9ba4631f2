package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pairing/internal/logging"
	"pairing/internal/relayserver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		addr     string
		capacity int
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "relay",
		Short:        "Run the in-memory session directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(logging.Config{App: "relay", Level: logLevel, Out: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              addr,
				Handler:           relayserver.New(relayserver.WithCapacity(capacity), relayserver.WithLogger(log)).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			log.Info().Str("addr", addr).Int("capacity", capacity).Msg("relay listening")

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			log.Info().Msg("relay stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "max participants per session (0 = unlimited)")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn, error or off")
	return cmd
}
