package cli

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/giilab/giiscope/pkg/log"
	"github.com/giilab/giiscope/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scenario predictions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadBundleAndTable()
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           server.Router(p),
			ReadHeaderTimeout: 5 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := log.GetLoggerWithName("serve")
		errCh := make(chan error, 1)
		go func() {
			logger.Info("listening", "addr", cfg.ListenAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
