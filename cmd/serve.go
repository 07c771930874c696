package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/metrics"
	"github.com/abhisek/examprep/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the question/evaluation HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}
		logger := config.SetupLogging(os.Stderr, cfg.LogLevel, cfg.LogFormat)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m := metrics.New()
		svc, closeSvc, err := buildService(ctx, cfg, m)
		if err != nil {
			return err
		}
		defer closeSvc()

		srv := server.New(svc, server.Options{
			RateLimit: cfg.RateLimit,
			Metrics:   m,
			Logger:    logger,
		})
		return srv.ListenAndServe(ctx, cfg.Addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8000)")
	serveCmd.Flags().Int("rate-limit", 60, "Requests per minute per client on the question endpoints (0 disables)")
}
