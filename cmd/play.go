package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/apiclient"
	"github.com/abhisek/examprep/internal/app"
	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/i18n"
	"github.com/abhisek/examprep/internal/llm"
	"github.com/abhisek/examprep/internal/metrics"
	"github.com/abhisek/examprep/internal/session"
	"github.com/abhisek/examprep/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay builds the collaborators and launches the TUI. Logs go to a
// file because the terminal belongs to the UI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(cmd)
	if err != nil {
		return err
	}

	logFile, err := config.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := config.SetupLogging(logFile, cfg.LogLevel, cfg.LogFormat)

	svc, closeSvc, err := buildService(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer closeSvc()

	cat, err := i18n.New(cfg.Lang)
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}

	orch := session.NewOrchestrator(svc, svc, session.Options{
		Subject:    cfg.Subject,
		Difficulty: cfg.Difficulty,
		Logger:     logger,
	})
	logger.Info("session started",
		"backend", cfg.Backend,
		"subject", cfg.Subject,
		"difficulty", cfg.Difficulty,
		"lang", cat.Lang(),
	)

	return app.Run(ctx, app.Options{
		Orchestrator: orch,
		Catalog:      cat,
	})
}

// buildService returns the question/evaluation collaborators for cfg and a
// function releasing their resources.
func buildService(ctx context.Context, cfg config.Config, m *metrics.Metrics) (examgen.Service, func(), error) {
	switch selectBackend(cfg) {
	case config.BackendHTTP:
		slog.Debug("using remote question service", "url", cfg.APIURL)
		return apiclient.New(cfg.APIURL), func() {}, nil
	case config.BackendBuiltin:
		if cfg.Backend != config.BackendBuiltin {
			slog.Warn("no LLM API key configured, using built-in questions", "provider", cfg.LLM.Provider)
		}
		return examgen.NewBuiltin(examgen.DefaultConfig()), func() {}, nil
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, llm.Options{
		EventRepo: st.EventRepo(),
		Metrics:   m,
	})
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	slog.Debug("using LLM provider", "provider", cfg.LLM.Provider, "model", provider.ModelID())

	return examgen.New(provider, examgen.DefaultConfig()), func() { st.Close() }, nil
}

// selectBackend resolves the backend buildService uses. The llm backend
// degrades to builtin when its provider has no API key.
func selectBackend(cfg config.Config) string {
	if cfg.Backend == config.BackendLLM && cfg.LLM.MissingKey() {
		return config.BackendBuiltin
	}
	return cfg.Backend
}
