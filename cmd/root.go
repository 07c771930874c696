package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/examprep/internal/config"
	"github.com/abhisek/examprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "examprep",
	Short: "AI exam practice in the terminal",
	Long: "examprep asks generated exam questions, scores your answers and\n" +
		"adapts the difficulty to how you are doing.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("db", "", "Path to SQLite database file (overrides EXAMPREP_DB)")
	f.String("subject", "", "Initial subject")
	f.String("difficulty", "", "Initial difficulty: easy, medium or hard")
	f.String("backend", "", "Question backend: llm (in-process), builtin (offline pools) or http (remote service)")
	f.String("api-url", "", "Base URL of the question service for the http backend")
	f.String("lang", "", "Interface language (en, ru)")
	f.String("log-level", "", "Log level: debug, info, warn or error")
	f.String("log-format", "", "Log format: text or json")
	f.String("log-file", "", "Log file for the TUI (default $XDG_STATE_HOME/examprep/examprep.log)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newLLMCmd())
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the configuration for cmd and opens its database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
