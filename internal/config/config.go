// Package config resolves settings from flags, environment, .env and an
// optional config file, and configures logging.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/llm"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "EXAMPREP"

// Backends for question generation and evaluation.
const (
	BackendLLM  = "llm"
	BackendHTTP = "http"

	// BackendBuiltin uses the rule-based question pools. The llm backend
	// also falls back to it when no provider key is configured.
	BackendBuiltin = "builtin"
)

// Config holds the resolved settings shared by all commands.
type Config struct {
	Subject    string
	Difficulty examgen.Difficulty

	// Backend selects in-process LLM collaborators or a remote service.
	Backend string
	APIURL  string

	DBPath string
	Lang   string

	LogLevel  string
	LogFormat string
	LogFile   string

	// Addr and RateLimit configure the HTTP service. RateLimit is requests
	// per minute per client; zero disables limiting.
	Addr      string
	RateLimit int

	LLM llm.Config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("subject", examgen.DefaultSubjects[0])
	v.SetDefault("difficulty", string(examgen.DifficultyEasy))
	v.SetDefault("backend", BackendLLM)
	v.SetDefault("api-url", "http://localhost:8000")
	v.SetDefault("lang", "en")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")
	v.SetDefault("addr", ":8000")
	v.SetDefault("rate-limit", 60)
}

// NewViper binds cmd's flags and the environment to a fresh viper
// instance and reads the config file if one exists.
func NewViper(cmd *cobra.Command) *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	if cmd != nil {
		_ = v.BindPFlags(cmd.Flags())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("examprep")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/examprep")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

// Load resolves the Config for cmd.
func Load(cmd *cobra.Command) (Config, error) {
	return FromViper(NewViper(cmd))
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Subject:   strings.TrimSpace(v.GetString("subject")),
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString("backend"))),
		APIURL:    strings.TrimRight(v.GetString("api-url"), "/"),
		DBPath:    v.GetString("db"),
		Lang:      v.GetString("lang"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
		LogFile:   v.GetString("log-file"),
		Addr:      v.GetString("addr"),
		RateLimit: v.GetInt("rate-limit"),
		LLM:       llm.ConfigFromViper(v),
	}

	d, err := examgen.ParseDifficulty(v.GetString("difficulty"))
	if err != nil {
		return Config{}, err
	}
	cfg.Difficulty = d

	if cfg.Subject == "" {
		return Config{}, errors.New("subject must not be empty")
	}
	switch cfg.Backend {
	case BackendLLM, BackendBuiltin:
	case BackendHTTP:
		if cfg.APIURL == "" {
			return Config{}, errors.New("api-url is required for the http backend")
		}
	default:
		return Config{}, fmt.Errorf("unknown backend %q (want %s, %s or %s)", cfg.Backend, BackendLLM, BackendHTTP, BackendBuiltin)
	}
	if cfg.RateLimit < 0 {
		return Config{}, fmt.Errorf("rate-limit must not be negative, got %d", cfg.RateLimit)
	}

	return cfg, nil
}
