package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/examgen"
	"github.com/abhisek/examprep/internal/llm"
)

// isolate points HOME and the working directory at an empty temp dir so
// no real config file or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	f := cmd.Flags()
	f.String("subject", "", "")
	f.String("difficulty", "", "")
	f.String("backend", "", "")
	f.String("log-level", "", "")
	f.Int("rate-limit", 0, "")
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(testCmd())
	require.NoError(t, err)
	assert.Equal(t, examgen.DefaultSubjects[0], cfg.Subject)
	assert.Equal(t, examgen.DifficultyEasy, cfg.Difficulty)
	assert.Equal(t, BackendLLM, cfg.Backend)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.Equal(t, 60, cfg.RateLimit)
	assert.Equal(t, llm.DefaultConfig().Timeout, cfg.LLM.Timeout)
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	isolate(t)
	t.Setenv("EXAMPREP_SUBJECT", "History")
	t.Setenv("EXAMPREP_DIFFICULTY", "hard")

	cmd := testCmd()
	require.NoError(t, cmd.Flags().Set("subject", "Biology"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Biology", cfg.Subject)
	assert.Equal(t, examgen.DifficultyHard, cfg.Difficulty)
}

func TestLoadNestedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("EXAMPREP_LLM_PROVIDER", "openai")
	t.Setenv("EXAMPREP_LLM_OPENAI_API_KEY", "sk-test")

	cfg, err := Load(testCmd())
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	content := "subject: Chemistry\ndifficulty: easy\nbackend: http\napi-url: http://exam.local:9000/\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "examprep.yaml"), []byte(content), 0o644))

	cfg, err := Load(testCmd())
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", cfg.Subject)
	assert.Equal(t, examgen.DifficultyEasy, cfg.Difficulty)
	assert.Equal(t, BackendHTTP, cfg.Backend)
	assert.Equal(t, "http://exam.local:9000", cfg.APIURL)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EXAMPREP_LANG=ru\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EXAMPREP_LANG") })

	cfg, err := Load(testCmd())
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Lang)
}

func TestLoadBuiltinBackendFlag(t *testing.T) {
	isolate(t)

	cmd := testCmd()
	require.NoError(t, cmd.Flags().Set("backend", "Builtin"))

	cfg, err := Load(cmd)
	require.NoError(t, err)
	assert.Equal(t, BackendBuiltin, cfg.Backend)
}

func TestFromViperValidation(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		wantErr string
	}{
		{"bad difficulty", map[string]any{"difficulty": "extreme"}, "unknown difficulty"},
		{"bad backend", map[string]any{"backend": "grpc"}, "unknown backend"},
		{"blank subject", map[string]any{"subject": "  "}, "subject"},
		{"http without url", map[string]any{"backend": "http", "api-url": ""}, "api-url"},
		{"negative rate", map[string]any{"rate-limit": -1}, "rate-limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupLogging(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogging(&buf, "warn", "json")
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.HasPrefix(out, "{"), "expected json output, got %q", out)
	assert.Contains(t, out, `"k":"v"`)
}

func TestOpenLogFileDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	f, err := OpenLogFile("")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, "examprep", "examprep.log"), f.Name())
}
