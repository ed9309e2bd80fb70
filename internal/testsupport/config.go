package testsupport

import (
	"path/filepath"
	"testing"

	"refscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CatalogPath = filepath.Join(base, "models.json")
	cfg.Paths.AssetsDir = filepath.Join(base, "assets")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Workflow.PauseMilliseconds = 0

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithWhisperBinary overrides the transcription binary on the test config.
func WithWhisperBinary(binary string) ConfigOption {
	return func(c *config.Config) {
		c.Whisper.Binary = binary
	}
}

// WithJournalDisabled turns off run-history journaling on the test config.
func WithJournalDisabled() ConfigOption {
	return func(c *config.Config) {
		c.Journal.Enabled = false
	}
}
