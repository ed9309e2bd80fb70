package whispercli

import "time"

// Config captures runtime settings for whisper invocations.
type Config struct {
	// Binary is the whisper command to execute.
	Binary string
	// Model is the whisper model name (e.g. "medium").
	Model string
	// Timeout bounds a single transcription. Zero means DefaultTimeout.
	Timeout time.Duration
}

const (
	// DefaultBinary is the whisper command used when none is configured.
	DefaultBinary = "whisper"
	// DefaultModel matches the model the catalog transcripts were built with.
	DefaultModel = "medium"
	// DefaultTimeout bounds a single file's transcription.
	DefaultTimeout = 10 * time.Minute
	// OutputFormat asks whisper for machine-readable output.
	OutputFormat = "json"
)
