// Package whispercli wraps the external whisper command-line tool behind the
// transcriber boundary. One Service is constructed per batch run; probing the
// binary happens at construction so a missing tool fails the run before any
// catalog work starts.
package whispercli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	langpkg "refscribe/internal/language"
	"refscribe/internal/logging"
	"refscribe/internal/transcriber"
)

// Service invokes the whisper CLI for transcription.
type Service struct {
	cfg           Config
	logger        *slog.Logger
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a whisper service and verifies the binary is available.
func NewService(cfg Config) (*Service, error) {
	if cfg.Binary == "" {
		cfg.Binary = DefaultBinary
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if _, err := exec.LookPath(cfg.Binary); err != nil {
		return nil, fmt.Errorf("whisper binary %q unavailable: %w", cfg.Binary, err)
	}
	return &Service{cfg: cfg, logger: logging.NewNop()}, nil
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	s.commandRunner = runner
}

// WithLogger replaces the default no-op logger.
func (s *Service) WithLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Model returns the configured model name for logging.
func (s *Service) Model() string {
	return s.cfg.Model
}

// Transcribe runs whisper on the audio file and returns the trimmed
// transcript text. The language hint, when normalizable, constrains decoding;
// otherwise whisper auto-detects. Empty output is an error.
func (s *Service) Transcribe(ctx context.Context, audioPath, languageHint string) (string, error) {
	if info, err := os.Stat(audioPath); err != nil || info.IsDir() {
		return "", fmt.Errorf("%w: %s", transcriber.ErrAudioMissing, audioPath)
	}

	outputDir, err := os.MkdirTemp("", "refscribe-whisper-*")
	if err != nil {
		return "", fmt.Errorf("create whisper output dir: %w", err)
	}
	defer os.RemoveAll(outputDir)

	// Cancellation of the run is honored between entries by the caller; an
	// in-flight transcription runs to completion (or its own timeout) rather
	// than being killed mid-decode.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)
	defer cancel()

	args := s.buildArgs(audioPath, outputDir, languageHint)
	if err := s.run(runCtx, s.cfg.Binary, args...); err != nil {
		return "", fmt.Errorf("whisper: %w", err)
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	text, err := loadTranscriptText(filepath.Join(outputDir, baseName+".json"))
	if err != nil {
		return "", fmt.Errorf("whisper output: %w", err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: %s", transcriber.ErrEmptyTranscript, audioPath)
	}
	return text, nil
}

func (s *Service) buildArgs(source, outputDir, languageHint string) []string {
	args := []string{
		source,
		"--model", s.cfg.Model,
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
	}
	if hint := strings.TrimSpace(languageHint); hint != "" {
		lang := langpkg.ToISO2(hint)
		if lang == "" {
			// An unrecognized hint is still forwarded verbatim; whisper has
			// its own name table and rejects it with a clear error if bogus.
			s.logger.Warn("language hint not recognized, forwarding as-is",
				logging.String("hint", hint))
			lang = hint
		}
		args = append(args, "--language", lang)
	}
	return args
}

// run executes a command, using the custom runner if set.
func (s *Service) run(ctx context.Context, name string, args ...string) error {
	if s.commandRunner != nil {
		return s.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
