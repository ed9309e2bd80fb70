package whispercli_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"refscribe/internal/transcriber"
	"refscribe/internal/transcriber/whispercli"
)

// stubBinary places an executable named "whisper" on PATH so NewService's
// availability probe passes.
func stubBinary(t *testing.T) {
	t.Helper()
	binDir := t.TempDir()
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(filepath.Join(binDir, "whisper"), script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", binDir)
}

func newService(t *testing.T) *whispercli.Service {
	t.Helper()
	stubBinary(t)
	svc, err := whispercli.NewService(whispercli.Config{Model: "medium"})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	return svc
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

// outputDirFromArgs extracts the --output_dir value the service passed.
func outputDirFromArgs(t *testing.T, args []string) string {
	t.Helper()
	for i, arg := range args {
		if arg == "--output_dir" && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("no --output_dir in args: %v", args)
	return ""
}

func writerRunner(t *testing.T, payload string) func(ctx context.Context, name string, args ...string) error {
	return func(_ context.Context, _ string, args ...string) error {
		dir := outputDirFromArgs(t, args)
		return os.WriteFile(filepath.Join(dir, "sample.json"), []byte(payload), 0o644)
	}
}

func TestNewServiceMissingBinary(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if _, err := whispercli.NewService(whispercli.Config{}); err == nil {
		t.Fatal("expected error when binary is unavailable")
	}
}

func TestTranscribeReturnsTrimmedText(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(writerRunner(t, `{"text": "  bonjour le monde \n"}`))

	text, err := svc.Transcribe(context.Background(), writeAudio(t), "")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "bonjour le monde" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestTranscribeJoinsSegmentsWhenTextAbsent(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(writerRunner(t, `{"segments": [{"text": " hello "}, {"text": "world"}]}`))

	text, err := svc.Transcribe(context.Background(), writeAudio(t), "")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestTranscribeWhitespaceOnlyIsError(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(writerRunner(t, `{"text": "   \n\t "}`))

	_, err := svc.Transcribe(context.Background(), writeAudio(t), "")
	if !errors.Is(err, transcriber.ErrEmptyTranscript) {
		t.Fatalf("expected ErrEmptyTranscript, got %v", err)
	}
}

func TestTranscribeMissingAudio(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		t.Fatal("runner must not be invoked for missing audio")
		return nil
	})

	_, err := svc.Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.wav"), "")
	if !errors.Is(err, transcriber.ErrAudioMissing) {
		t.Fatalf("expected ErrAudioMissing, got %v", err)
	}
}

func TestTranscribeForwardsNormalizedLanguage(t *testing.T) {
	svc := newService(t)
	var captured []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		captured = args
		dir := outputDirFromArgs(t, args)
		return os.WriteFile(filepath.Join(dir, "sample.json"), []byte(`{"text": "ok"}`), 0o644)
	})

	if _, err := svc.Transcribe(context.Background(), writeAudio(t), "French"); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	joined := strings.Join(captured, " ")
	if !strings.Contains(joined, "--language fr") {
		t.Fatalf("expected normalized language flag, got %v", captured)
	}
	if !strings.Contains(joined, "--model medium") {
		t.Fatalf("expected model flag, got %v", captured)
	}
}

func TestTranscribeForwardsUnrecognizedHintVerbatim(t *testing.T) {
	svc := newService(t)
	var captured []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		captured = args
		dir := outputDirFromArgs(t, args)
		return os.WriteFile(filepath.Join(dir, "sample.json"), []byte(`{"text": "ok"}`), 0o644)
	})

	// A hint the normalizer has no mapping for still reaches the tool, which
	// keeps its own language table.
	if _, err := svc.Transcribe(context.Background(), writeAudio(t), " occitan "); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if !strings.Contains(strings.Join(captured, " "), "--language occitan") {
		t.Fatalf("expected verbatim language flag, got %v", captured)
	}
}

func TestTranscribeOmitsLanguageWhenHintEmpty(t *testing.T) {
	svc := newService(t)
	var captured []string
	svc.WithCommandRunner(func(_ context.Context, _ string, args ...string) error {
		captured = args
		dir := outputDirFromArgs(t, args)
		return os.WriteFile(filepath.Join(dir, "sample.json"), []byte(`{"text": "ok"}`), 0o644)
	})

	if _, err := svc.Transcribe(context.Background(), writeAudio(t), "  "); err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if strings.Contains(strings.Join(captured, " "), "--language") {
		t.Fatalf("expected no language flag, got %v", captured)
	}
}

func TestTranscribeOutlivesCallerCancellation(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(func(ctx context.Context, _ string, args ...string) error {
		if ctx.Err() != nil {
			t.Errorf("in-flight transcription must not inherit caller cancellation: %v", ctx.Err())
		}
		dir := outputDirFromArgs(t, args)
		return os.WriteFile(filepath.Join(dir, "sample.json"), []byte(`{"text": "finished"}`), 0o644)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	text, err := svc.Transcribe(ctx, writeAudio(t), "")
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if text != "finished" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestTranscribeContainsToolFailure(t *testing.T) {
	svc := newService(t)
	svc.WithCommandRunner(func(context.Context, string, ...string) error {
		return errors.New("CUDA out of memory")
	})

	_, err := svc.Transcribe(context.Background(), writeAudio(t), "")
	if err == nil || !strings.Contains(err.Error(), "CUDA out of memory") {
		t.Fatalf("expected contained tool failure, got %v", err)
	}
}
