package main

import (
	"errors"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"refscribe/internal/engine"
	"refscribe/internal/journal"
	"refscribe/internal/logging"
	"refscribe/internal/runlock"
	"refscribe/internal/transcriber/whispercli"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Transcribe all pending catalog entries",
		Long: "Walks the catalog in document order and fills the ref_text field of " +
			"every entry that lacks one. The catalog is saved after each entry, so " +
			"an interrupted run can simply be started again.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, ctx)
		},
	}
}

func runBatch(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runStamp := time.Now().UTC().Format("20060102T150405Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("refscribe-%s.log", runStamp))
	logger, err := logging.New(logging.Options{
		Level:            cfg.Logging.Level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		if errors.Is(err, runlock.ErrHeld) {
			return fmt.Errorf("another refscribe run already holds %s", cfg.LockPath())
		}
		return fmt.Errorf("acquire run lock: %w", err)
	}
	defer lock.Release()

	service, err := whispercli.NewService(whispercli.Config{
		Binary:  cfg.Whisper.Binary,
		Model:   cfg.Whisper.Model,
		Timeout: time.Duration(cfg.Whisper.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("init transcription tool: %w", err)
	}
	service.WithLogger(logging.NewComponentLogger(logger, "whisper"))
	logger.Info("transcription tool ready",
		logging.String("binary", cfg.Whisper.Binary),
		logging.String("model", service.Model()))

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithPause(time.Duration(cfg.Workflow.PauseMilliseconds) * time.Millisecond),
	}
	if cfg.Journal.Enabled {
		store, jerr := journal.Open(cfg.JournalPath())
		if jerr != nil {
			logger.Warn("run journal unavailable", logging.Error(jerr))
		} else {
			defer store.Close()
			opts = append(opts, engine.WithJournal(store))
		}
	}

	eng := engine.New(cfg.Paths.CatalogPath, cfg.Paths.AssetsDir, service, opts...)
	summary, err := eng.Run(signalCtx)
	if err != nil {
		logger.Error("run aborted", logging.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Pending: %d  Updated: %d  Skipped: %d\n",
		summary.Pending, summary.Updated, summary.Skipped)
	if summary.Interrupted {
		// A clean stop, not a failure. Completed entries are already durable.
		fmt.Fprintln(out, "Run interrupted; progress is saved. Run again to resume.")
	}
	return nil
}
