package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"refscribe/internal/catalog"
	"refscribe/internal/journal"
	"refscribe/internal/logging"
	"refscribe/internal/resolve"
	"refscribe/internal/transcriber"
)

// Summary reports what a run accomplished.
type Summary struct {
	Pending     int
	Updated     int
	Skipped     int
	Interrupted bool
}

// SleepFunc pauses between entries and returns early when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration)

// Engine processes pending catalog entries sequentially.
type Engine struct {
	catalogPath string
	resolver    resolve.Resolver
	transcriber transcriber.Transcriber
	journal     *journal.Store
	logger      *slog.Logger
	pause       time.Duration
	sleep       SleepFunc
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithJournal records run history and per-entry outcomes to store. A nil
// store leaves journaling off.
func WithJournal(store *journal.Store) Option {
	return func(e *Engine) { e.journal = store }
}

// WithLogger replaces the default no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithPause sets the delay inserted after every committed entry.
func WithPause(d time.Duration) Option {
	return func(e *Engine) { e.pause = d }
}

// WithSleep overrides the pause implementation. Used by tests to avoid
// real delays.
func WithSleep(fn SleepFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.sleep = fn
		}
	}
}

// New builds an engine over the catalog at catalogPath. Audio paths are
// resolved relative to assetsDir.
func New(catalogPath, assetsDir string, tr transcriber.Transcriber, opts ...Option) *Engine {
	e := &Engine{
		catalogPath: catalogPath,
		resolver:    resolve.Resolver{BaseDir: assetsDir},
		transcriber: tr,
		logger:      logging.NewNop(),
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes one batch pass over the catalog. It returns a non-nil error
// only for run-level failures: an unreadable catalog or a failed commit
// save. Per-entry failures are counted in Summary.Skipped.
func (e *Engine) Run(ctx context.Context) (Summary, error) {
	logger := logging.NewComponentLogger(e.logger, "engine")

	var summary Summary
	cat, err := catalog.Load(e.catalogPath)
	if err != nil {
		return summary, fmt.Errorf("load catalog: %w", err)
	}

	pending := cat.Pending()
	summary.Pending = len(pending)
	logger.Info("catalog loaded",
		logging.Int("entries", cat.EntryCount()),
		logging.Int("pending", len(pending)))
	if len(pending) == 0 {
		logger.Info("nothing to do, all entries already have reference text")
		return summary, nil
	}

	runID := e.beginRun(ctx, logger, len(pending))

	for i, entry := range pending {
		select {
		case <-ctx.Done():
			logger.Info("interruption requested, saving catalog before stopping")
			if err := catalog.Save(e.catalogPath, cat); err != nil {
				logger.Error("final save failed", logging.Error(err))
			}
			summary.Interrupted = true
			e.finishRun(logger, runID, &summary)
			return summary, nil
		default:
		}

		entryLogger := logger.With(logging.FieldEntry, entry.DisplayName())
		entryLogger.Info("processing entry",
			logging.Int("position", i+1),
			logging.Int("total", len(pending)))

		text, procErr := e.processEntry(ctx, entry)
		if procErr == nil {
			procErr = entry.SetRefText(text)
		}
		if procErr != nil {
			entryLogger.Warn("entry skipped", logging.Error(procErr))
			summary.Skipped++
			e.recordOutcome(ctx, entryLogger, runID, entry, journal.OutcomeSkipped, failureDetail(procErr))
			continue
		}

		if err := catalog.Save(e.catalogPath, cat); err != nil {
			e.finishRun(logger, runID, &summary)
			return summary, fmt.Errorf("commit entry %q: %w", entry.DisplayName(), err)
		}
		summary.Updated++
		e.recordOutcome(ctx, entryLogger, runID, entry, journal.OutcomeUpdated, "")
		entryLogger.Info("reference text committed", logging.String("preview", preview(text, 60)))

		if i < len(pending)-1 {
			e.sleep(ctx, e.pause)
		}
	}

	e.finishRun(logger, runID, &summary)
	logger.Info("run complete",
		logging.Int("updated", summary.Updated),
		logging.Int("skipped", summary.Skipped))
	return summary, nil
}

// processEntry produces the transcript for a single entry. Any error it
// returns is an entry-level failure that the caller skips past.
func (e *Engine) processEntry(ctx context.Context, entry *catalog.Entry) (string, error) {
	declared := entry.File()
	if strings.TrimSpace(declared) == "" {
		return "", errors.New("entry declares no audio path")
	}
	audioPath, err := e.resolver.Resolve(declared)
	if err != nil {
		return "", err
	}
	text, err := e.transcriber.Transcribe(ctx, audioPath, entry.Language())
	if err != nil {
		return "", err
	}
	return text, nil
}

func (e *Engine) beginRun(ctx context.Context, logger *slog.Logger, pending int) string {
	if e.journal == nil {
		return ""
	}
	runID, err := e.journal.BeginRun(ctx, e.catalogPath, pending)
	if err != nil {
		logger.Warn("journal unavailable, continuing without run history", logging.Error(err))
		return ""
	}
	return runID
}

// finishRun uses a fresh context so the closing row still lands after the
// run context was canceled.
func (e *Engine) finishRun(logger *slog.Logger, runID string, summary *Summary) {
	if e.journal == nil || runID == "" {
		return
	}
	if err := e.journal.FinishRun(context.Background(), runID, summary.Updated, summary.Skipped, summary.Interrupted); err != nil {
		logger.Warn("journal run not finalized", logging.Error(err))
	}
}

func (e *Engine) recordOutcome(ctx context.Context, logger *slog.Logger, runID string, entry *catalog.Entry, outcome, detail string) {
	if e.journal == nil || runID == "" {
		return
	}
	if err := e.journal.RecordOutcome(ctx, runID, entry.DisplayName(), entry.File(), outcome, detail); err != nil {
		logger.Warn("journal outcome not recorded", logging.Error(err))
	}
}

// failureDetail gives a short stable label for well-known entry failures so
// journal rows stay greppable; everything else passes through verbatim.
func failureDetail(err error) string {
	switch {
	case errors.Is(err, resolve.ErrNotFound):
		return "audio file not found"
	case errors.Is(err, transcriber.ErrAudioMissing):
		return "audio file not found"
	case errors.Is(err, transcriber.ErrEmptyTranscript):
		return "empty transcript"
	default:
		return err.Error()
	}
}

func preview(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + "…"
}

func sleepContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
