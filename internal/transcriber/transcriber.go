package transcriber

import (
	"context"
	"errors"
)

var (
	// ErrAudioMissing indicates the audio file was not found at the given path.
	ErrAudioMissing = errors.New("audio file missing")
	// ErrEmptyTranscript indicates the tool produced no usable text. Callers
	// must treat it as a failure; an empty transcript is never persisted.
	ErrEmptyTranscript = errors.New("empty transcript")
)

// Transcriber converts an audio file into text.
//
// Implementations forward a non-empty language hint to the underlying model
// as a decoding constraint and let it auto-detect otherwise. The returned
// text has leading and trailing whitespace trimmed and is never empty. All
// internal failures are contained and reported as errors; a Transcriber
// never aborts the caller.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageHint string) (string, error)
}
