// Package engine drives the resumable batch enrichment of the catalog.
//
// A run loads the catalog once, builds the worklist of pending entries in
// document order, and processes them strictly one at a time: resolve the
// audio path, transcribe, write ref_text, then durably save the entire
// catalog before touching the next entry. The save is the commit point —
// killing the process between entries loses at most the in-flight item.
//
// A single entry's failure (missing audio, tool error, empty output) is
// logged and skipped; it never aborts the batch. Cancellation is honored
// between entries: the in-flight transcription runs to completion or its own
// failure, then the engine performs one final save and stops.
package engine
