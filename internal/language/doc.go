// Package language normalizes the free-form language hints found in catalog
// entries ("fr", "fra", "French") into the ISO 639-1 codes the transcription
// tool expects. Hints that cannot be normalized are dropped so the tool falls
// back to its own language detection.
package language
