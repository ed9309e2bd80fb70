// Package catalog loads, models, and durably persists the JSON catalog of
// audio sample entries.
//
// The on-disk document nests groups of entries under a collection key that
// historically appears under two spellings ("models" and "modeles"), at both
// the root and the group level. Both spellings are recognized, and whichever
// spelling a document uses is reproduced on save. Fields this tool does not
// understand are carried through load and save untouched, because the catalog
// file is shared with other tooling.
//
// Save is the batch engine's commit point: content is written to a temporary
// file, flushed and synced to stable storage, then atomically renamed over the
// catalog so a reader never observes a partially written document.
package catalog
