// Package journal persists run history in SQLite.
//
// The catalog file itself is the source of truth for transcript state; the
// journal only records what each run did (how many entries were pending,
// updated, or skipped, and why) so "refscribe status" can show recent
// activity. Schema changes bump the version in schema.go; users delete the
// database to adopt the new schema.
package journal
