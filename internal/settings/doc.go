// Package settings implements the configuration-state store behind confstate:
// an ordered section/option/string mapping persisted as an INI file, with
// three refinements over a plain key/value store.
//
// # Defaults
//
// Defaults declared at construction are visible to reads like any other value
// but are omitted from the persisted file while unchanged. The file only ever
// records what the user actually decided; changing a shipped default later
// changes it for everyone who never overrode it.
//
// # Ignored sections
//
// Sections named at construction are held in memory like any other but never
// written to disk. They are the home for runtime-only state (window geometry,
// session caches) that shares the settings API but has no business persisting.
//
// # Temporary values
//
// SetTemporary makes a value live for the session without letting it survive a
// persist cycle: Write rolls the option back to the value it held before the
// first temporary write, and an option that only ever existed temporarily is
// left out of the file entirely. The in-memory value is unaffected.
//
// # Fallbacks
//
// Every getter takes an optional trailing fallback returned when the key is
// absent. The store records the fallback each key was last read with and
// fails with ErrFallbackConflict when two reads disagree — divergent fallbacks
// for the same key mean two call sites have different ideas about its
// semantics, and the store refuses to guess.
//
// # Persistence
//
// Write applies the three filters (temporary rollback, ignored removal,
// default suppression, in that order) to a scratch copy and serializes that,
// so the live store is byte-for-byte unchanged by the act of saving and
// repeated saves are idempotent. Read merges a file back in, accepting
// comments and continuation lines per standard INI conventions.
//
// The store is not safe for concurrent mutation; callers needing that must
// serialize access externally.
package settings
