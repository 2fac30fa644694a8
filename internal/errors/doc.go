// Package errors provides typed error values for the confstate application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Lookup errors: the requested key is absent (ErrSectionNotFound, ErrOptionNotFound)
//   - Contract errors: inconsistent caller behavior (ErrFallbackConflict, ErrEmptyName)
//   - Value errors: stored value unusable as requested (ErrConversion)
//   - Persistence errors: write target problems (ErrBadDestination, ErrConfigExists)
//
// # Usage
//
// Return errors from internal packages with context:
//
//	return fmt.Errorf("[%s] %s: %w", section, option, errors.ErrOptionNotFound)
//
// Handle errors in the CLI layer:
//
//	value, err := store.GetString(section, option)
//	if errors.Is(err, cerrors.ErrOptionNotFound) {
//	    // Show user-friendly message
//	}
//
// ErrFallbackConflict is deliberately a hard error rather than a warning: two
// call sites disagreeing about an option's default indicates a real bug in the
// caller, and the store must not guess which value is authoritative.
package errors
