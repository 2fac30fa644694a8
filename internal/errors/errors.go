package errors

import "errors"

// Lookup errors indicate a requested section or option does not exist.
var (
	// ErrSectionNotFound indicates the requested section does not exist in the store.
	ErrSectionNotFound = errors.New("section not found")

	// ErrOptionNotFound indicates the section exists but the requested option does not.
	ErrOptionNotFound = errors.New("option not found")
)

// Contract errors indicate callers are using the store inconsistently.
var (
	// ErrFallbackConflict indicates two reads of the same option supplied
	// different fallback values.
	ErrFallbackConflict = errors.New("conflicting fallback values for the same option")

	// ErrEmptyName indicates a section or option name was empty.
	ErrEmptyName = errors.New("section and option names must not be empty")
)

// Value errors indicate a stored value could not be interpreted as requested.
var (
	// ErrConversion indicates the stored string cannot be parsed as the requested type.
	ErrConversion = errors.New("stored value cannot be parsed as the requested type")
)

// Persistence errors indicate problems writing the store to disk.
var (
	// ErrBadDestination indicates the write target is not a usable path or stream.
	ErrBadDestination = errors.New("destination is not a writable path or stream")

	// ErrConfigExists indicates a config file is already present at the target path.
	ErrConfigExists = errors.New("config file already exists")
)
