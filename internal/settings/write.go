package settings

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	cerrors "github.com/confstate/confstate/internal/errors"
	ini "gopkg.in/ini.v1"
)

// Write serializes the store to w in INI syntax after applying, in order:
// temporary-value rollback, ignored-section removal and suppression of options
// still equal to their declared default. The filtering happens on a scratch
// copy; the live store is observably identical after Write returns, whether it
// succeeded or not, and repeated calls produce byte-identical output.
func (s *Store) Write(w io.Writer) error {
	if isNilDestination(w) {
		return fmt.Errorf("write: %w", cerrors.ErrBadDestination)
	}
	return serialize(s.filtered(), w, s.CompactDelimiters)
}

// Save writes the store to the file at path, creating parent directories as
// needed. A failure during serialization may leave a partially written file;
// the in-memory store is never affected.
func (s *Store) Save(path string) error {
	if path == "" {
		return fmt.Errorf("save: %w", cerrors.ErrBadDestination)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	defer file.Close()

	return s.Write(file)
}

// filtered builds the view of the store that belongs on disk. Working on a
// copy means no restore pass is needed: the ledgers and the live content stay
// untouched even if serialization fails halfway.
func (s *Store) filtered() *ini.File {
	view := ini.Empty()
	for _, section := range s.sections() {
		target := view.Section(section.Name())
		for _, key := range section.Keys() {
			target.Key(key.Name()).SetValue(key.Value())
		}
	}

	// Roll temporary values back to the value each option held before its
	// first temporary write. An option that only ever existed temporarily
	// is dropped entirely.
	for _, section := range view.Sections() {
		originals, tracked := s.originals[section.Name()]
		if !tracked {
			continue
		}
		for _, option := range section.KeyStrings() {
			original, temporary := originals[option]
			if !temporary {
				continue
			}
			if original == "" {
				section.DeleteKey(option)
			} else {
				section.Key(option).SetValue(original)
			}
		}
	}

	// Ignored sections never reach the file.
	for _, name := range s.ignored {
		view.DeleteSection(name)
	}

	// Options still equal to their declared default are implied; writing
	// them out would only pin stale values. Sections emptied by the
	// suppression go too.
	for _, name := range view.SectionStrings() {
		defaults, declared := s.defaults[name]
		if !declared {
			continue
		}
		section := view.Section(name)
		for _, option := range section.KeyStrings() {
			if value, ok := defaults[option]; ok && section.Key(option).Value() == value {
				section.DeleteKey(option)
			}
		}
		if len(section.Keys()) == 0 {
			view.DeleteSection(name)
		}
	}

	return view
}

// serialize writes file in INI syntax: [section] headers in section order,
// key/value lines in option order, a blank line after each section.
func serialize(file *ini.File, w io.Writer, compact bool) error {
	delimiter := " = "
	if compact {
		delimiter = "="
	}

	var b strings.Builder
	for _, section := range file.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		b.WriteString("[" + section.Name() + "]\n")
		for _, key := range section.Keys() {
			b.WriteString(key.Name() + delimiter + key.Value() + "\n")
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// isNilDestination reports whether w cannot possibly accept a write: either a
// nil interface or a typed nil like (*os.File)(nil), which would panic inside
// the io machinery instead of failing cleanly.
func isNilDestination(w io.Writer) bool {
	if w == nil {
		return true
	}
	value := reflect.ValueOf(w)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return value.IsNil()
	}
	return false
}
