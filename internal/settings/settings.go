package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	cerrors "github.com/confstate/confstate/internal/errors"
	logger "github.com/confstate/confstate/internal/logging"
	ini "gopkg.in/ini.v1"
)

// Store is an in-memory key/value store organized into named sections and
// backed by an INI file. On top of the plain section/option mapping it tracks:
//
//   - defaults supplied at construction, omitted from the file when unchanged
//   - ignored sections, kept in memory but never written to disk
//   - temporary option values, rolled back to their prior value in the
//     persisted artifact only
//   - the fallback value each option was last read with, so disagreeing
//     callers are caught instead of silently picking one
type Store struct {
	// Logger receives non-fatal diagnostics such as fallback conflicts.
	Logger logger.Logger

	// CompactDelimiters writes "key=value" instead of "key = value".
	CompactDelimiters bool

	file      *ini.File
	defaults  map[string]map[string]string
	ignored   []string
	fallbacks map[string]map[string]string
	originals map[string]map[string]string
}

// New creates a store seeded with the given defaults. Default values may be
// any primitive type; they are canonicalized to strings. Sections named in
// ignoredSections live in memory like any other but are excluded from Write.
func New(defaults map[string]map[string]any, ignoredSections []string) *Store {
	s := &Store{
		file:      ini.Empty(),
		defaults:  make(map[string]map[string]string),
		ignored:   append([]string(nil), ignoredSections...),
		fallbacks: make(map[string]map[string]string),
		originals: make(map[string]map[string]string),
	}

	// Map iteration order is random; seed defaults in sorted order so two
	// stores built from the same defaults serialize identically.
	for _, section := range sortedKeys(defaults) {
		options := defaults[section]
		canon := make(map[string]string, len(options))
		s.file.Section(section)
		for _, option := range sortedKeys(options) {
			value := canonical(options[option])
			canon[option] = value
			s.file.Section(section).Key(option).SetValue(value)
		}
		s.defaults[section] = canon
	}

	return s
}

// Read merges the INI file at path into the store. Existing options are
// overwritten; comments and continuation lines in the file are accepted per
// standard INI conventions.
func (s *Store) Read(path string) error {
	loaded, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, section := range loaded.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		target := s.file.Section(section.Name())
		for _, key := range section.Keys() {
			target.Key(key.Name()).SetValue(key.Value())
		}
	}

	return nil
}

// GetString returns the value stored under (section, option). If the option
// is absent the fallback is returned when supplied, otherwise a lookup error.
func (s *Store) GetString(section, option string, fallback ...string) (string, error) {
	if len(fallback) > 0 {
		if err := s.rememberFallback(section, option, fallback[0]); err != nil {
			return "", err
		}
	}
	if value, ok := s.lookup(section, option); ok {
		return value, nil
	}
	if len(fallback) > 0 {
		return fallback[0], nil
	}
	return "", s.missing(section, option)
}

// GetBool parses the stored value as a boolean. Accepted tokens are
// 1/yes/true/on and 0/no/false/off, case-insensitive.
func (s *Store) GetBool(section, option string, fallback ...bool) (bool, error) {
	if len(fallback) > 0 {
		if err := s.rememberFallback(section, option, strconv.FormatBool(fallback[0])); err != nil {
			return false, err
		}
	}
	value, ok := s.lookup(section, option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return false, s.missing(section, option)
	}

	parsed, known := boolTokens[strings.ToLower(value)]
	if !known {
		return false, fmt.Errorf("[%s] %s: %q is not a boolean: %w", section, option, value, cerrors.ErrConversion)
	}
	return parsed, nil
}

// GetInt parses the stored value as a decimal integer.
func (s *Store) GetInt(section, option string, fallback ...int) (int, error) {
	if len(fallback) > 0 {
		if err := s.rememberFallback(section, option, strconv.Itoa(fallback[0])); err != nil {
			return 0, err
		}
	}
	value, ok := s.lookup(section, option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return 0, s.missing(section, option)
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("[%s] %s: %q is not an integer: %w", section, option, value, cerrors.ErrConversion)
	}
	return parsed, nil
}

// GetFloat parses the stored value as a decimal floating-point number.
func (s *Store) GetFloat(section, option string, fallback ...float64) (float64, error) {
	if len(fallback) > 0 {
		if err := s.rememberFallback(section, option, strconv.FormatFloat(fallback[0], 'g', -1, 64)); err != nil {
			return 0, err
		}
	}
	value, ok := s.lookup(section, option)
	if !ok {
		if len(fallback) > 0 {
			return fallback[0], nil
		}
		return 0, s.missing(section, option)
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("[%s] %s: %q is not a number: %w", section, option, value, cerrors.ErrConversion)
	}
	return parsed, nil
}

// Set stores value under (section, option), creating the section if needed.
// Values of any primitive type are canonicalized to their string form.
func (s *Store) Set(section, option string, value any) error {
	if section == "" || option == "" {
		return fmt.Errorf("set [%s] %s: %w", section, option, cerrors.ErrEmptyName)
	}
	s.file.Section(section).Key(option).SetValue(canonical(value))
	return nil
}

// SetTemporary stores value like Set, but remembers the value the option held
// beforehand. Write rolls the option back to that value in the persisted file,
// so a temporary value is live for the session only. Only the first temporary
// write to an option captures the original; later ones leave it untouched.
func (s *Store) SetTemporary(section, option string, value any) error {
	if section == "" || option == "" {
		return fmt.Errorf("set [%s] %s: %w", section, option, cerrors.ErrEmptyName)
	}
	s.rememberOriginal(section, option)
	return s.Set(section, option, value)
}

// Sections returns the section names in insertion order.
func (s *Store) Sections() []string {
	sections := s.sections()
	names := make([]string, 0, len(sections))
	for _, section := range sections {
		names = append(names, section.Name())
	}
	return names
}

// Options returns the option names of a section in insertion order.
func (s *Store) Options(section string) ([]string, error) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil, fmt.Errorf("[%s]: %w", section, cerrors.ErrSectionNotFound)
	}
	return sec.KeyStrings(), nil
}

// Copy returns an independent store with the same defaults, ignored sections
// and current content. The fallback and temporary ledgers start fresh; the
// copy serializes identically to the source.
func (s *Store) Copy() *Store {
	out := New(nil, s.ignored)
	out.Logger = s.Logger
	out.CompactDelimiters = s.CompactDelimiters

	for section, options := range s.defaults {
		canon := make(map[string]string, len(options))
		for option, value := range options {
			canon[option] = value
		}
		out.defaults[section] = canon
	}

	for _, section := range s.sections() {
		out.file.Section(section.Name())
		for _, key := range section.Keys() {
			out.file.Section(section.Name()).Key(key.Name()).SetValue(key.Value())
		}
	}

	return out
}

// String renders every section and option currently in memory, including
// ignored sections and temporary values. This is the full in-memory dump, not
// the filtered view that Write persists.
func (s *Store) String() string {
	var b strings.Builder
	for _, section := range s.sections() {
		fmt.Fprintf(&b, "[%s]\n", section.Name())
		for _, key := range section.Keys() {
			fmt.Fprintf(&b, "  %s = %s\n", key.Name(), key.Value())
		}
	}
	return b.String()
}

// sections returns the real sections of the backing file, skipping the
// pseudo-section ini.v1 keeps for keys that appear before any header.
func (s *Store) sections() []*ini.Section {
	all := s.file.Sections()
	sections := make([]*ini.Section, 0, len(all))
	for _, section := range all {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		sections = append(sections, section)
	}
	return sections
}

func (s *Store) lookup(section, option string) (string, bool) {
	sec, err := s.file.GetSection(section)
	if err != nil {
		return "", false
	}
	key, err := sec.GetKey(option)
	if err != nil {
		return "", false
	}
	return key.Value(), true
}

func (s *Store) missing(section, option string) error {
	if _, err := s.file.GetSection(section); err != nil {
		return fmt.Errorf("[%s]: %w", section, cerrors.ErrSectionNotFound)
	}
	return fmt.Errorf("[%s] %s: %w", section, option, cerrors.ErrOptionNotFound)
}

// rememberFallback records the fallback an option was read with. Two reads of
// the same option with different fallbacks indicate the callers disagree about
// its semantics; that is a hard error, not something to be guessed away.
func (s *Store) rememberFallback(section, option, value string) error {
	options, ok := s.fallbacks[section]
	if !ok {
		options = make(map[string]string)
		s.fallbacks[section] = options
	}

	previous, seen := options[option]
	if !seen {
		options[option] = value
		return nil
	}
	if previous != value {
		s.Logger.Debugf("different fallback values detected for [%s] %s having %q != %q",
			section, option, previous, value)
		return fmt.Errorf("[%s] %s: previously %q, now %q: %w",
			section, option, previous, value, cerrors.ErrFallbackConflict)
	}
	return nil
}

// rememberOriginal captures the value an option held before its first
// temporary write. An absent option is recorded as the empty string.
func (s *Store) rememberOriginal(section, option string) {
	options, ok := s.originals[section]
	if !ok {
		options = make(map[string]string)
		s.originals[section] = options
	}
	if _, seen := options[option]; seen {
		return
	}
	current, _ := s.lookup(section, option)
	options[option] = current
}

var boolTokens = map[string]bool{
	"1": true, "yes": true, "true": true, "on": true,
	"0": false, "no": false, "false": false, "off": false,
}

// canonical converts a primitive value to the string form the store keeps
// internally. The store never stores non-string types.
func canonical(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
