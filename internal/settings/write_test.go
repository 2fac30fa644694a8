package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	cerrors "github.com/confstate/confstate/internal/errors"
)

// failWriter fails on the first write, simulating a broken destination stream.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteEndToEnd(t *testing.T) {
	s := New(map[string]map[string]any{
		"test":    {"a": "b"},
		"nothing": {"a": "b"},
	}, []string{"anothertest"})

	if err := s.Set("anothertest", "b", "bar"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("test", "b", "c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.SetTemporary("test", "b", "foo"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}
	if err := s.SetTemporary("test", "b", "bar"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.ini")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	r := New(nil, nil)
	if err := r.Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	// The temporary writes were rolled back to the last non-temporary value.
	value, err := r.GetString("test", "b")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "c" {
		t.Errorf("Expected %q, got %q", "c", value)
	}

	// The ignored section never reached the file.
	value, err = r.GetString("anothertest", "b", "fallback")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "fallback" {
		t.Errorf("Expected %q, got %q", "fallback", value)
	}

	// The option equal to its default was suppressed.
	value, err = r.GetString("test", "a", "fallback")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "fallback" {
		t.Errorf("Expected %q, got %q", "fallback", value)
	}

	// The untouched all-defaults section disappeared entirely.
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Contains(string(content), "[nothing]") {
		t.Errorf("Section equal to its defaults should be absent, got:\n%s", content)
	}

	// Meanwhile the in-memory store still sees the live values.
	value, err = s.GetString("test", "b")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "bar" {
		t.Errorf("Save changed the in-memory value: got %q, want %q", value, "bar")
	}
	value, err = s.GetString("anothertest", "b")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "bar" {
		t.Errorf("Save dropped the ignored section from memory: got %q", value)
	}
}

func TestWriteOutput(t *testing.T) {
	s := New(map[string]map[string]any{"test": {"a": "b"}}, nil)
	if err := s.Set("test", "b", "c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "[test]\nb = c\n\n"
	if buf.String() != want {
		t.Errorf("Write produced %q, want %q", buf.String(), want)
	}
}

func TestWriteCompactDelimiters(t *testing.T) {
	s := New(nil, nil)
	s.CompactDelimiters = true
	if err := s.Set("test", "a", "b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "[test]\na=b\n\n"
	if buf.String() != want {
		t.Errorf("Write produced %q, want %q", buf.String(), want)
	}
}

func TestWriteIdempotent(t *testing.T) {
	s := New(map[string]map[string]any{"test": {"a": "b"}}, []string{"session"})
	if err := s.Set("test", "b", "c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("session", "live", "1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.SetTemporary("test", "b", "temp"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}

	before := s.String()

	var first, second bytes.Buffer
	if err := s.Write(&first); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := s.Write(&second); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("Writes differ:\nfirst:\n%s\nsecond:\n%s", first.String(), second.String())
	}
	if s.String() != before {
		t.Errorf("Write mutated the store:\nbefore:\n%s\nafter:\n%s", before, s.String())
	}
}

func TestWritePurelyTemporaryOptionOmitted(t *testing.T) {
	s := New(nil, nil)
	if err := s.Set("test", "keep", "yes"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	// This option never existed before its temporary write, so the file
	// must not contain it at all.
	if err := s.SetTemporary("test", "ephemeral", "x"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if strings.Contains(buf.String(), "ephemeral") {
		t.Errorf("Purely temporary option leaked into the file:\n%s", buf.String())
	}

	// Still live in memory.
	value, err := s.GetString("test", "ephemeral")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if value != "x" {
		t.Errorf("Expected %q, got %q", "x", value)
	}
}

func TestWriteTemporaryInsideIgnoredSection(t *testing.T) {
	s := New(nil, []string{"session"})
	if err := s.Set("session", "a", "kept"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.SetTemporary("session", "a", "override"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}

	before := s.String()

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if strings.Contains(buf.String(), "session") {
		t.Errorf("Ignored section reached the file:\n%s", buf.String())
	}
	if s.String() != before {
		t.Errorf("Write mutated the store:\nbefore:\n%s\nafter:\n%s", before, s.String())
	}
}

func TestWriteBadDestination(t *testing.T) {
	s := New(nil, nil)
	if err := s.Set("test", "a", "b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	before := s.String()

	if err := s.Write(nil); !errors.Is(err, cerrors.ErrBadDestination) {
		t.Errorf("Expected ErrBadDestination for nil writer, got %v", err)
	}

	var file *os.File
	if err := s.Write(file); !errors.Is(err, cerrors.ErrBadDestination) {
		t.Errorf("Expected ErrBadDestination for typed nil writer, got %v", err)
	}

	if err := s.Save(""); !errors.Is(err, cerrors.ErrBadDestination) {
		t.Errorf("Expected ErrBadDestination for empty path, got %v", err)
	}

	if s.String() != before {
		t.Error("Failed write mutated the store")
	}
}

func TestWriteFailureLeavesStoreIntact(t *testing.T) {
	s := New(map[string]map[string]any{"test": {"a": "b"}}, []string{"session"})
	if err := s.Set("session", "x", "y"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.SetTemporary("test", "a", "temp"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}
	before := s.String()

	if err := s.Write(failWriter{}); err == nil {
		t.Fatal("Expected an error from a failing writer")
	}

	if s.String() != before {
		t.Errorf("Failed write mutated the store:\nbefore:\n%s\nafter:\n%s", before, s.String())
	}

	// A later write still succeeds and still reflects the filters.
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write after failure failed: %v", err)
	}
	if strings.Contains(buf.String(), "session") || strings.Contains(buf.String(), "temp") {
		t.Errorf("Filters lost after failed write:\n%s", buf.String())
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	s := New(nil, nil)
	if err := s.Set("test", "a", "b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.ini")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Saved file missing: %v", err)
	}
}

func TestSaveTwiceProducesIdenticalFiles(t *testing.T) {
	s := New(map[string]map[string]any{"test": {"a": "b"}}, nil)
	if err := s.Set("test", "b", "c"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.SetTemporary("test", "b", "temp"); err != nil {
		t.Fatalf("SetTemporary failed: %v", err)
	}

	dir := t.TempDir()
	firstPath := filepath.Join(dir, "first.ini")
	secondPath := filepath.Join(dir, "second.ini")

	if err := s.Save(firstPath); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := s.Save(secondPath); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	first, err := os.ReadFile(firstPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	second, err := os.ReadFile(secondPath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Errorf("Saves differ:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestReadAcceptsCommentsAndSpacing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "; generated by hand\n# another comment\n[server]\nport = 8080\nhost=localhost\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	s := New(nil, nil)
	if err := s.Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	port, err := s.GetInt("server", "port")
	if err != nil {
		t.Fatalf("GetInt failed: %v", err)
	}
	if port != 8080 {
		t.Errorf("Expected 8080, got %d", port)
	}

	host, err := s.GetString("server", "host")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if host != "localhost" {
		t.Errorf("Expected %q, got %q", "localhost", host)
	}
}

func TestReadMissingFile(t *testing.T) {
	s := New(nil, nil)
	if err := s.Read(filepath.Join(t.TempDir(), "absent.ini")); err == nil {
		t.Fatal("Expected an error reading a missing file")
	}
}

func TestWriteRoundTripThroughRead(t *testing.T) {
	s := New(nil, nil)
	if err := s.Set("alpha", "one", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("alpha", "two", 2.5); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Set("beta", "flag", true); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.ini")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	r := New(nil, nil)
	if err := r.Read(path); err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if s.String() != r.String() {
		t.Errorf("Round trip changed content:\nwrote:\n%s\nread:\n%s", s, r)
	}
}
