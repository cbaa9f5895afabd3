package config

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

func TestOpenMissingFileWritesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	m, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("Open did not write a default document: %v", statErr)
	}
	if got := m.Get(); got.Hotkey != Default().Hotkey || got.MaxResults != Default().MaxResults {
		t.Errorf("Get() = %+v, want default document", got)
	}
}

func TestOpenMalformedFileRecoversWithDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got := m.Get(); got.Hotkey != Default().Hotkey {
		t.Errorf("Get() = %+v, want recovered default document", got)
	}

	raw, _ := os.ReadFile(path)
	var onDisk Config
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Errorf("recovered file is still not valid JSON: %v", err)
	}
}

func TestOpenValidFileRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	want := Config{Roots: []string{"/a", "/b"}, Hotkey: "Ctrl+Space", EnableBookmarks: false, EnableHistory: true, MaxResults: 50, Theme: "dark"}
	data, _ := json.Marshal(want)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got := m.Get()
	if got.Hotkey != want.Hotkey || got.MaxResults != want.MaxResults || len(got.Roots) != 2 {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestSavePersistsAndReturnsPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	m, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	updated := m.Get().WithRoot("/indexed/root")
	prev, err := m.Save(updated)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(prev.Roots) != 0 {
		t.Errorf("previous = %+v, want no roots (the initial default)", prev)
	}
	if !m.Get().HasRoot("/indexed/root") {
		t.Errorf("Save did not update the in-memory copy")
	}

	m2, err := Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if !m2.Get().HasRoot("/indexed/root") {
		t.Errorf("Save did not persist to disk: reopened config = %+v", m2.Get())
	}
}

func TestWithRootIsIdempotent(t *testing.T) {
	c := Default().WithRoot("/x").WithRoot("/x")
	if len(c.Roots) != 1 {
		t.Errorf("Roots = %v, want exactly one entry after adding the same root twice", c.Roots)
	}
}

func TestWithoutRootRemovesOnlyNamedRoot(t *testing.T) {
	c := Default().WithRoot("/x").WithRoot("/y").WithoutRoot("/x")
	if len(c.Roots) != 1 || c.Roots[0] != "/y" {
		t.Errorf("Roots = %v, want [/y]", c.Roots)
	}
}

func TestWithDefaultsFillsZeroMaxResults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.MaxResults != Default().MaxResults {
		t.Errorf("MaxResults = %d, want default %d", c.MaxResults, Default().MaxResults)
	}
}
