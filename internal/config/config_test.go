package config

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStoreAt(filepath.Join(t.TempDir(), "config.yaml"))
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.Mode != ModeGPT {
		t.Errorf("Mode = %s, want gpt", s.Mode)
	}
	if s.ForceFallback {
		t.Error("ForceFallback should default to false")
	}
	if s.DataDir == "" {
		t.Error("DataDir should be set")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	settings, err := tempStore(t).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Mode != ModeGPT {
		t.Errorf("Mode = %s, want gpt", settings.Mode)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	store := tempStore(t)

	in := Settings{Mode: ModeGrok, ForceFallback: true, DataDir: "/tmp/sp-data"}
	if err := store.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out != in {
		t.Errorf("roundtrip = %+v, want %+v", out, in)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("force_fallback: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	settings, err := NewFileStoreAt(path).Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !settings.ForceFallback {
		t.Error("ForceFallback should be true")
	}
	if settings.Mode != ModeGPT {
		t.Errorf("Mode = %s, want default gpt", settings.Mode)
	}
	if settings.DataDir == "" {
		t.Error("DataDir should fall back to default")
	}
}

func TestLoad_MalformedYAMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("mode: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewFileStoreAt(path).Load(); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestSave_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	store := NewFileStoreAt(path)

	if err := store.Save(Defaults()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("config file not created: %v", err)
	}
}

func TestMode_Valid(t *testing.T) {
	if !ModeGPT.Valid() || !ModeGrok.Valid() {
		t.Error("gpt and grok should be valid")
	}
	if Mode("claude").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
