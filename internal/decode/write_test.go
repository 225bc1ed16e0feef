package decode_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0x6d61/plistdecode/internal/decode"
)

func TestWriteOutput_Direct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	data := []byte("{\"k\":\"日本語\"}\r\n")

	if err := decode.WriteOutputForTest(path, data, false); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(data) {
		t.Errorf("expected bytes preserved, got %q", string(got))
	}
}

func TestWriteOutput_AtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := decode.WriteOutputForTest(path, []byte("new"), true); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "new" {
		t.Errorf("expected 'new', got %q", string(got))
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("expected mode 0644, got %o", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the output file, got %d entries", len(entries))
	}
}

func TestWriteOutput_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.json")
	for _, atomic := range []bool{false, true} {
		if err := decode.WriteOutputForTest(path, []byte("x"), atomic); err == nil {
			t.Errorf("atomic=%v: expected error for missing directory", atomic)
		}
	}
}
