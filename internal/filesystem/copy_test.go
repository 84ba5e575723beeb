package filesystem

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyPreserving(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "copy.jpg")

	content := []byte("jpeg bytes here")
	if err := os.WriteFile(src, content, 0o640); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	if err := os.Chtimes(src, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	if err := CopyPreserving(src, dst); err != nil {
		t.Fatalf("CopyPreserving() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("destination contents = %q, want %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("destination mode = %v, want 0640", info.Mode().Perm())
	}
	if !info.ModTime().Equal(modTime) {
		t.Errorf("destination mtime = %v, want %v", info.ModTime(), modTime)
	}
}

func TestCopyPreserving_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")

	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old and longer"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CopyPreserving(src, dst); err != nil {
		t.Fatalf("CopyPreserving() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Errorf("destination contents = %q, want %q", got, "new")
	}
}

func TestCopyPreserving_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := CopyPreserving(filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "dst.jpg"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "dst.jpg")); !os.IsNotExist(statErr) {
		t.Error("destination should not exist after failed copy")
	}
}

func TestCopyPreserving_DirectorySource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyPreserving(dir, filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for directory source")
	}
}
