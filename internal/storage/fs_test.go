package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempPantry(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempPantry(t)
	content := []byte("{\"title\":\"Stock\"}\n")
	if err := s.Write("stock.json", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("stock.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempPantry(t)
	if err := s.Write("breads/sourdough/levain.txt", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("breads/sourdough/levain.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempPantry(t)
	_ = s.Write("del.txt", []byte("bye"))
	if err := s.Delete("del.txt"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.txt"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestMove(t *testing.T) {
	s := tempPantry(t)
	_ = s.Write("old.csv", []byte("data"))
	if err := s.Move("old.csv", "archive/new.csv"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	got, err := s.Read("archive/new.csv")
	if err != nil {
		t.Fatalf("Read after move: %v", err)
	}
	if string(got) != "data" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("old.csv"); err == nil {
		t.Error("old path should not exist")
	}
}

func TestList_OnlyImportable(t *testing.T) {
	s := tempPantry(t)
	_ = s.Write("a.json", []byte("a"))
	_ = s.Write("sub/b.txt", []byte("b"))
	_ = s.Write("c.csv", []byte("c"))
	_ = s.Write("notes.docx", []byte("skip me"))
	_ = s.Write("photo.png", []byte("skip me too"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("len = %d, want 3", len(items))
	}
	for _, item := range items {
		if item.Checksum == "" {
			t.Errorf("missing checksum for %s", item.Path)
		}
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempPantry(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.json",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoCorruption(t *testing.T) {
	// Verify that overwriting leaves the final content in place and no temp
	// files behind (the rename is atomic on POSIX).
	s := tempPantry(t)
	original := []byte("original content")
	_ = s.Write("atomic.txt", original)

	updated := []byte("updated content")
	if err := s.Write("atomic.txt", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.txt")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".mise-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/mise-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "mise-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
