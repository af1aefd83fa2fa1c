package fsutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fsys := OSFileSystem{}

	if !fsys.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}
	if fsys.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_WriteTo(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "out.txt")

	if err := WriteTo(OSFileSystem{}, target, strings.NewReader("hello")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("expected %q, got %q", "hello", data)
	}
}

func TestMemoryFileSystem_AddAndOpen(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("/data/run.csv", []byte("a,b\n1,2\n"))

	f, err := mfs.Open("/data/run.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Errorf("unexpected content %q", data)
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "run.csv" || info.Size() != 8 {
		t.Errorf("unexpected file info: %s %d", info.Name(), info.Size())
	}
}

func TestMemoryFileSystem_OpenMissing(t *testing.T) {
	mfs := NewMemoryFileSystem()

	_, err := mfs.Open("/missing.csv")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
	if _, err := mfs.Stat("/missing.csv"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected ErrNotExist from Stat, got %v", err)
	}
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := mfs.Create("/out/plot.png")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := w.Write([]byte("png")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if data, _ := mfs.File("/out/plot.png"); len(data) != 0 {
		t.Errorf("expected empty file before Close, got %q", data)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, ok := mfs.File("/out/plot.png")
	if !ok || string(data) != "png" {
		t.Errorf("expected %q after Close, got %q (ok=%v)", "png", data, ok)
	}
}

func TestMemoryFileSystem_MkdirAllAndExists(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := mfs.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, p := range []string{"/a", "/a/b", "/a/b/c"} {
		if !mfs.Exists(p) {
			t.Errorf("expected %s to exist", p)
		}
		info, err := mfs.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("expected %s to be a directory (err=%v)", p, err)
		}
	}

	mfs.AddFile("/x/y/file.txt", nil)
	if !mfs.Exists("/x/y") {
		t.Error("expected parent of stored file to exist")
	}
}

func TestWriteTo_MemoryFileSystem(t *testing.T) {
	mfs := NewMemoryFileSystem()

	if err := WriteTo(mfs, "plots/run/out.html", bytes.NewBufferString("<html>")); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	if !mfs.Exists("plots/run") {
		t.Error("expected output directory to be created")
	}
	if got := mfs.Files(); len(got) != 1 || got[0] != "plots/run/out.html" {
		t.Errorf("unexpected files %v", got)
	}
}
