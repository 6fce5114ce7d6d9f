package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func newTestWriter(t *testing.T) (atomicWriter, string) {
	t.Helper()
	base := t.TempDir()
	tmp := filepath.Join(base, tmpDirname)
	if err := os.Mkdir(tmp, 0750); err != nil {
		t.Fatalf("failed to create tmp dir: %s", err)
	}
	return atomicWriter{tmpDir: tmp}, base
}

func dirLen(t *testing.T, dir string) int {
	t.Helper()
	entries, err := ioutil.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read %s: %s", dir, err)
	}
	return len(entries)
}

func TestAtomicWriteReplaces(t *testing.T) {
	w, base := newTestWriter(t)
	dest := filepath.Join(base, "split")

	for _, data := range []string{"first", "second", ""} {
		if err := w.write(dest, []byte(data)); err != nil {
			t.Fatalf("write %q: unexpected error %s", data, err)
		}
		got, err := ioutil.ReadFile(dest)
		if err != nil {
			t.Fatalf("read after writing %q: %s", data, err)
		}
		if string(got) != data {
			t.Fatalf("expected %q, got %q", data, got)
		}
	}
	if n := dirLen(t, w.tmpDir); n != 0 {
		t.Fatalf("expected empty tmp dir, found %d entries", n)
	}
}

// a writer that dies between staging and renaming must leave the destination untouched
func TestAtomicWriteInterrupted(t *testing.T) {
	w, base := newTestWriter(t)
	dest := filepath.Join(base, "split")
	if err := w.write(dest, []byte("old")); err != nil {
		t.Fatalf("unexpected error %s", err)
	}

	tmp, err := w.stage([]byte("new"))
	if err != nil {
		t.Fatalf("unexpected error staging: %s", err)
	}
	if filepath.Dir(tmp) != w.tmpDir {
		t.Fatalf("expected temp file in %s, got %s", w.tmpDir, tmp)
	}
	got, err := ioutil.ReadFile(dest)
	if err != nil {
		t.Fatalf("unexpected error reading: %s", err)
	}
	if string(got) != "old" {
		t.Fatalf("expected destination to still hold %q, got %q", "old", got)
	}

	if err := w.commit(tmp, dest); err != nil {
		t.Fatalf("unexpected error committing: %s", err)
	}
	got, _ = ioutil.ReadFile(dest)
	if string(got) != "new" {
		t.Fatalf("expected %q after commit, got %q", "new", got)
	}
}

func TestAtomicWriteMissingTmpDir(t *testing.T) {
	base := t.TempDir()
	w := atomicWriter{tmpDir: filepath.Join(base, tmpDirname)}
	dest := filepath.Join(base, "split")

	err := w.write(dest, []byte("data"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no destination file, got %v", err)
	}
}

func TestAtomicWriteMissingDestDir(t *testing.T) {
	w, base := newTestWriter(t)
	dest := filepath.Join(base, "nope", "split")

	err := w.write(dest, []byte("data"))
	if err == nil {
		t.Fatalf("expected error writing into a missing directory")
	}
	if n := dirLen(t, w.tmpDir); n != 0 {
		t.Fatalf("expected temp file to be cleaned up, found %d entries", n)
	}
}
