package storage

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *DiskStore {
	t.Helper()
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}
	return store
}

func TestPutAndOpenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	locator, size, err := store.Put(".pdf", strings.NewReader("%PDF-1.4 payload"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if size != int64(len("%PDF-1.4 payload")) {
		t.Errorf("size = %d", size)
	}
	if !strings.HasSuffix(locator, ".pdf") {
		t.Errorf("locator %s does not carry the extension", locator)
	}
	if !store.Exists(locator) {
		t.Fatalf("blob missing after Put")
	}

	rc, err := store.Open(locator)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "%PDF-1.4 payload" {
		t.Errorf("blob content = %q", data)
	}
}

func TestPutLowercasesExtension(t *testing.T) {
	store := newTestStore(t)

	locator, _, err := store.Put(".PDF", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasSuffix(locator, ".pdf") {
		t.Errorf("locator %s keeps the uppercase extension", locator)
	}
}

func TestPutGeneratesDistinctLocators(t *testing.T) {
	store := newTestStore(t)

	a, _, err := store.Put(".pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Put a: %v", err)
	}
	b, _, err := store.Put(".pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Put b: %v", err)
	}
	if a == b {
		t.Errorf("two Puts produced the same locator %s", a)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	locator, _, err := store.Put(".pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := store.Delete(locator); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if store.Exists(locator) {
		t.Fatalf("blob survives Delete")
	}

	// Deleting an already-deleted blob must not fail; cascade cleanup and
	// compensating deletes rely on it.
	if err := store.Delete(locator); err != nil {
		t.Errorf("second Delete: %v", err)
	}
	if err := store.Delete("files/never-existed.pdf"); err != nil {
		t.Errorf("Delete of unknown locator: %v", err)
	}
}

func TestExistsOnMissingAndDir(t *testing.T) {
	store := newTestStore(t)

	if store.Exists("files/missing.pdf") {
		t.Errorf("Exists reports a missing blob")
	}
	// The blob directory itself is not a blob.
	if store.Exists("files") {
		t.Errorf("Exists reports the directory as a blob")
	}
}

func TestListOlderThan(t *testing.T) {
	store := newTestStore(t)

	aged, _, err := store.Put(".pdf", strings.NewReader("old"))
	if err != nil {
		t.Fatalf("Put aged: %v", err)
	}
	if _, _, err := store.Put(".pdf", strings.NewReader("new")); err != nil {
		t.Fatalf("Put fresh: %v", err)
	}

	past := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(store.AbsPath(aged), past, past); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	locators, err := store.ListOlderThan(time.Hour)
	if err != nil {
		t.Fatalf("ListOlderThan: %v", err)
	}
	if len(locators) != 1 || locators[0] != aged {
		t.Errorf("ListOlderThan = %v, want [%s]", locators, aged)
	}
}

func TestListOlderThanEmpty(t *testing.T) {
	store := newTestStore(t)

	locators, err := store.ListOlderThan(time.Hour)
	if err != nil {
		t.Fatalf("ListOlderThan: %v", err)
	}
	if len(locators) != 0 {
		t.Errorf("ListOlderThan on empty store = %v", locators)
	}
}
