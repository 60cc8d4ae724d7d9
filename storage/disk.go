package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dataroom/logger"

	"github.com/google/uuid"
)

// BlobStore persists raw file bytes under opaque locators. A locator is only
// ever handed out by Put and is the sole reference to the bytes; callers own
// the coupling between locators and database records.
type BlobStore interface {
	Put(ext string, r io.Reader) (locator string, size int64, err error)
	Delete(locator string) error
	Exists(locator string) bool
	Open(locator string) (io.ReadCloser, error)
	AbsPath(locator string) string
	ListOlderThan(age time.Duration) ([]string, error)
}

const blobDir = "files"

type DiskStore struct {
	basePath string
}

func NewDiskStore(basePath string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(basePath, blobDir), 0o755); err != nil {
		return nil, fmt.Errorf("create blob directory: %w", err)
	}
	return &DiskStore{basePath: basePath}, nil
}

// Put writes the reader's bytes to a freshly generated locator. O_EXCL
// guarantees an existing blob is never overwritten.
func (s *DiskStore) Put(ext string, r io.Reader) (string, int64, error) {
	locator := filepath.Join(blobDir, uuid.NewString()+strings.ToLower(ext))

	dst, err := os.OpenFile(s.AbsPath(locator), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("create blob %s: %w", locator, err)
	}

	size, err := io.Copy(dst, r)
	if err != nil {
		dst.Close()
		_ = os.Remove(s.AbsPath(locator))
		return "", 0, fmt.Errorf("write blob %s: %w", locator, err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(s.AbsPath(locator))
		return "", 0, fmt.Errorf("close blob %s: %w", locator, err)
	}

	return locator, size, nil
}

// Delete removes a blob. A missing locator is logged and ignored so that
// compensating deletes and cascade cleanup can always proceed.
func (s *DiskStore) Delete(locator string) error {
	err := os.Remove(s.AbsPath(locator))
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		logger.Warnf("blob %s already gone", locator)
		return nil
	}
	return fmt.Errorf("delete blob %s: %w", locator, err)
}

func (s *DiskStore) Exists(locator string) bool {
	info, err := os.Stat(s.AbsPath(locator))
	return err == nil && !info.IsDir()
}

func (s *DiskStore) Open(locator string) (io.ReadCloser, error) {
	return os.Open(s.AbsPath(locator))
}

func (s *DiskStore) AbsPath(locator string) string {
	return filepath.Join(s.basePath, locator)
}

// ListOlderThan returns locators whose blobs were written before now-age.
// Used by the orphan sweeper; recent blobs are skipped because an upload may
// still be between its blob write and its record commit.
func (s *DiskStore) ListOlderThan(age time.Duration) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.basePath, blobDir))
	if err != nil {
		return nil, fmt.Errorf("read blob directory: %w", err)
	}

	cutoff := time.Now().Add(-age)
	var locators []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			locators = append(locators, filepath.Join(blobDir, entry.Name()))
		}
	}
	return locators, nil
}
