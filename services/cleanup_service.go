package services

import (
	"context"
	"time"

	"dataroom/config"
	"dataroom/logger"
	"dataroom/repositories"
	"dataroom/storage"
)

// CleanupService reclaims orphaned blobs: a crash between the blob write and
// the record commit of an upload can leave bytes on disk that no File row
// references. The sweep only ever deletes blobs, never rows.
type CleanupService interface {
	SweepOrphanBlobs(ctx context.Context) (int, error)
}

type cleanupService struct {
	files repositories.FileRepository
	blobs storage.BlobStore
}

func NewCleanupService(files repositories.FileRepository, blobs storage.BlobStore) CleanupService {
	return &cleanupService{files: files, blobs: blobs}
}

func (s *cleanupService) SweepOrphanBlobs(ctx context.Context) (int, error) {
	retention := time.Duration(config.AppConfig.Storage.OrphanRetentionSeconds) * time.Second

	locators, err := s.blobs.ListOlderThan(retention)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, locator := range locators {
		count, err := s.files.CountByStoragePath(ctx, nil, locator)
		if err != nil {
			logger.Warnf("orphan sweep: check blob %s failed: %v", locator, err)
			continue
		}
		if count > 0 {
			continue
		}
		if err := s.blobs.Delete(locator); err != nil {
			logger.Warnf("orphan sweep: delete blob %s failed: %v", locator, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Infof("orphan sweep removed %d blob(s)", removed)
	}
	return removed, nil
}

func StartCleanupWorkers(cleanup CleanupService) {
	if !config.AppConfig.Storage.OrphanSweepEnabled {
		return
	}
	go orphanSweepLoop(cleanup)
}

func orphanSweepLoop(cleanup CleanupService) {
	interval := time.Duration(config.AppConfig.Storage.OrphanSweepInterval) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		if _, err := cleanup.SweepOrphanBlobs(context.Background()); err != nil {
			logger.Warnf("orphan sweep failed: %v", err)
		}
	}
}
