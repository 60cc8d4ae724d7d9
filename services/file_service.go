package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"dataroom/config"
	"dataroom/logger"
	"dataroom/models"
	"dataroom/repositories"
	"dataroom/storage"

	"gorm.io/gorm"
)

type UploadFileInput struct {
	FolderID     string
	Name         string
	OriginalName string
	Size         int64
	Content      io.Reader
}

type FileAccessOutput struct {
	File         models.File
	AbsPath      string
	ContentType  string
	DownloadName string
}

type FileService interface {
	UploadFile(ctx context.Context, in UploadFileInput) (models.File, error)
	GetFile(ctx context.Context, fileID string) (models.File, error)
	GetDownloadInfo(ctx context.Context, fileID string) (FileAccessOutput, error)
	RenameFile(ctx context.Context, fileID string, name string) (models.File, error)
	DeleteFile(ctx context.Context, fileID string) (models.File, error)
}

type fileService struct {
	txManager repositories.TxManager
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	blobs     storage.BlobStore
}

func NewFileService(
	txManager repositories.TxManager,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	blobs storage.BlobStore,
) FileService {
	return &fileService{
		txManager: txManager,
		folders:   folders,
		files:     files,
		blobs:     blobs,
	}
}

// UploadFile runs the upload in three steps: validate, write the blob, record
// the row. The blob write deliberately precedes the record insert; every
// failure after the write deletes the just-written blob, so no committed blob
// outlives a failed upload.
func (s *fileService) UploadFile(ctx context.Context, in UploadFileInput) (models.File, error) {
	maxSize := config.AppConfig.Storage.MaxFileSize

	if !strings.HasSuffix(strings.ToLower(in.OriginalName), ".pdf") {
		return models.File{}, newAppError(http.StatusBadRequest, "only PDF files are supported", nil)
	}
	if in.Size <= 0 {
		return models.File{}, newAppError(http.StatusBadRequest, "file is empty", nil)
	}
	if in.Size > maxSize {
		return models.File{}, newAppErrorWithData(http.StatusBadRequest, "file size exceeds the upload limit", map[string]interface{}{
			"max_file_size": maxSize,
			"file_size":     in.Size,
		}, nil)
	}
	if appErr := validateEntryName("file", in.Name); appErr != nil {
		return models.File{}, appErr
	}

	locator, written, err := s.blobs.Put(filepath.Ext(in.OriginalName), in.Content)
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "store file content failed", err)
	}

	// The declared size is what the client claimed; the written size is what
	// actually landed on disk and is the one recorded.
	if written == 0 {
		s.discardBlob(locator)
		return models.File{}, newAppError(http.StatusBadRequest, "file is empty", nil)
	}
	if written > maxSize {
		s.discardBlob(locator)
		return models.File{}, newAppError(http.StatusBadRequest, "file size exceeds the upload limit", nil)
	}

	folder, err := s.folders.GetByID(ctx, nil, in.FolderID)
	if err != nil {
		s.discardBlob(locator)
		if isNotFound(err) {
			return models.File{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "load folder failed", err)
	}

	count, err := s.files.CountByFolderAndName(ctx, nil, folder.DataRoomID, &folder.ID, in.Name, "")
	if err != nil {
		s.discardBlob(locator)
		return models.File{}, newAppError(http.StatusInternalServerError, "check file name failed", err)
	}
	if count > 0 {
		s.discardBlob(locator)
		return models.File{}, newAppError(http.StatusConflict, fmt.Sprintf("a file named '%s' already exists in this folder", in.Name), nil)
	}

	folderID := folder.ID
	record := models.File{
		DataRoomID:   folder.DataRoomID,
		FolderID:     &folderID,
		Name:         in.Name,
		OriginalName: truncateOriginalName(in.OriginalName),
		StoragePath:  locator,
		FileSize:     written,
		ContentType:  "application/pdf",
	}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.files.Create(ctx, tx, &record)
	})
	if err != nil {
		s.discardBlob(locator)
		if isDuplicateKey(err) {
			return models.File{}, newAppError(http.StatusConflict, fmt.Sprintf("a file named '%s' already exists in this folder", in.Name), nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "record file failed", err)
	}

	return record, nil
}

func (s *fileService) GetFile(ctx context.Context, fileID string) (models.File, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if isNotFound(err) {
			return models.File{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "load file failed", err)
	}
	return file, nil
}

// GetDownloadInfo resolves a file for serving. A row whose blob no longer
// exists is reported as its own not-found condition instead of serving an
// empty body.
func (s *fileService) GetDownloadInfo(ctx context.Context, fileID string) (FileAccessOutput, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if isNotFound(err) {
			return FileAccessOutput{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return FileAccessOutput{}, newAppError(http.StatusInternalServerError, "load file failed", err)
	}

	if !s.blobs.Exists(file.StoragePath) {
		return FileAccessOutput{}, newAppError(http.StatusNotFound, fmt.Sprintf("content of file '%s' is missing from storage", file.OriginalName), nil)
	}

	return FileAccessOutput{
		File:         file,
		AbsPath:      s.blobs.AbsPath(file.StoragePath),
		ContentType:  file.ContentType,
		DownloadName: file.OriginalName,
	}, nil
}

func (s *fileService) RenameFile(ctx context.Context, fileID string, name string) (models.File, error) {
	if appErr := validateEntryName("file", name); appErr != nil {
		return models.File{}, appErr
	}

	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if isNotFound(err) {
			return models.File{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "load file failed", err)
	}

	count, err := s.files.CountByFolderAndName(ctx, nil, file.DataRoomID, file.FolderID, name, file.ID)
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "check file name failed", err)
	}
	if count > 0 {
		return models.File{}, newAppError(http.StatusConflict, fmt.Sprintf("a file named '%s' already exists in this folder", name), nil)
	}

	if err := s.files.UpdateName(ctx, nil, file.ID, name); err != nil {
		if isDuplicateKey(err) {
			return models.File{}, newAppError(http.StatusConflict, fmt.Sprintf("a file named '%s' already exists in this folder", name), nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "rename file failed", err)
	}

	file.Name = name
	return file, nil
}

// DeleteFile removes the row, then the blob. The row is the authoritative
// side; a failed blob delete leaves a reclaimable leak and is only logged.
func (s *fileService) DeleteFile(ctx context.Context, fileID string) (models.File, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if isNotFound(err) {
			return models.File{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "load file failed", err)
	}

	if err := s.files.DeleteByID(ctx, nil, file.ID); err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "delete file failed", err)
	}

	if err := s.blobs.Delete(file.StoragePath); err != nil {
		logger.Warnf("delete blob %s for file %s failed: %v", file.StoragePath, file.ID, err)
	}
	return file, nil
}

func (s *fileService) discardBlob(locator string) {
	if err := s.blobs.Delete(locator); err != nil {
		logger.Warnf("compensating delete of blob %s failed: %v", locator, err)
	}
}
