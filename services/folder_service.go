package services

import (
	"context"
	"fmt"
	"net/http"

	"dataroom/logger"
	"dataroom/models"
	"dataroom/repositories"
	"dataroom/storage"

	"gorm.io/gorm"
)

type CreateFolderInput struct {
	DataRoomID     string
	ParentFolderID *string
	Name           string
}

type FolderService interface {
	CreateFolder(ctx context.Context, in CreateFolderInput) (models.Folder, error)
	GetFolder(ctx context.Context, folderID string) (models.Folder, error)
	RenameFolder(ctx context.Context, folderID string, name string) (models.Folder, error)
	DeleteFolder(ctx context.Context, folderID string) (models.Folder, error)
}

type folderService struct {
	txManager repositories.TxManager
	rooms     repositories.DataRoomRepository
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	blobs     storage.BlobStore
}

func NewFolderService(
	txManager repositories.TxManager,
	rooms repositories.DataRoomRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	blobs storage.BlobStore,
) FolderService {
	return &folderService{
		txManager: txManager,
		rooms:     rooms,
		folders:   folders,
		files:     files,
		blobs:     blobs,
	}
}

// CreateFolder creates a folder at the root of a room or under an existing
// parent. Depth is assigned here from the parent and never recomputed, which
// keeps the parent chain acyclic without a cycle check.
func (s *folderService) CreateFolder(ctx context.Context, in CreateFolderInput) (models.Folder, error) {
	if appErr := validateEntryName("folder", in.Name); appErr != nil {
		return models.Folder{}, appErr
	}

	depth := 0
	roomID := in.DataRoomID
	if in.ParentFolderID != nil {
		parent, err := s.folders.GetByID(ctx, nil, *in.ParentFolderID)
		if err != nil {
			if isNotFound(err) {
				return models.Folder{}, newAppError(http.StatusNotFound, "parent folder not found", nil)
			}
			return models.Folder{}, newAppError(http.StatusInternalServerError, "load parent folder failed", err)
		}
		depth = parent.Depth + 1
		roomID = parent.DataRoomID
	} else {
		if _, err := s.rooms.GetByID(ctx, nil, roomID); err != nil {
			if isNotFound(err) {
				return models.Folder{}, newAppError(http.StatusNotFound, "data room not found", nil)
			}
			return models.Folder{}, newAppError(http.StatusInternalServerError, "load data room failed", err)
		}
	}

	count, err := s.folders.CountByParentAndName(ctx, nil, roomID, in.ParentFolderID, in.Name, "")
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "check folder name failed", err)
	}
	if count > 0 {
		return models.Folder{}, newAppError(http.StatusConflict, fmt.Sprintf("a folder named '%s' already exists in this location", in.Name), nil)
	}

	folder := models.Folder{
		DataRoomID:     roomID,
		ParentFolderID: in.ParentFolderID,
		Name:           in.Name,
		Depth:          depth,
	}
	if err := s.folders.Create(ctx, nil, &folder); err != nil {
		if isDuplicateKey(err) {
			return models.Folder{}, newAppError(http.StatusConflict, fmt.Sprintf("a folder named '%s' already exists in this location", in.Name), nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "create folder failed", err)
	}

	return folder, nil
}

// GetFolder returns the folder plus its immediate child folders and files,
// one level deep.
func (s *folderService) GetFolder(ctx context.Context, folderID string) (models.Folder, error) {
	var folder models.Folder
	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		folder, err = s.folders.GetByID(ctx, tx, folderID)
		if err != nil {
			return err
		}
		if folder.Folders, err = s.folders.ListByParent(ctx, tx, folderID); err != nil {
			return err
		}
		folder.Files, err = s.files.ListByFolder(ctx, tx, folderID)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return models.Folder{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "load folder failed", err)
	}

	if folder.Folders == nil {
		folder.Folders = []models.Folder{}
	}
	if folder.Files == nil {
		folder.Files = []models.File{}
	}
	return folder, nil
}

func (s *folderService) RenameFolder(ctx context.Context, folderID string, name string) (models.Folder, error) {
	if appErr := validateEntryName("folder", name); appErr != nil {
		return models.Folder{}, appErr
	}

	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if isNotFound(err) {
			return models.Folder{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "load folder failed", err)
	}

	count, err := s.folders.CountByParentAndName(ctx, nil, folder.DataRoomID, folder.ParentFolderID, name, folder.ID)
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "check folder name failed", err)
	}
	if count > 0 {
		return models.Folder{}, newAppError(http.StatusConflict, fmt.Sprintf("a folder named '%s' already exists in this location", name), nil)
	}

	if err := s.folders.UpdateName(ctx, nil, folder.ID, name); err != nil {
		if isDuplicateKey(err) {
			return models.Folder{}, newAppError(http.StatusConflict, fmt.Sprintf("a folder named '%s' already exists in this location", name), nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "rename folder failed", err)
	}

	folder.Name = name
	return folder, nil
}

// DeleteFolder removes the folder and every descendant folder and file in a
// single transaction, then deletes the blobs of the removed files. A blob
// delete failure is logged and never rolls back the row cascade.
func (s *folderService) DeleteFolder(ctx context.Context, folderID string) (models.Folder, error) {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if isNotFound(err) {
			return models.Folder{}, newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return models.Folder{}, newAppError(http.StatusInternalServerError, "load folder failed", err)
	}

	var locators []string
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		subtreeIDs, err := s.collectSubtreeIDs(ctx, tx, folder.ID)
		if err != nil {
			return err
		}

		files, err := s.files.ListByFolderIDs(ctx, tx, subtreeIDs)
		if err != nil {
			return err
		}
		fileIDs := make([]string, 0, len(files))
		for _, file := range files {
			fileIDs = append(fileIDs, file.ID)
			locators = append(locators, file.StoragePath)
		}

		if err := s.files.DeleteByIDs(ctx, tx, fileIDs); err != nil {
			return err
		}
		return s.folders.DeleteByIDs(ctx, tx, subtreeIDs)
	})
	if err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "delete folder failed", err)
	}

	for _, locator := range locators {
		if err := s.blobs.Delete(locator); err != nil {
			logger.Warnf("delete blob %s during folder cascade failed: %v", locator, err)
		}
	}
	return folder, nil
}

// collectSubtreeIDs walks the tree breadth-first from the given root. Depth
// is bounded by construction, so the walk terminates.
func (s *folderService) collectSubtreeIDs(ctx context.Context, tx *gorm.DB, rootID string) ([]string, error) {
	ids := []string{rootID}
	frontier := []string{rootID}
	for len(frontier) > 0 {
		next, err := s.folders.ListIDsByParents(ctx, tx, frontier)
		if err != nil {
			return nil, err
		}
		ids = append(ids, next...)
		frontier = next
	}
	return ids, nil
}
