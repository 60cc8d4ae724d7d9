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

type DataRoomService interface {
	CreateDataRoom(ctx context.Context, name string) (models.DataRoom, error)
	ListDataRooms(ctx context.Context) ([]models.DataRoom, error)
	GetDataRoom(ctx context.Context, roomID string) (models.DataRoom, error)
	DeleteDataRoom(ctx context.Context, roomID string) error
}

type dataRoomService struct {
	txManager repositories.TxManager
	rooms     repositories.DataRoomRepository
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	blobs     storage.BlobStore
}

func NewDataRoomService(
	txManager repositories.TxManager,
	rooms repositories.DataRoomRepository,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	blobs storage.BlobStore,
) DataRoomService {
	return &dataRoomService{
		txManager: txManager,
		rooms:     rooms,
		folders:   folders,
		files:     files,
		blobs:     blobs,
	}
}

func (s *dataRoomService) CreateDataRoom(ctx context.Context, name string) (models.DataRoom, error) {
	if appErr := validateRoomName(name); appErr != nil {
		return models.DataRoom{}, appErr
	}

	count, err := s.rooms.CountByName(ctx, nil, name, "")
	if err != nil {
		return models.DataRoom{}, newAppError(http.StatusInternalServerError, "check data room name failed", err)
	}
	if count > 0 {
		return models.DataRoom{}, newAppError(http.StatusConflict, fmt.Sprintf("a data room named '%s' already exists", name), nil)
	}

	room := models.DataRoom{Name: name}
	if err := s.rooms.Create(ctx, nil, &room); err != nil {
		if isDuplicateKey(err) {
			return models.DataRoom{}, newAppError(http.StatusConflict, fmt.Sprintf("a data room named '%s' already exists", name), nil)
		}
		return models.DataRoom{}, newAppError(http.StatusInternalServerError, "create data room failed", err)
	}

	return room, nil
}

func (s *dataRoomService) ListDataRooms(ctx context.Context) ([]models.DataRoom, error) {
	rooms, err := s.rooms.List(ctx, nil)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "list data rooms failed", err)
	}
	return rooms, nil
}

// GetDataRoom returns the room plus its immediate root-level folders and
// files only; deeper levels are expanded lazily through GetFolder.
func (s *dataRoomService) GetDataRoom(ctx context.Context, roomID string) (models.DataRoom, error) {
	var room models.DataRoom
	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		room, err = s.rooms.GetByID(ctx, tx, roomID)
		if err != nil {
			return err
		}
		if room.Folders, err = s.folders.ListRootByRoom(ctx, tx, roomID); err != nil {
			return err
		}
		room.Files, err = s.files.ListRootByRoom(ctx, tx, roomID)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return models.DataRoom{}, newAppError(http.StatusNotFound, "data room not found", nil)
		}
		return models.DataRoom{}, newAppError(http.StatusInternalServerError, "load data room failed", err)
	}

	if room.Folders == nil {
		room.Folders = []models.Folder{}
	}
	if room.Files == nil {
		room.Files = []models.File{}
	}
	return room, nil
}

// DeleteDataRoom removes the room with every folder and file it owns in one
// transaction, then deletes the blobs of the removed files. Blob failures are
// logged and never abort the database-side cascade.
func (s *dataRoomService) DeleteDataRoom(ctx context.Context, roomID string) error {
	if _, err := s.rooms.GetByID(ctx, nil, roomID); err != nil {
		if isNotFound(err) {
			return newAppError(http.StatusNotFound, "data room not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "load data room failed", err)
	}

	var locators []string
	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		files, err := s.files.ListByRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}
		fileIDs := make([]string, 0, len(files))
		for _, file := range files {
			fileIDs = append(fileIDs, file.ID)
			locators = append(locators, file.StoragePath)
		}

		folderIDs, err := s.folders.ListIDsByRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		if err := s.files.DeleteByIDs(ctx, tx, fileIDs); err != nil {
			return err
		}
		if err := s.folders.DeleteByIDs(ctx, tx, folderIDs); err != nil {
			return err
		}
		return s.rooms.DeleteByID(ctx, tx, roomID)
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "delete data room failed", err)
	}

	for _, locator := range locators {
		if err := s.blobs.Delete(locator); err != nil {
			logger.Warnf("delete blob %s during data room cascade failed: %v", locator, err)
		}
	}
	return nil
}
