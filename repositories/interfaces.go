package repositories

import (
	"context"

	"dataroom/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type DataRoomRepository interface {
	Create(ctx context.Context, tx *gorm.DB, room *models.DataRoom) error
	GetByID(ctx context.Context, tx *gorm.DB, roomID string) (models.DataRoom, error)
	List(ctx context.Context, tx *gorm.DB) ([]models.DataRoom, error)
	CountByName(ctx context.Context, tx *gorm.DB, name string, excludeID string) (int64, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, roomID string) error
}

type FolderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	GetByID(ctx context.Context, tx *gorm.DB, folderID string) (models.Folder, error)
	ListByParent(ctx context.Context, tx *gorm.DB, parentID string) ([]models.Folder, error)
	ListRootByRoom(ctx context.Context, tx *gorm.DB, roomID string) ([]models.Folder, error)
	ListIDsByParents(ctx context.Context, tx *gorm.DB, parentIDs []string) ([]string, error)
	ListIDsByRoom(ctx context.Context, tx *gorm.DB, roomID string) ([]string, error)
	CountByParentAndName(ctx context.Context, tx *gorm.DB, roomID string, parentID *string, name string, excludeID string) (int64, error)
	UpdateName(ctx context.Context, tx *gorm.DB, folderID string, name string) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, folderIDs []string) error
}

type FileRepository interface {
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	GetByID(ctx context.Context, tx *gorm.DB, fileID string) (models.File, error)
	ListByFolder(ctx context.Context, tx *gorm.DB, folderID string) ([]models.File, error)
	ListRootByRoom(ctx context.Context, tx *gorm.DB, roomID string) ([]models.File, error)
	ListByFolderIDs(ctx context.Context, tx *gorm.DB, folderIDs []string) ([]models.File, error)
	ListByRoom(ctx context.Context, tx *gorm.DB, roomID string) ([]models.File, error)
	CountByFolderAndName(ctx context.Context, tx *gorm.DB, roomID string, folderID *string, name string, excludeID string) (int64, error)
	CountByStoragePath(ctx context.Context, tx *gorm.DB, storagePath string) (int64, error)
	UpdateName(ctx context.Context, tx *gorm.DB, fileID string, name string) error
	DeleteByID(ctx context.Context, tx *gorm.DB, fileID string) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, fileIDs []string) error
}

type Container struct {
	TxManager TxManager
	DataRooms DataRoomRepository
	Folders   FolderRepository
	Files     FileRepository
}
