package repositories

import (
	"context"

	"dataroom/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) GetByID(_ context.Context, tx *gorm.DB, fileID string) (models.File, error) {
	var file models.File
	err := useTx(r.db, tx).Where("id = ?", fileID).First(&file).Error
	return file, err
}

func (r *GormFileRepository) ListByFolder(_ context.Context, tx *gorm.DB, folderID string) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Model(&models.File{}).
		Where("folder_id = ?", folderID).
		Order("name ASC").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListRootByRoom(_ context.Context, tx *gorm.DB, roomID string) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Model(&models.File{}).
		Where("data_room_id = ? AND folder_id IS NULL", roomID).
		Order("name ASC").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByFolderIDs(_ context.Context, tx *gorm.DB, folderIDs []string) ([]models.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	var files []models.File
	err := useTx(r.db, tx).Model(&models.File{}).
		Where("folder_id IN ?", folderIDs).
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByRoom(_ context.Context, tx *gorm.DB, roomID string) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).Model(&models.File{}).
		Where("data_room_id = ?", roomID).
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) CountByFolderAndName(_ context.Context, tx *gorm.DB, roomID string, folderID *string, name string, excludeID string) (int64, error) {
	db := useTx(r.db, tx).Model(&models.File{}).Where("name = ?", name)
	if folderID != nil {
		db = db.Where("folder_id = ?", *folderID)
	} else {
		db = db.Where("data_room_id = ? AND folder_id IS NULL", roomID)
	}
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormFileRepository) CountByStoragePath(_ context.Context, tx *gorm.DB, storagePath string) (int64, error) {
	var count int64
	err := useTx(r.db, tx).Model(&models.File{}).
		Where("storage_path = ?", storagePath).
		Count(&count).Error
	return count, err
}

func (r *GormFileRepository) UpdateName(_ context.Context, tx *gorm.DB, fileID string, name string) error {
	return useTx(r.db, tx).Model(&models.File{}).Where("id = ?", fileID).Update("name", name).Error
}

func (r *GormFileRepository) DeleteByID(_ context.Context, tx *gorm.DB, fileID string) error {
	return useTx(r.db, tx).Where("id = ?", fileID).Delete(&models.File{}).Error
}

func (r *GormFileRepository) DeleteByIDs(_ context.Context, tx *gorm.DB, fileIDs []string) error {
	if len(fileIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("id IN ?", fileIDs).Delete(&models.File{}).Error
}
