package repositories

import (
	"context"

	"dataroom/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID string) (models.Folder, error) {
	var folder models.Folder
	err := useTx(r.db, tx).Where("id = ?", folderID).First(&folder).Error
	return folder, err
}

func (r *GormFolderRepository) ListByParent(_ context.Context, tx *gorm.DB, parentID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("parent_folder_id = ?", parentID).
		Order("name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListRootByRoom(_ context.Context, tx *gorm.DB, roomID string) ([]models.Folder, error) {
	var folders []models.Folder
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("data_room_id = ? AND parent_folder_id IS NULL", roomID).
		Order("name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListIDsByParents(_ context.Context, tx *gorm.DB, parentIDs []string) ([]string, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("parent_folder_id IN ?", parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormFolderRepository) ListIDsByRoom(_ context.Context, tx *gorm.DB, roomID string) ([]string, error) {
	var ids []string
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("data_room_id = ?", roomID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormFolderRepository) CountByParentAndName(_ context.Context, tx *gorm.DB, roomID string, parentID *string, name string, excludeID string) (int64, error) {
	db := useTx(r.db, tx).Model(&models.Folder{}).Where("name = ?", name)
	if parentID != nil {
		db = db.Where("parent_folder_id = ?", *parentID)
	} else {
		db = db.Where("data_room_id = ? AND parent_folder_id IS NULL", roomID)
	}
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormFolderRepository) UpdateName(_ context.Context, tx *gorm.DB, folderID string, name string) error {
	return useTx(r.db, tx).Model(&models.Folder{}).Where("id = ?", folderID).Update("name", name).Error
}

func (r *GormFolderRepository) DeleteByIDs(_ context.Context, tx *gorm.DB, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("id IN ?", folderIDs).Delete(&models.Folder{}).Error
}
