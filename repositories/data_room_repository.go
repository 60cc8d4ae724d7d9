package repositories

import (
	"context"

	"dataroom/models"

	"gorm.io/gorm"
)

type GormDataRoomRepository struct {
	db *gorm.DB
}

func NewGormDataRoomRepository(db *gorm.DB) *GormDataRoomRepository {
	return &GormDataRoomRepository{db: db}
}

func (r *GormDataRoomRepository) Create(_ context.Context, tx *gorm.DB, room *models.DataRoom) error {
	return useTx(r.db, tx).Create(room).Error
}

func (r *GormDataRoomRepository) GetByID(_ context.Context, tx *gorm.DB, roomID string) (models.DataRoom, error) {
	var room models.DataRoom
	err := useTx(r.db, tx).Where("id = ?", roomID).First(&room).Error
	return room, err
}

func (r *GormDataRoomRepository) List(_ context.Context, tx *gorm.DB) ([]models.DataRoom, error) {
	var rooms []models.DataRoom
	err := useTx(r.db, tx).Model(&models.DataRoom{}).Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *GormDataRoomRepository) CountByName(_ context.Context, tx *gorm.DB, name string, excludeID string) (int64, error) {
	db := useTx(r.db, tx).Model(&models.DataRoom{}).Where("name = ?", name)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}
	var count int64
	err := db.Count(&count).Error
	return count, err
}

func (r *GormDataRoomRepository) DeleteByID(_ context.Context, tx *gorm.DB, roomID string) error {
	return useTx(r.db, tx).Where("id = ?", roomID).Delete(&models.DataRoom{}).Error
}
