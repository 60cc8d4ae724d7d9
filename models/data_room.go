package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DataRoom struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Folders []Folder `gorm:"foreignKey:DataRoomID" json:"folders"`
	Files   []File   `gorm:"foreignKey:DataRoomID" json:"files"`
}

func (r *DataRoom) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
