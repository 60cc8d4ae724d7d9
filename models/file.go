package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File is a PDF stored in a data room. FolderID is nil for root-level files.
// StoragePath is the blob store locator and the only live reference to the
// bytes on disk.
type File struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	DataRoomID   string    `gorm:"type:char(36);not null;index" json:"data_room_id"`
	FolderID     *string   `gorm:"type:char(36);uniqueIndex:idx_files_folder_name" json:"folder_id"`
	Name         string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_files_folder_name" json:"name"`
	OriginalName string    `gorm:"type:varchar(100);not null" json:"original_name"`
	StoragePath  string    `gorm:"type:varchar(100);not null" json:"storage_path"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	ContentType  string    `gorm:"type:varchar(100);default:'application/pdf'" json:"content_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	DataRoom *DataRoom `gorm:"foreignKey:DataRoomID;constraint:OnDelete:CASCADE" json:"-"`
	Folder   *Folder   `gorm:"foreignKey:FolderID;constraint:OnDelete:CASCADE" json:"-"`
}

func (f *File) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
