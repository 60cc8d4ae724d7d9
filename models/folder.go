package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Folder is a node in a data room's folder tree. ParentFolderID is nil for
// root-level folders; Depth is fixed at creation (0 for roots, parent+1
// otherwise) and never recomputed, so the parent chain cannot form a cycle.
type Folder struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	DataRoomID     string    `gorm:"type:char(36);not null;index" json:"data_room_id"`
	ParentFolderID *string   `gorm:"type:char(36);uniqueIndex:idx_folders_parent_name" json:"parent_folder_id"`
	Name           string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_folders_parent_name" json:"name"`
	Depth          int       `gorm:"not null;default:0" json:"depth"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	DataRoom *DataRoom `gorm:"foreignKey:DataRoomID;constraint:OnDelete:CASCADE" json:"-"`
	Parent   *Folder   `gorm:"foreignKey:ParentFolderID;constraint:OnDelete:CASCADE" json:"-"`
	Folders  []Folder  `gorm:"foreignKey:ParentFolderID" json:"folders"`
	Files    []File    `gorm:"foreignKey:FolderID" json:"files"`
}

func (f *Folder) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
