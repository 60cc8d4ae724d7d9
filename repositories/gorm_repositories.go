package repositories

import (
	"context"

	"gorm.io/gorm"
)

type GormTxManager struct {
	db *gorm.DB
}

func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

func (m *GormTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}

type GormRepositories struct {
	db *gorm.DB
}

func NewGormRepositories(db *gorm.DB) *GormRepositories {
	return &GormRepositories{db: db}
}

func (r *GormRepositories) BuildContainer() Container {
	return Container{
		TxManager: NewGormTxManager(r.db),
		DataRooms: NewGormDataRoomRepository(r.db),
		Folders:   NewGormFolderRepository(r.db),
		Files:     NewGormFileRepository(r.db),
	}
}

func useTx(db *gorm.DB, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
