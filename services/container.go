package services

import (
	"dataroom/repositories"
	"dataroom/storage"
)

type Container struct {
	DataRoom DataRoomService
	Folder   FolderService
	File     FileService
	Cleanup  CleanupService
}

func NewContainer(repos repositories.Container, blobs storage.BlobStore) *Container {
	return &Container{
		DataRoom: NewDataRoomService(repos.TxManager, repos.DataRooms, repos.Folders, repos.Files, blobs),
		Folder:   NewFolderService(repos.TxManager, repos.DataRooms, repos.Folders, repos.Files, blobs),
		File:     NewFileService(repos.TxManager, repos.Folders, repos.Files, blobs),
		Cleanup:  NewCleanupService(repos.Files, blobs),
	}
}
