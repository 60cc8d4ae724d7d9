package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"dataroom/models"

	"gorm.io/gorm"
)

func assertAppError(t *testing.T, err error, wantCode int) *AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with HTTP code %d, got nil", wantCode)
	}
	appErr, ok := err.(*AppError)
	if !ok {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.HTTPCode != wantCode {
		t.Fatalf("expected HTTP code %d, got %d (%s)", wantCode, appErr.HTTPCode, appErr.Message)
	}
	return appErr
}

type fakeTxManager struct {
	err error
}

func (m fakeTxManager) WithTransaction(_ context.Context, fn func(tx *gorm.DB) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type fakeRoomRepo struct {
	rooms     map[string]models.DataRoom
	nextID    int
	createErr error
	getErr    error
	deleteErr error
	deleted   []string
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[string]models.DataRoom{}, nextID: 1}
}

func (r *fakeRoomRepo) Create(_ context.Context, _ *gorm.DB, room *models.DataRoom) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.rooms {
		if existing.Name == room.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	if room.ID == "" {
		room.ID = fmt.Sprintf("room-%d", r.nextID)
		r.nextID++
	}
	r.rooms[room.ID] = *room
	return nil
}

func (r *fakeRoomRepo) GetByID(_ context.Context, _ *gorm.DB, roomID string) (models.DataRoom, error) {
	if r.getErr != nil {
		return models.DataRoom{}, r.getErr
	}
	room, ok := r.rooms[roomID]
	if !ok {
		return models.DataRoom{}, gorm.ErrRecordNotFound
	}
	return room, nil
}

func (r *fakeRoomRepo) List(_ context.Context, _ *gorm.DB) ([]models.DataRoom, error) {
	out := make([]models.DataRoom, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeRoomRepo) CountByName(_ context.Context, _ *gorm.DB, name string, excludeID string) (int64, error) {
	var count int64
	for _, room := range r.rooms {
		if room.Name == name && room.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRoomRepo) DeleteByID(_ context.Context, _ *gorm.DB, roomID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.rooms, roomID)
	r.deleted = append(r.deleted, roomID)
	return nil
}

type fakeFolderRepo struct {
	folders   map[string]models.Folder
	nextID    int
	createErr error
	getErr    error
	countErr  error
	deleted   []string
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{folders: map[string]models.Folder{}, nextID: 1}
}

func (r *fakeFolderRepo) sameScope(folder models.Folder, roomID string, parentID *string) bool {
	if parentID != nil {
		return folder.ParentFolderID != nil && *folder.ParentFolderID == *parentID
	}
	return folder.ParentFolderID == nil && folder.DataRoomID == roomID
}

func (r *fakeFolderRepo) Create(_ context.Context, _ *gorm.DB, folder *models.Folder) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.folders {
		if existing.Name == folder.Name && r.sameScope(existing, folder.DataRoomID, folder.ParentFolderID) {
			return gorm.ErrDuplicatedKey
		}
	}
	if folder.ID == "" {
		folder.ID = fmt.Sprintf("folder-%d", r.nextID)
		r.nextID++
	}
	r.folders[folder.ID] = *folder
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, _ *gorm.DB, folderID string) (models.Folder, error) {
	if r.getErr != nil {
		return models.Folder{}, r.getErr
	}
	folder, ok := r.folders[folderID]
	if !ok {
		return models.Folder{}, gorm.ErrRecordNotFound
	}
	return folder, nil
}

func (r *fakeFolderRepo) ListByParent(_ context.Context, _ *gorm.DB, parentID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.ParentFolderID != nil && *folder.ParentFolderID == parentID {
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) ListRootByRoom(_ context.Context, _ *gorm.DB, roomID string) ([]models.Folder, error) {
	var out []models.Folder
	for _, folder := range r.folders {
		if folder.DataRoomID == roomID && folder.ParentFolderID == nil {
			out = append(out, folder)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFolderRepo) ListIDsByParents(_ context.Context, _ *gorm.DB, parentIDs []string) ([]string, error) {
	var out []string
	for _, parentID := range parentIDs {
		for _, folder := range r.folders {
			if folder.ParentFolderID != nil && *folder.ParentFolderID == parentID {
				out = append(out, folder.ID)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFolderRepo) ListIDsByRoom(_ context.Context, _ *gorm.DB, roomID string) ([]string, error) {
	var out []string
	for _, folder := range r.folders {
		if folder.DataRoomID == roomID {
			out = append(out, folder.ID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeFolderRepo) CountByParentAndName(_ context.Context, _ *gorm.DB, roomID string, parentID *string, name string, excludeID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, folder := range r.folders {
		if folder.Name == name && folder.ID != excludeID && r.sameScope(folder, roomID, parentID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeFolderRepo) UpdateName(_ context.Context, _ *gorm.DB, folderID string, name string) error {
	folder, ok := r.folders[folderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	folder.Name = name
	r.folders[folderID] = folder
	return nil
}

func (r *fakeFolderRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, folderIDs []string) error {
	for _, id := range folderIDs {
		delete(r.folders, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type fakeFileRepo struct {
	files     map[string]models.File
	nextID    int
	createErr error
	getErr    error
	countErr  error
	deleted   []string
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: map[string]models.File{}, nextID: 1}
}

func (r *fakeFileRepo) sameScope(file models.File, roomID string, folderID *string) bool {
	if folderID != nil {
		return file.FolderID != nil && *file.FolderID == *folderID
	}
	return file.FolderID == nil && file.DataRoomID == roomID
}

func (r *fakeFileRepo) Create(_ context.Context, _ *gorm.DB, file *models.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.files {
		if existing.Name == file.Name && r.sameScope(existing, file.DataRoomID, file.FolderID) {
			return gorm.ErrDuplicatedKey
		}
	}
	if file.ID == "" {
		file.ID = fmt.Sprintf("file-%d", r.nextID)
		r.nextID++
	}
	r.files[file.ID] = *file
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, _ *gorm.DB, fileID string) (models.File, error) {
	if r.getErr != nil {
		return models.File{}, r.getErr
	}
	file, ok := r.files[fileID]
	if !ok {
		return models.File{}, gorm.ErrRecordNotFound
	}
	return file, nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, _ *gorm.DB, folderID string) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.FolderID != nil && *file.FolderID == folderID {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFileRepo) ListRootByRoom(_ context.Context, _ *gorm.DB, roomID string) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.DataRoomID == roomID && file.FolderID == nil {
			out = append(out, file)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeFileRepo) ListByFolderIDs(_ context.Context, _ *gorm.DB, folderIDs []string) ([]models.File, error) {
	var out []models.File
	for _, folderID := range folderIDs {
		for _, file := range r.files {
			if file.FolderID != nil && *file.FolderID == folderID {
				out = append(out, file)
			}
		}
	}
	return out, nil
}

func (r *fakeFileRepo) ListByRoom(_ context.Context, _ *gorm.DB, roomID string) ([]models.File, error) {
	var out []models.File
	for _, file := range r.files {
		if file.DataRoomID == roomID {
			out = append(out, file)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) CountByFolderAndName(_ context.Context, _ *gorm.DB, roomID string, folderID *string, name string, excludeID string) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	var count int64
	for _, file := range r.files {
		if file.Name == name && file.ID != excludeID && r.sameScope(file, roomID, folderID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeFileRepo) CountByStoragePath(_ context.Context, _ *gorm.DB, storagePath string) (int64, error) {
	var count int64
	for _, file := range r.files {
		if file.StoragePath == storagePath {
			count++
		}
	}
	return count, nil
}

func (r *fakeFileRepo) UpdateName(_ context.Context, _ *gorm.DB, fileID string, name string) error {
	file, ok := r.files[fileID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	file.Name = name
	r.files[fileID] = file
	return nil
}

func (r *fakeFileRepo) DeleteByID(_ context.Context, _ *gorm.DB, fileID string) error {
	delete(r.files, fileID)
	r.deleted = append(r.deleted, fileID)
	return nil
}

func (r *fakeFileRepo) DeleteByIDs(_ context.Context, _ *gorm.DB, fileIDs []string) error {
	for _, id := range fileIDs {
		delete(r.files, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type fakeBlobStore struct {
	blobs     map[string][]byte
	mtimes    map[string]time.Time
	nextID    int
	putErr    error
	deleteErr error
	deleted   []string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: map[string][]byte{}, mtimes: map[string]time.Time{}, nextID: 1}
}

func (s *fakeBlobStore) Put(ext string, r io.Reader) (string, int64, error) {
	if s.putErr != nil {
		return "", 0, s.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	locator := filepath.Join("files", fmt.Sprintf("blob-%d%s", s.nextID, ext))
	s.nextID++
	s.blobs[locator] = data
	s.mtimes[locator] = time.Now()
	return locator, int64(len(data)), nil
}

func (s *fakeBlobStore) Delete(locator string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, locator)
	delete(s.mtimes, locator)
	s.deleted = append(s.deleted, locator)
	return nil
}

func (s *fakeBlobStore) Exists(locator string) bool {
	_, ok := s.blobs[locator]
	return ok
}

func (s *fakeBlobStore) Open(locator string) (io.ReadCloser, error) {
	data, ok := s.blobs[locator]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) AbsPath(locator string) string {
	return filepath.Join("/blobstore", locator)
}

func (s *fakeBlobStore) ListOlderThan(age time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-age)
	var out []string
	for locator, mtime := range s.mtimes {
		if mtime.Before(cutoff) {
			out = append(out, locator)
		}
	}
	sort.Strings(out)
	return out, nil
}
