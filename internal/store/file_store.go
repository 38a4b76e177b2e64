package store

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"simrs-rawat-inap/internal/storage"

	"github.com/google/uuid"
)

const (
	fileKeyPrefix = "rawat_inap_file_"
	// MaxFileSize caps referral attachments at 5 MB of decoded content
	MaxFileSize = 5 << 20
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the 5MB limit")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileNotFound       = errors.New("file not found")
)

var allowedFileTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
}

// FileUpload is the inbound attachment payload, content base64-encoded
type FileUpload struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Data     string `json:"data"`
}

// StoredFile is one persisted referral attachment. Patient records hold
// only the ID as a foreign reference.
type StoredFile struct {
	ID         string    `json:"id"`
	FileName   string    `json:"fileName"`
	FileType   string    `json:"fileType"`
	Data       string    `json:"data"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// FileStore persists referral attachments as independent storage entries
// keyed by a generated file id.
type FileStore struct {
	storage *storage.LocalStore
}

func NewFileStore(st *storage.LocalStore) *FileStore {
	return &FileStore{storage: st}
}

// Save validates and persists an upload, returning the generated file id.
// A save failure aborts the admission that carried the file.
func (f *FileStore) Save(upload *FileUpload) (string, error) {
	if !allowedFileTypes[upload.FileType] {
		return "", fmt.Errorf("%s: %w", upload.FileType, ErrFileTypeNotAllowed)
	}
	decoded, err := base64.StdEncoding.DecodeString(upload.Data)
	if err != nil {
		return "", fmt.Errorf("invalid file encoding: %w", err)
	}
	if len(decoded) > MaxFileSize {
		return "", fmt.Errorf("file is %d bytes: %w", len(decoded), ErrFileTooLarge)
	}

	file := &StoredFile{
		ID:         uuid.NewString(),
		FileName:   upload.FileName,
		FileType:   upload.FileType,
		Data:       upload.Data,
		UploadedAt: time.Now().UTC(),
	}
	if err := f.storage.Set(fileKeyPrefix+file.ID, file); err != nil {
		return "", fmt.Errorf("failed to save referral file: %w", err)
	}
	return file.ID, nil
}

// Get retrieves a stored attachment by id.
func (f *FileStore) Get(id string) (*StoredFile, error) {
	var file StoredFile
	found, err := f.storage.Get(fileKeyPrefix+id, &file)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrFileNotFound
	}
	return &file, nil
}

// Delete releases a stored attachment. Deleting a missing id is not an error.
func (f *FileStore) Delete(id string) error {
	if id == "" {
		return nil
	}
	return f.storage.Remove(fileKeyPrefix + id)
}
