package store

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"simrs-rawat-inap/internal/storage"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	ls, err := storage.NewLocalStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewFileStore(ls)
}

func TestFileStore_SaveGetDelete(t *testing.T) {
	fs := newTestFileStore(t)

	upload := &FileUpload{
		FileName: "surat-rujukan.pdf",
		FileType: "application/pdf",
		Data:     base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 dummy")),
	}
	id, err := fs.Save(upload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated file id")
	}

	file, err := fs.Get(id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if file.FileName != upload.FileName || file.FileType != upload.FileType {
		t.Errorf("stored file metadata mismatch: %+v", file)
	}

	if err := fs.Delete(id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := fs.Get(id); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound after delete, got %v", err)
	}
}

func TestFileStore_Validation(t *testing.T) {
	fs := newTestFileStore(t)

	tests := []struct {
		name    string
		upload  FileUpload
		wantErr error
	}{
		{
			name: "type_not_allowed",
			upload: FileUpload{
				FileName: "virus.exe",
				FileType: "application/x-msdownload",
				Data:     base64.StdEncoding.EncodeToString([]byte("MZ")),
			},
			wantErr: ErrFileTypeNotAllowed,
		},
		{
			name: "too_large",
			upload: FileUpload{
				FileName: "besar.png",
				FileType: "image/png",
				Data:     base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", MaxFileSize+1))),
			},
			wantErr: ErrFileTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fs.Save(&tt.upload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Bad base64 is rejected before it reaches storage
	if _, err := fs.Save(&FileUpload{FileName: "x.png", FileType: "image/png", Data: "not-base64!!!"}); err == nil {
		t.Error("expected error for invalid base64 payload")
	}
}
