package storage

import (
	"context"
	"io"
)

// MockObjectStore is a configurable mock for testing storage-dependent code.
type MockObjectStore struct {
	// UploadNoteImageFunc is called when UploadNoteImage is invoked.
	// If nil, returns a fixed object name and URL.
	UploadNoteImageFunc func(ctx context.Context, userID string, fileName string, file io.Reader, size int64) (string, string, error)

	// DeleteObjectFunc is called when DeleteObject is invoked.
	// If nil, returns nil.
	DeleteObjectFunc func(ctx context.Context, objectName string) error

	// Call tracking for verification
	UploadCalls int
	DeleteCalls int
}

// UploadNoteImage implements ObjectStore.
func (m *MockObjectStore) UploadNoteImage(ctx context.Context, userID string, fileName string, file io.Reader, size int64) (string, string, error) {
	m.UploadCalls++
	if m.UploadNoteImageFunc != nil {
		return m.UploadNoteImageFunc(ctx, userID, fileName, file, size)
	}
	return "notes/" + userID + "/mock.jpg", "http://storage/notes/" + userID + "/mock.jpg", nil
}

// DeleteObject implements ObjectStore.
func (m *MockObjectStore) DeleteObject(ctx context.Context, objectName string) error {
	m.DeleteCalls++
	if m.DeleteObjectFunc != nil {
		return m.DeleteObjectFunc(ctx, objectName)
	}
	return nil
}

// Ensure MockObjectStore implements ObjectStore at compile time.
var _ ObjectStore = (*MockObjectStore)(nil)
