package client

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"
)

// MockS3Client implements ImageStore in memory for tests and for running
// without object storage
type MockS3Client struct {
	BaseURL string

	// Optional function overrides for custom test behavior
	UploadFileFunc func(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error)
	DeleteFileFunc func(ctx context.Context, key string) error

	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

// NewMockS3Client creates a new mock S3 client for testing
func NewMockS3Client() *MockS3Client {
	return &MockS3Client{
		BaseURL: "http://localhost:9000/ecity-test",
		objects: make(map[string][]byte),
	}
}

func (m *MockS3Client) GenerateFileKey(fileExt string, now time.Time) string {
	return GenerateFileKey(fileExt, now)
}

func (m *MockS3Client) UploadFile(ctx context.Context, key string, file io.Reader, size int64, contentType string) (string, error) {
	if m.UploadFileFunc != nil {
		return m.UploadFileFunc(ctx, key, file, size, contentType)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.objects[key] = data
	m.mu.Unlock()
	return m.GetFileURL(key), nil
}

func (m *MockS3Client) DeleteFile(ctx context.Context, key string) error {
	if m.DeleteFileFunc != nil {
		return m.DeleteFileFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockS3Client) GetFileURL(key string) string {
	return strings.TrimSuffix(m.BaseURL, "/") + "/" + key
}

func (m *MockS3Client) KeyFromURL(fileURL string) (string, bool) {
	prefix := strings.TrimSuffix(m.BaseURL, "/") + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(fileURL, prefix)
	return key, key != ""
}

// Object returns a stored object and whether it exists
func (m *MockS3Client) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	return data, ok
}

// Deleted returns the keys passed to DeleteFile
func (m *MockS3Client) Deleted() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deleted...)
}
