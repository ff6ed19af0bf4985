package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/findme-app/backend/pkg/storage"
)

// MockStorage keeps uploaded objects in memory. The Func fields override
// single operations to inject failures.
type MockStorage struct {
	UploadFunc   func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	DownloadFunc func(context.Context, string) ([]byte, error)
	DeleteFunc   func(context.Context, string) error

	mutex   sync.Mutex
	objects map[string][]byte
}

func NewMockStorage() *MockStorage {
	return &MockStorage{objects: make(map[string][]byte)}
}

func (m *MockStorage) Upload(
	ctx context.Context, object *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, object)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.objects[object.Key] = object.Data
	return &storage.UploadResponse{
		Url: fmt.Sprintf("http://storage.local/%s", object.Key),
		Key: object.Key,
	}, nil
}

func (m *MockStorage) Download(ctx context.Context, key string) ([]byte, error) {
	if m.DownloadFunc != nil {
		return m.DownloadFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("no object at key %s", key)
	}

	return data, nil
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.objects, key)
	return nil
}

// Contains reports whether an object is stored at key.
func (m *MockStorage) Contains(key string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, ok := m.objects[key]
	return ok
}
