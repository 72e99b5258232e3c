package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service keeps objects in memory.
type MockS3Service struct {
	objects map[string][]byte
	types   map[string]string
	mu      sync.RWMutex
	Err     error
}

func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		objects: make(map[string][]byte),
		types:   make(map[string]string),
	}
}

func (m *MockS3Service) Upload(ctx context.Context, key string, body []byte, contentType string) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), body...)
	m.types[key] = contentType
	return nil
}

func (m *MockS3Service) PresignedURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	m.mu.RLock()
	_, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("file not found in mock S3: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.eu-west-2.amazonaws.com/%s?mock=true", key), nil
}

func (m *MockS3Service) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	delete(m.types, key)
	return nil
}

// Object returns the stored body and content type for key.
func (m *MockS3Service) Object(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	return b, m.types[key], ok
}

// Keys lists stored keys in no particular order.
func (m *MockS3Service) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	return out
}
