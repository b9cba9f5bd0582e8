package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type storedObject struct {
	Data        []byte
	ContentType string
}

// MemoryStore is used when no bucket is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]storedObject
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		objects: make(map[string]storedObject),
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read object: %w", err)
	}
	s.mu.Lock()
	s.objects[key] = storedObject{Data: data, ContentType: contentType}
	s.mu.Unlock()
	return s.baseURL + "/" + key, nil
}

func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj.Data, obj.ContentType, ok
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
