package blobstore

import (
	"context"
	"sync"
)

type memoryBlob struct {
	ContentType string
	Data        []byte
}

// MemoryStoreBasePath is where the web layer serves MemoryStore blobs.
const MemoryStoreBasePath = "/blobs"

// MemoryStore keeps blobs in process memory. URLs are built from baseURL,
// MemoryStoreBasePath when it is empty, so links resolve against the
// sharebox server itself.
type MemoryStore struct {
	mu      sync.RWMutex
	baseURL string
	blobs   map[string]memoryBlob
}

func NewMemoryStore(baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = MemoryStoreBasePath
	}
	return &MemoryStore{baseURL: baseURL, blobs: make(map[string]memoryBlob)}
}

func (s *MemoryStore) Upload(_ context.Context, key, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = memoryBlob{ContentType: contentType, Data: append([]byte(nil), data...)}
	return joinURL(s.baseURL, key), nil
}

// Delete of an absent key succeeds, like S3.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.blobs, key)
	return nil
}

// Get returns a copy of the stored bytes.
func (s *MemoryStore) Get(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[key]
	if !ok {
		return nil, "", false
	}
	return append([]byte(nil), b.Data...), b.ContentType, true
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
