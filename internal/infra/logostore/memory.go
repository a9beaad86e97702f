package logostore

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"sync"

	"github.com/yanqian/unievents/internal/domain/club"
)

// MemoryStorage keeps logos in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data        []byte
	contentType string
	etag        string
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores the blob and returns metadata.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, contentType string) (club.StoredLogo, error) {
	hash := md5.Sum(data)
	etag := hex.EncodeToString(hash[:])
	copied := append([]byte(nil), data...)
	s.mu.Lock()
	s.blobs[key] = storedBlob{data: copied, contentType: contentType, etag: etag}
	s.mu.Unlock()
	return club.StoredLogo{
		Key:         key,
		Size:        int64(len(data)),
		ContentType: contentType,
		ETag:        etag,
	}, nil
}

// Get returns a reader for the stored blob.
func (s *MemoryStorage) Get(_ context.Context, key string) (club.LogoObject, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return club.LogoObject{}, false, nil
	}
	return club.LogoObject{
		Body:        io.NopCloser(bytes.NewReader(blob.data)),
		ContentType: blob.contentType,
		Size:        int64(len(blob.data)),
		ETag:        blob.etag,
	}, true, nil
}

var _ club.LogoStorage = (*MemoryStorage)(nil)
