package media

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

const memoryBaseURL = "memory://blobs"

// MemoryStore is a process-local BlobStore for development and tests.
type MemoryStore struct {
	mu        sync.Mutex
	blobs     map[string]memoryBlob
	deleteErr map[string]error
	deletes   []string
	now       func() time.Time
}

type memoryBlob struct {
	data        []byte
	contentType string
	created     time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs:     make(map[string]memoryBlob),
		deleteErr: make(map[string]error),
		now:       time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, name, contentType string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[name] = memoryBlob{data: append([]byte(nil), data...), contentType: contentType, created: s.now()}
	return memoryBaseURL + "/" + escapeKey(name), nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, name)
	if err, ok := s.deleteErr[name]; ok {
		return err
	}
	if _, ok := s.blobs[name]; !ok {
		return fmt.Errorf("%w: %s", ErrBlobNotFound, name)
	}
	delete(s.blobs, name)
	return nil
}

func (s *MemoryStore) NameFromURL(rawURL string) (string, error) {
	return nameUnderBase(memoryBaseURL, rawURL)
}

func (s *MemoryStore) List(_ context.Context, prefix string) ([]BlobInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []BlobInfo
	for name, b := range s.blobs {
		if strings.HasPrefix(name, prefix) {
			out = append(out, BlobInfo{Name: name, Created: b.created})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// FailDelete makes every later Delete of name return err.
func (s *MemoryStore) FailDelete(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr[name] = err
}

// Has reports whether name is currently stored.
func (s *MemoryStore) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.blobs[name]
	return ok
}

// Deletes returns every name Delete was called with, in call order.
func (s *MemoryStore) Deletes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.deletes...)
}

// SetClock replaces the creation clock.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
