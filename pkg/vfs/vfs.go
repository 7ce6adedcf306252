// Package vfs stages assembled outputs in memory before they reach the host
// file system, so a batch either lands completely or not at all.
package vfs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MaxStoreBytes caps staged data at 64 full ROM images in .hack text form
// (32768 words of 17 bytes each).
const MaxStoreBytes = 64 * 32768 * 17

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrQuotaExceeded   = errors.New("store quota exceeded")
)

type Entry struct {
	Data     []byte
	Modified time.Time
}

// Store is a mutex-guarded map from host path to staged file contents.
// Paths are cleaned before use, so "a/./b.hack" and "a/b.hack" are one entry.
type Store struct {
	mu    sync.RWMutex
	files map[string]*Entry
	dirty map[string]bool
	used  int
}

func NewStore() *Store {
	return &Store{
		files: make(map[string]*Entry),
		dirty: make(map[string]bool),
	}
}

// key cleans path. Any name the host accepts is fine; only paths that
// cannot name a regular file are refused.
func key(path string) (string, error) {
	if path == "" || strings.ContainsRune(path, 0) {
		return "", ErrInvalidFilename
	}
	clean := filepath.Clean(path)
	for _, base := range []string{filepath.Base(path), filepath.Base(clean)} {
		switch base {
		case ".", "..", string(filepath.Separator):
			return "", ErrInvalidFilename
		}
	}
	return clean, nil
}

// Write stages data under path, replacing any previous contents. The data
// is copied.
func (s *Store) Write(path string, data []byte) error {
	k, err := key(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	oldSize := 0
	entry, exists := s.files[k]
	if exists {
		oldSize = len(entry.Data)
	}
	if s.used-oldSize+len(data) > MaxStoreBytes {
		return ErrQuotaExceeded
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	if !exists {
		entry = &Entry{}
		s.files[k] = entry
	}
	entry.Data = buf
	entry.Modified = time.Now()

	s.dirty[k] = true
	s.used += len(data) - oldSize
	return nil
}

// Read returns the staged contents of path.
func (s *Store) Read(path string) ([]byte, error) {
	k, err := key(path)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.files[k]
	if !ok {
		return nil, ErrFileNotFound
	}
	return entry.Data, nil
}

func (s *Store) Size(path string) (int, error) {
	data, err := s.Read(path)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// List returns the staged paths in sorted order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.files))
	for k := range s.files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) UsedBytes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}

func (s *Store) FreeSpace() int {
	return MaxStoreBytes - s.UsedBytes()
}

// Flush writes every dirty entry to its host path, creating parent
// directories as needed. Entries that fail to write stay dirty. The first
// error is returned.
func (s *Store) Flush() error {
	// Snapshot under the lock, then do I/O without it.
	s.mu.Lock()
	snapshot := make(map[string][]byte, len(s.dirty))
	for k := range s.dirty {
		data := make([]byte, len(s.files[k].Data))
		copy(data, s.files[k].Data)
		snapshot[k] = data
		delete(s.dirty, k)
	}
	s.mu.Unlock()

	var firstErr error
	fail := func(k string, err error) {
		s.mu.Lock()
		s.dirty[k] = true
		s.mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for k, data := range snapshot {
		if dir := filepath.Dir(k); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fail(k, err)
				continue
			}
		}
		if err := os.WriteFile(k, data, 0o644); err != nil {
			fail(k, err)
		}
	}

	return firstErr
}
