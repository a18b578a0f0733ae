// Package storage provides durable whole-blob slots backing the persisted
// collections and the master key. Every write replaces the entire blob.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Slot is a single durable blob. Read returns fs.ErrNotExist when nothing
// has been written yet. Writes are atomic from the caller's perspective:
// either the previous blob or the new one is on disk, never a torn mix.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Delete() error
}

// FileSlot persists a blob as a single file, written via a temp file and
// rename so a crash mid-write cannot corrupt the previous contents.
type FileSlot struct {
	path string
}

// NewFileSlot creates the parent directory if needed and returns a slot
// bound to path.
func NewFileSlot(path string) (*FileSlot, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileSlot{path: path}, nil
}

// Read returns the blob contents, or fs.ErrNotExist if absent.
func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fs.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(s.path), err)
	}
	return data, nil
}

// Write replaces the blob atomically.
func (s *FileSlot) Write(data []byte) error {
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(tmp), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

// Delete removes the blob. Deleting an absent blob is a no-op.
func (s *FileSlot) Delete() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", filepath.Base(s.path), err)
	}
	return nil
}

// MemSlot is an in-memory Slot for tests and ephemeral runs.
type MemSlot struct {
	mu   sync.Mutex
	data []byte
	set  bool

	// FailWrites makes every Write return an error, for persist-failure tests.
	FailWrites bool
}

func (s *MemSlot) Read() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return nil, fs.ErrNotExist
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

func (s *MemSlot) Write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites {
		return fmt.Errorf("write failed")
	}
	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.set = true
	return nil
}

func (s *MemSlot) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.set = false
	return nil
}
