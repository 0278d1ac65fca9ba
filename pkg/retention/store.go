package retention

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Store persists the retention snapshot.
type Store interface {
	// Load returns the saved snapshot, or nil, nil if none was saved.
	Load() (*Snapshot, error)

	// Save replaces the saved snapshot.
	Save(s *Snapshot) error

	// Invalidate clears the recovered flag of the saved snapshot.
	Invalidate() error

	// Clear removes the saved snapshot.
	Clear() error
}

// FileStore keeps the snapshot in a single CBOR file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes s to disk, stamping its version and save time.
// The file is replaced atomically.
func (f *FileStore) Save(s *Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(s)
}

// Load reads the snapshot from disk.
// Returns nil, nil if the file doesn't exist.
func (f *FileStore) Load() (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

// Invalidate rewrites the saved snapshot with the recovered flag cleared.
func (f *FileStore) Invalidate() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.load()
	if err != nil {
		return err
	}
	if s == nil {
		return ErrNoSnapshot
	}
	if !s.Recovered {
		return nil
	}
	s.Recovered = false
	return f.save(s)
}

// Clear removes the snapshot file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (f *FileStore) save(s *Snapshot) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	s.Version = FormatVersion
	if s.SavedAt.IsZero() {
		s.SavedAt = time.Now()
	}

	data, err := Encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStore) load() (*Snapshot, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", f.path, err)
	}
	return s, nil
}

// MemoryStore keeps the snapshot in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save encodes and keeps s.
func (m *MemoryStore) Save(s *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.Version = FormatVersion
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// Load decodes the kept snapshot.
func (m *MemoryStore) Load() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, nil
	}
	return Decode(m.data)
}

// Invalidate clears the recovered flag of the kept snapshot.
func (m *MemoryStore) Invalidate() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return ErrNoSnapshot
	}
	s, err := Decode(m.data)
	if err != nil {
		return err
	}
	s.Recovered = false
	data, err := Encode(s)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// Clear drops the kept snapshot.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
