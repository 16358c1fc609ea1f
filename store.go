package papertrade

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store loads and saves a portfolio.
//
// Load returns an error matching fs.ErrNotExist when there is nothing to load yet.
type Store interface {
	Load() (*Portfolio, error)
	Save(*Portfolio) error
}

// FileStore persists a portfolio in a single JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store for the file at 'path'.
func NewFileStore(path string) *FileStore { return &FileStore{Path: path} }

// Load reads the portfolio file.
func (s *FileStore) Load() (*Portfolio, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.Path, Err: err}
	}
	defer f.Close()

	p, err := DecodePortfolio(f)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.Path, Err: err}
	}
	return p, nil
}

// Save writes the portfolio file. The content is written to a temporary file
// in the same folder first, and renamed over the previous one.
func (s *FileStore) Save(p *Portfolio) error {
	if err := s.save(p); err != nil {
		return &PersistenceError{Op: "save", Path: s.Path, Err: err}
	}
	return nil
}

func (s *FileStore) save(p *Portfolio) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := EncodePortfolio(tmp, p); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}

// MemoryStore keeps the encoded portfolio in memory. Its zero value is an empty store.
//
// Err, when set, is returned by every Save.
type MemoryStore struct {
	data  []byte
	Saves int
	Err   error
}

func (s *MemoryStore) Load() (*Portfolio, error) {
	if s.data == nil {
		return nil, &PersistenceError{Op: "load", Err: fs.ErrNotExist}
	}
	p, err := DecodePortfolio(bytes.NewReader(s.data))
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return p, nil
}

func (s *MemoryStore) Save(p *Portfolio) error {
	if s.Err != nil {
		return &PersistenceError{Op: "save", Err: s.Err}
	}
	var b bytes.Buffer
	if err := EncodePortfolio(&b, p); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	s.data = b.Bytes()
	s.Saves++
	return nil
}

// Bytes returns the last saved content, nil if nothing was saved.
func (s *MemoryStore) Bytes() []byte { return s.data }
