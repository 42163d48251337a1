package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/OtaviOuu/shopee-monitor/internal/models"
)

// fileDocument is the on-disk shape. "items" keeps the historical
// single-field layout holding confirmed keys; "pending" carries full
// records awaiting a successful notify.
type fileDocument struct {
	Items   []string      `json:"items"`
	Pending []models.Item `json:"pending,omitempty"`
}

// FileStore is the JSON-file seen-set. Every mutation rewrites the whole
// document through a temp file and rename, so a crash mid-write leaves
// the previous version intact.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile validates the document at path. A missing or unparseable file
// is fatal.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() (*fileDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &doc, nil
}

func (s *FileStore) save(doc *fileDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".seen-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Seen(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return false, err
	}
	if slices.Contains(doc.Items, key) {
		return true, nil
	}
	return slices.ContainsFunc(doc.Pending, func(it models.Item) bool {
		return it.Key() == key
	}), nil
}

func (s *FileStore) MarkPending(_ context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	key := item.Key()
	if slices.Contains(doc.Items, key) {
		return nil
	}
	if slices.ContainsFunc(doc.Pending, func(it models.Item) bool { return it.Key() == key }) {
		return nil
	}
	doc.Pending = append(doc.Pending, item)
	return s.save(doc)
}

func (s *FileStore) Confirm(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if !slices.Contains(doc.Items, key) {
		doc.Items = append(doc.Items, key)
	}
	doc.Pending = slices.DeleteFunc(doc.Pending, func(it models.Item) bool {
		return it.Key() == key
	})
	return s.save(doc)
}

func (s *FileStore) Pending(_ context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return slices.Clone(doc.Pending), nil
}

func (s *FileStore) Close() error { return nil }
