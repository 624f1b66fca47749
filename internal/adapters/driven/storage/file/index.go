package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
)

var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore persists the page index as a single JSON array, replaced
// wholesale on every rebuild.
type IndexStore struct {
	path string
}

// NewIndexStore creates a store backed by the given file path.
func NewIndexStore(path string) *IndexStore {
	return &IndexStore{path: path}
}

// Path returns the index file location.
func (s *IndexStore) Path() string { return s.path }

// Write replaces the index atomically.
func (s *IndexStore) Write(entries []domain.IndexEntry) error {
	if entries == nil {
		entries = []domain.IndexEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp, err := stage(s.path, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Read loads the index. A missing file reports domain.ErrNotFound.
func (s *IndexStore) Read() ([]domain.IndexEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("index %s: %w", s.path, domain.ErrNotFound)
		}
		return nil, err
	}
	var entries []domain.IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}
	return entries, nil
}
