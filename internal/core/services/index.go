package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/conflu-cli/internal/logger"
)

// IndexService maintains the flat page index: a projection of the cache
// metadata, rebuilt wholesale and queried without touching the network.
type IndexService struct {
	store driven.PageStore
	index driven.IndexStore
}

// NewIndexService creates an index service over the page cache and the
// index store.
func NewIndexService(store driven.PageStore, index driven.IndexStore) *IndexService {
	return &IndexService{store: store, index: index}
}

// Rebuild scans the cache metadata for the given space keys (all cached
// spaces when none are given) and replaces the index file wholesale. The
// result is sorted by space then id, so a rebuild is idempotent and
// order-independent.
func (s *IndexService) Rebuild(spaces []string) ([]domain.IndexEntry, error) {
	if len(spaces) == 0 {
		cached, err := s.store.Spaces()
		if err != nil {
			return nil, fmt.Errorf("list cached spaces: %w", err)
		}
		spaces = cached
	}

	var entries []domain.IndexEntry
	for _, space := range spaces {
		metas, err := s.store.ListMetas(space)
		if err != nil {
			return nil, fmt.Errorf("scan space %s: %w", space, err)
		}
		logger.Info("Indexing %s: %d pages", space, len(metas))
		for _, meta := range metas {
			entries = append(entries, domain.IndexEntry{
				ID:    meta.ID,
				Space: space,
				Title: meta.Title,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Space != entries[j].Space {
			return entries[i].Space < entries[j].Space
		}
		return entries[i].ID < entries[j].ID
	})

	if err := s.index.Write(entries); err != nil {
		return nil, fmt.Errorf("write index: %w", err)
	}
	return entries, nil
}

// Search returns index rows whose title or id contains the query,
// case-insensitively, in index order.
func (s *IndexService) Search(query string) ([]domain.IndexEntry, error) {
	entries, err := s.index.Read()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []domain.IndexEntry
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.ID), q) {
			matches = append(matches, e)
		}
	}
	return matches, nil
}
