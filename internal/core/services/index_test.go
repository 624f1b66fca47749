package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/custodia-labs/conflu-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

func newTestIndexService(t *testing.T) (*IndexService, *storagefile.PageStore) {
	t.Helper()
	dir := t.TempDir()
	store := storagefile.NewPageStore(dir)
	index := storagefile.NewIndexStore(filepath.Join(dir, "index.json"))
	return NewIndexService(store, index), store
}

func cachePage(t *testing.T, store *storagefile.PageStore, space, id, title string) {
	t.Helper()
	meta := &domain.PageMeta{ID: id, SpaceKey: space, SpaceID: "s-" + space, Title: title, Version: 1}
	require.NoError(t, store.WritePage(meta, validBody))
}

func TestRebuildSortsBySpaceThenID(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "OPS", "9", "Oncall")
	cachePage(t, store, "ENG", "20", "Design")
	cachePage(t, store, "ENG", "11", "Architecture")

	entries, err := svc.Rebuild(nil)
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, domain.IndexEntry{ID: "11", Space: "ENG", Title: "Architecture"}, entries[0])
	assert.Equal(t, domain.IndexEntry{ID: "20", Space: "ENG", Title: "Design"}, entries[1])
	assert.Equal(t, domain.IndexEntry{ID: "9", Space: "OPS", Title: "Oncall"}, entries[2])
}

func TestRebuildIsIdempotent(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "ENG", "1", "One")
	cachePage(t, store, "ENG", "2", "Two")

	first, err := svc.Rebuild(nil)
	require.NoError(t, err)
	second, err := svc.Rebuild(nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRebuildScopedToSpaces(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "ENG", "1", "One")
	cachePage(t, store, "OPS", "2", "Two")

	entries, err := svc.Rebuild([]string{"OPS"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "OPS", entries[0].Space)
}

func TestSearchCaseInsensitive(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "ENG", "100", "Deployment Runbook")
	cachePage(t, store, "ENG", "200", "Design Notes")
	_, err := svc.Rebuild(nil)
	require.NoError(t, err)

	matches, err := svc.Search("RUNBOOK")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "100", matches[0].ID)
}

func TestSearchMatchesID(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "ENG", "31415", "Pi Page")
	_, err := svc.Rebuild(nil)
	require.NoError(t, err)

	matches, err := svc.Search("3141")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Pi Page", matches[0].Title)
}

func TestSearchNoMatches(t *testing.T) {
	svc, store := newTestIndexService(t)
	cachePage(t, store, "ENG", "1", "One")
	_, err := svc.Rebuild(nil)
	require.NoError(t, err)

	matches, err := svc.Search("zebra")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearchWithoutIndex(t *testing.T) {
	svc, _ := newTestIndexService(t)

	_, err := svc.Search("anything")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
