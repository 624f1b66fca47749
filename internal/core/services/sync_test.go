package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagefile "github.com/custodia-labs/conflu-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

var validBody = []byte(`{"type":"doc","version":1,"content":[]}`)

type updateCall struct {
	ID      string
	Title   string
	Version int
}

// fakeTransport is an in-memory Transport with scriptable failures.
type fakeTransport struct {
	mu sync.Mutex

	space   *domain.Space
	batches [][]domain.PageListing
	listErr error

	pages      map[string]*domain.Page
	fetchErr   map[string]error
	fetchCalls map[string]int

	updates []updateCall
	deleted []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		space:      &domain.Space{ID: "s1", Key: "ENG", Name: "Engineering"},
		pages:      make(map[string]*domain.Page),
		fetchErr:   make(map[string]error),
		fetchCalls: make(map[string]int),
	}
}

// addPage registers a remote page and appends it to the listing.
func (f *fakeTransport) addPage(id, title string, version int) {
	f.pages[id] = &domain.Page{
		ID: id, SpaceID: f.space.ID, Title: title, Version: version, Body: validBody,
	}
	if len(f.batches) == 0 {
		f.batches = [][]domain.PageListing{nil}
	}
	f.batches[0] = append(f.batches[0], domain.PageListing{ID: id, Title: title, Version: version})
}

func (f *fakeTransport) setVersion(id string, version int) {
	f.pages[id].Version = version
	for bi := range f.batches {
		for li := range f.batches[bi] {
			if f.batches[bi][li].ID == id {
				f.batches[bi][li].Version = version
			}
		}
	}
}

func (f *fakeTransport) FetchPage(_ context.Context, id string) (*domain.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls[id]++
	if err := f.fetchErr[id]; err != nil {
		return nil, err
	}
	page, ok := f.pages[id]
	if !ok {
		return nil, fmt.Errorf("page %s: %w", id, domain.ErrNotFound)
	}
	copied := *page
	return &copied, nil
}

func (f *fakeTransport) ListPages(_ context.Context, _, cursor string) ([]domain.PageListing, string, error) {
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	i := 0
	if cursor != "" {
		i, _ = strconv.Atoi(cursor)
	}
	if i >= len(f.batches) {
		return nil, "", nil
	}
	next := ""
	if i+1 < len(f.batches) {
		next = strconv.Itoa(i + 1)
	}
	return f.batches[i], next, nil
}

func (f *fakeTransport) UpdatePage(_ context.Context, id, title string, _ []byte, version int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{ID: id, Title: title, Version: version})
	f.pages[id].Version = version
	return version, nil
}

func (f *fakeTransport) DeletePage(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	delete(f.pages, id)
	return nil
}

func (f *fakeTransport) ResolveSpace(_ context.Context, key string) (*domain.Space, error) {
	if key != f.space.Key {
		return nil, fmt.Errorf("space %s: %w", key, domain.ErrNotFound)
	}
	return f.space, nil
}

func (f *fakeTransport) ResolveSpaceByID(_ context.Context, id string) (*domain.Space, error) {
	if id != f.space.ID {
		return nil, fmt.Errorf("space %s: %w", id, domain.ErrNotFound)
	}
	return f.space, nil
}

func newTestStore(t *testing.T) *storagefile.PageStore {
	t.Helper()
	return storagefile.NewPageStore(t.TempDir())
}

func TestSyncFirstRunFetchesEverything(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.addPage("2", "Beta", 2)
	transport.addPage("3", "Gamma", 3)
	store := newTestStore(t)

	summary, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, "ENG", summary.Space)
	assert.Equal(t, 3, summary.Listed)
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)
	assert.Len(t, summary.Results, 3)

	meta, err := store.ReadMeta("2")
	require.NoError(t, err)
	assert.Equal(t, "Beta", meta.Title)
	assert.Equal(t, "ENG", meta.SpaceKey)
	assert.Equal(t, 2, meta.Version)
}

func TestSyncSecondRunSkipsCurrentPages(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.addPage("2", "Beta", 2)
	store := newTestStore(t)
	syncer := NewSyncer(transport, store)

	_, err := syncer.Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	summary, err := syncer.Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Fetched)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, transport.fetchCalls["1"])
	assert.Equal(t, 1, transport.fetchCalls["2"])
}

func TestSyncRefetchesOnVersionMismatch(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 3)
	transport.addPage("2", "Beta", 3)
	store := newTestStore(t)
	syncer := NewSyncer(transport, store)

	_, err := syncer.Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	transport.setVersion("1", 5)
	summary, err := syncer.Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 1, summary.Skipped)

	meta, err := store.ReadMeta("1")
	require.NoError(t, err)
	assert.Equal(t, 5, meta.Version)
}

func TestSyncForceRefetchesEverything(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	store := newTestStore(t)
	syncer := NewSyncer(transport, store)

	_, err := syncer.Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	summary, err := syncer.Sync(context.Background(), "ENG", SyncOptions{Force: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 2, transport.fetchCalls["1"])
}

func TestSyncListingFailureIsFatal(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.listErr = errors.New("listing exploded")
	store := newTestStore(t)

	_, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", SyncOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing exploded")

	_, err = store.ReadMeta("1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncPageFailureIsIsolated(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.addPage("2", "Beta", 1)
	transport.addPage("3", "Gamma", 1)
	transport.fetchErr["2"] = errors.New("fetch exploded")
	store := newTestStore(t)

	summary, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, 1, summary.Failed)

	_, err = store.ReadMeta("2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.ReadMeta("3")
	assert.NoError(t, err)
}

func TestSyncInvalidBodyNotWritten(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.pages["1"].Body = []byte(`{"type":"paragraph"}`)
	store := newTestStore(t)

	summary, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Results, 1)
	assert.ErrorIs(t, summary.Results[0].Err, domain.ErrMalformedTree)

	_, err = store.ReadMeta("1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncDrainsAllListingBatches(t *testing.T) {
	transport := newFakeTransport()
	for i := 1; i <= 5; i++ {
		transport.addPage(strconv.Itoa(i), "Page", 1)
	}
	// Split the listing over three cursor-linked batches.
	all := transport.batches[0]
	transport.batches = [][]domain.PageListing{all[:2], all[2:4], all[4:]}
	store := newTestStore(t)

	summary, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", SyncOptions{Workers: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Listed)
	assert.Equal(t, 5, summary.Fetched)
}

func TestSyncProgressReportsFetchesAndFailures(t *testing.T) {
	transport := newFakeTransport()
	transport.addPage("1", "Alpha", 1)
	transport.addPage("2", "Beta", 1)
	transport.fetchErr["2"] = errors.New("nope")
	store := newTestStore(t)

	var seen []PageResult
	opts := SyncOptions{Progress: func(res PageResult) { seen = append(seen, res) }}
	_, err := NewSyncer(transport, store).Sync(context.Background(), "ENG", opts)
	require.NoError(t, err)

	// Skipped pages are summarised, not streamed; here everything streams.
	assert.Len(t, seen, 2)
}

func TestSyncUnknownSpace(t *testing.T) {
	transport := newFakeTransport()
	store := newTestStore(t)

	_, err := NewSyncer(transport, store).Sync(context.Background(), "NOPE", SyncOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSyncNotConfigured(t *testing.T) {
	_, err := NewSyncer(nil, newTestStore(t)).Sync(context.Background(), "ENG", SyncOptions{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
