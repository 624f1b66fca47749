package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/conflu-cli/internal/adf"
	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/conflu-cli/internal/logger"
)

// DefaultWorkers is the fetch pool size when the caller does not set one.
const DefaultWorkers = 10

// PageStatus is the outcome of one page within a sync run.
type PageStatus string

const (
	StatusFetched PageStatus = "fetched"
	StatusSkipped PageStatus = "skipped"
	StatusFailed  PageStatus = "failed"
)

// PageResult reports the outcome for a single page. Every page maps to
// exactly one result.
type PageResult struct {
	ID      string
	Title   string
	Version int
	Status  PageStatus
	Err     error
}

// Summary aggregates the outcome of one sync invocation.
type Summary struct {
	Space   string
	Listed  int
	Fetched int
	Skipped int
	Failed  int
	Results []PageResult
}

// SyncOptions control one sync invocation.
type SyncOptions struct {
	// Force re-fetches every page regardless of cached version equality.
	Force bool

	// Workers is the fetch pool size; zero means DefaultWorkers.
	Workers int

	// Progress, when set, receives each fetched or failed page result as
	// it completes. It is called from a single goroutine.
	Progress func(PageResult)
}

// Syncer mirrors a remote space into the local page cache. Listing and
// comparison run sequentially; stale and missing pages are fetched by a
// fixed pool of workers pulling from a pre-populated queue. Concurrent
// invocations against the same cache directory must be serialised by the
// caller.
type Syncer struct {
	transport driven.Transport
	store     driven.PageStore
}

// NewSyncer creates a sync engine over a transport and a page store.
func NewSyncer(transport driven.Transport, store driven.PageStore) *Syncer {
	return &Syncer{transport: transport, store: store}
}

// Sync lists every page in the space, compares remote versions against the
// cache, fetches what is stale or missing, and returns the aggregate
// summary. A listing failure is fatal to the whole run; a fetch failure is
// recorded per page and does not abort the others.
func (s *Syncer) Sync(ctx context.Context, spaceKey string, opts SyncOptions) (*Summary, error) {
	if s.transport == nil {
		return nil, domain.ErrNotConfigured
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	space, err := s.transport.ResolveSpace(ctx, spaceKey)
	if err != nil {
		return nil, fmt.Errorf("resolve space %s: %w", spaceKey, err)
	}

	logger.Info("Listing pages in %s", space.Key)
	listings, err := s.listAll(ctx, space.ID)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	logger.Info("Found %d pages", len(listings))

	summary := &Summary{Space: space.Key, Listed: len(listings)}

	var queue []domain.PageListing
	for _, l := range listings {
		if !opts.Force && s.cachedCurrent(l) {
			summary.Skipped++
			summary.Results = append(summary.Results, PageResult{
				ID: l.ID, Title: l.Title, Version: l.Version, Status: StatusSkipped,
			})
			continue
		}
		queue = append(queue, l)
	}
	if summary.Skipped > 0 {
		logger.Info("%d pages already up to date", summary.Skipped)
	}
	if len(queue) == 0 {
		return summary, nil
	}

	workers := opts.Workers
	if workers > len(queue) {
		workers = len(queue)
	}
	logger.Info("Fetching %d pages with %d workers", len(queue), workers)

	jobs := make(chan domain.PageListing)
	results := make(chan PageResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for l := range jobs {
				results <- s.fetchOne(ctx, space.Key, l)
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, l := range queue {
			select {
			case jobs <- l:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	// The coordinator owns all aggregation; workers never touch shared
	// counters.
	for res := range results {
		if res.Err != nil {
			summary.Failed++
		} else {
			summary.Fetched++
		}
		summary.Results = append(summary.Results, res)
		if opts.Progress != nil {
			opts.Progress(res)
		}
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// listAll drains the paginated listing sequentially. Any failure aborts the
// sync: no partial listing is acted on.
func (s *Syncer) listAll(ctx context.Context, spaceID string) ([]domain.PageListing, error) {
	var all []domain.PageListing
	cursor := ""
	for {
		batch, next, err := s.transport.ListPages(ctx, spaceID, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

// cachedCurrent reports whether the cache already holds this exact version.
// A cached version differing in either direction counts as stale.
func (s *Syncer) cachedCurrent(l domain.PageListing) bool {
	meta, err := s.store.ReadMeta(l.ID)
	return err == nil && meta.Version == l.Version
}

// fetchOne downloads a page, validates the payload, and writes the cache
// pair. Nothing is written when any step fails.
func (s *Syncer) fetchOne(ctx context.Context, spaceKey string, l domain.PageListing) PageResult {
	res := PageResult{ID: l.ID, Title: l.Title, Version: l.Version}

	if err := ctx.Err(); err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}

	page, err := s.transport.FetchPage(ctx, l.ID)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("fetch: %w", err)
		return res
	}
	if err := adf.ValidateDocument(page.Body); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("validate body: %w", err)
		return res
	}
	if err := s.store.WritePage(metaFor(page, spaceKey), page.Body); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("write cache: %w", err)
		return res
	}

	res.Title = page.Title
	res.Version = page.Version
	res.Status = StatusFetched
	return res
}

// metaFor builds the cache sidecar record for a fetched page.
func metaFor(page *domain.Page, spaceKey string) *domain.PageMeta {
	return &domain.PageMeta{
		ID:        page.ID,
		SpaceID:   page.SpaceID,
		SpaceKey:  spaceKey,
		Title:     page.Title,
		Version:   page.Version,
		ParentID:  page.ParentID,
		CreatedAt: page.CreatedAt,
		UpdatedAt: page.VersionCreatedAt,
	}
}
