package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
	"github.com/custodia-labs/conflu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/conflu-cli/internal/logger"
)

// PageService implements the per-page workflows: download, upload with
// optimistic concurrency, diff, and delete.
type PageService struct {
	transport driven.Transport
	store     driven.PageStore
}

// NewPageService creates a page service over a transport and a page store.
func NewPageService(transport driven.Transport, store driven.PageStore) *PageService {
	return &PageService{transport: transport, store: store}
}

// Get downloads one page and writes its body and metadata to the cache,
// returning the sidecar record.
func (s *PageService) Get(ctx context.Context, id string) (*domain.PageMeta, error) {
	if s.transport == nil {
		return nil, domain.ErrNotConfigured
	}

	page, err := s.transport.FetchPage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetch page %s: %w", id, err)
	}

	spaceKey := page.SpaceID
	if space, err := s.transport.ResolveSpaceByID(ctx, page.SpaceID); err == nil {
		spaceKey = space.Key
	} else {
		logger.Warn("Space lookup failed for %s: %v", page.SpaceID, err)
	}

	meta := metaFor(page, spaceKey)
	if err := s.store.WritePage(meta, page.Body); err != nil {
		return nil, fmt.Errorf("write cache: %w", err)
	}
	return meta, nil
}

// Put uploads the locally cached body. It fails with domain.ErrConflict
// when the remote version has advanced past the locally recorded one,
// unless force is set. On success the local metadata is updated to the new
// version and the new version number is returned.
func (s *PageService) Put(ctx context.Context, id string, force bool) (int, error) {
	if s.transport == nil {
		return 0, domain.ErrNotConfigured
	}

	meta, err := s.store.ReadMeta(id)
	if err != nil {
		return 0, fmt.Errorf("local metadata for page %s: %w", id, err)
	}
	body, err := s.store.ReadBody(id)
	if err != nil {
		return 0, fmt.Errorf("local body for page %s: %w", id, err)
	}

	remote, err := s.transport.FetchPage(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("fetch remote version: %w", err)
	}
	if !force && remote.Version != meta.Version {
		return 0, fmt.Errorf("%w: local v%d, remote v%d", domain.ErrConflict, meta.Version, remote.Version)
	}

	newVersion, err := s.transport.UpdatePage(ctx, id, meta.Title, body, remote.Version+1)
	if err != nil {
		return 0, fmt.Errorf("update page %s: %w", id, err)
	}

	meta.Version = newVersion
	if err := s.store.WriteMeta(meta); err != nil {
		return newVersion, fmt.Errorf("update local metadata: %w", err)
	}
	return newVersion, nil
}

// Diff returns a unified diff between the cached body and the current
// remote body, both canonicalised, or an empty string when they match.
func (s *PageService) Diff(ctx context.Context, id string) (string, error) {
	if s.transport == nil {
		return "", domain.ErrNotConfigured
	}

	local, err := s.store.ReadBody(id)
	if err != nil {
		return "", fmt.Errorf("local body for page %s: %w", id, err)
	}
	remote, err := s.transport.FetchPage(ctx, id)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", id, err)
	}

	localCanon, err := canonicalJSON(local)
	if err != nil {
		return "", fmt.Errorf("local body: %w", err)
	}
	remoteCanon, err := canonicalJSON(remote.Body)
	if err != nil {
		return "", fmt.Errorf("remote body: %w", err)
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(localCanon),
		B:        difflib.SplitLines(remoteCanon),
		FromFile: "local/" + id + ".json",
		ToFile:   "remote/" + id,
		Context:  3,
	})
}

// Delete removes the page remotely and drops the local cache entry.
func (s *PageService) Delete(ctx context.Context, id string) error {
	if s.transport == nil {
		return domain.ErrNotConfigured
	}
	if err := s.transport.DeletePage(ctx, id); err != nil {
		return fmt.Errorf("delete page %s: %w", id, err)
	}
	if err := s.store.Delete(id); err != nil {
		return fmt.Errorf("drop cache entry: %w", err)
	}
	return nil
}

// canonicalJSON re-encodes raw JSON with sorted keys and stable
// indentation so diffs compare structure, not formatting.
func canonicalJSON(raw []byte) (string, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out) + "\n", nil
}
