package driven

import (
	"context"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// Transport is the remote Confluence service boundary. Implementations fail
// with a transport error or, on write, an explicit version conflict; the
// core treats any non-conflict failure as retryable by the caller and never
// retries internally.
type Transport interface {
	// FetchPage retrieves a single page with its ADF body and metadata.
	FetchPage(ctx context.Context, id string) (*domain.Page, error)

	// ListPages returns one batch of the paginated page listing for a
	// space, plus the cursor for the next batch (empty when exhausted).
	// Listing entries carry the remote version so staleness can be decided
	// without fetching bodies.
	ListPages(ctx context.Context, spaceID, cursor string) ([]domain.PageListing, string, error)

	// UpdatePage submits a new body and title at the given version number
	// and returns the version the server recorded.
	UpdatePage(ctx context.Context, id, title string, body []byte, version int) (int, error)

	// DeletePage removes a page from the remote service.
	DeletePage(ctx context.Context, id string) error

	// ResolveSpace looks up a space by key.
	ResolveSpace(ctx context.Context, key string) (*domain.Space, error)

	// ResolveSpaceByID looks up a space by identifier.
	ResolveSpaceByID(ctx context.Context, id string) (*domain.Space, error)
}
