package driven

import "github.com/custodia-labs/conflu-cli/internal/core/domain"

// PageStore is the on-disk mirror of page bodies and metadata sidecars.
// A page occupies a body file and a meta file; a cache entry with either
// half missing is treated as absent, never as partially valid.
type PageStore interface {
	// ReadMeta returns the metadata sidecar for a cached page, searching
	// all space directories. domain.ErrNotFound when the entry is absent
	// or incomplete.
	ReadMeta(id string) (*domain.PageMeta, error)

	// ReadBody returns the cached ADF body for a page.
	ReadBody(id string) ([]byte, error)

	// WritePage persists body and metadata as a pair; neither file becomes
	// visible unless both writes succeed.
	WritePage(meta *domain.PageMeta, body []byte) error

	// WriteMeta rewrites only the metadata sidecar of an existing entry.
	WriteMeta(meta *domain.PageMeta) error

	// Delete removes a cached page pair. Deleting an absent entry is not
	// an error.
	Delete(id string) error

	// ListMetas returns all complete cache entries under one space key,
	// ordered by page id.
	ListMetas(spaceKey string) ([]domain.PageMeta, error)

	// Spaces returns the space keys present in the cache directory.
	Spaces() ([]string, error)
}

// IndexStore persists the flat page index derived from cache metadata.
type IndexStore interface {
	// Write replaces the index wholesale.
	Write(entries []domain.IndexEntry) error

	// Read returns the index rows in file order. domain.ErrNotFound when
	// no index has been built.
	Read() ([]domain.IndexEntry, error)
}
