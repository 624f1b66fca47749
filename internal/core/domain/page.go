package domain

// Page is a Confluence page as returned by the remote service: identity,
// version, and the raw ADF body. The body is kept as the exact bytes the
// service produced; the adf package interprets them.
type Page struct {
	// ID is the numeric page identifier (kept as a string, as the API does).
	ID string

	// SpaceID is the identifier of the space containing the page.
	SpaceID string

	// Title is the page title.
	Title string

	// ParentID is the parent page identifier, empty for top-level pages.
	ParentID string

	// Version is the server-assigned monotonic version counter.
	Version int

	// CreatedAt is the page creation timestamp (RFC 3339, verbatim).
	CreatedAt string

	// VersionCreatedAt is the timestamp of the current version.
	VersionCreatedAt string

	// Body is the ADF document as raw JSON.
	Body []byte
}

// PageMeta is the metadata sidecar persisted next to a cached page body.
type PageMeta struct {
	ID        string `json:"id"`
	SpaceID   string `json:"spaceId"`
	SpaceKey  string `json:"spaceKey"`
	Title     string `json:"title"`
	Version   int    `json:"version"`
	ParentID  string `json:"parentId"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt"`
}

// PageListing is one entry from the paginated space listing. It carries the
// remote version so staleness can be decided without a body fetch.
type PageListing struct {
	ID       string
	Title    string
	Version  int
	ParentID string
}

// IndexEntry is one row of the flat page index. The index is a projection of
// the cache metadata, never a source of truth.
type IndexEntry struct {
	ID    string `json:"id"`
	Space string `json:"space"`
	Title string `json:"title"`
}

// Space identifies a Confluence space.
type Space struct {
	ID   string
	Key  string
	Name string
}
