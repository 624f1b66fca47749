package confluence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// listLimit is the page size requested from the listing endpoint.
const listLimit = 250

// updateMessage is recorded against every version this client creates.
const updateMessage = "Updated via conflu CLI"

// pageResponse mirrors the v2 page representation.
type pageResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	SpaceID  string `json:"spaceId"`
	ParentID string `json:"parentId"`
	// CreatedAt is absent from listing entries, present on single fetches.
	CreatedAt string `json:"createdAt"`
	Version   struct {
		Number    int    `json:"number"`
		CreatedAt string `json:"createdAt"`
	} `json:"version"`
	Body struct {
		AtlasDocFormat struct {
			Value string `json:"value"`
		} `json:"atlas_doc_format"`
	} `json:"body"`
}

// FetchPage retrieves a single page with its ADF body. The body arrives as
// a JSON-encoded string and is carried onward as raw JSON bytes.
func (c *Client) FetchPage(ctx context.Context, id string) (*domain.Page, error) {
	var resp pageResponse
	query := url.Values{"body-format": {"atlas_doc_format"}}
	if err := c.do(ctx, http.MethodGet, apiV2+"/pages/"+id, query, nil, &resp); err != nil {
		return nil, err
	}

	return &domain.Page{
		ID:               resp.ID,
		SpaceID:          resp.SpaceID,
		Title:            resp.Title,
		ParentID:         resp.ParentID,
		Version:          resp.Version.Number,
		CreatedAt:        resp.CreatedAt,
		VersionCreatedAt: resp.Version.CreatedAt,
		Body:             []byte(resp.Body.AtlasDocFormat.Value),
	}, nil
}

// listResponse mirrors one batch of the cursor-paginated listing.
type listResponse struct {
	Results []pageResponse `json:"results"`
	Links   struct {
		Next string `json:"next"`
	} `json:"_links"`
}

// ListPages returns one batch of the space's page listing. The cursor is
// the relative next link from the previous batch; pass empty for the first
// call. The returned cursor is empty once the listing is exhausted.
func (c *Client) ListPages(ctx context.Context, spaceID, cursor string) ([]domain.PageListing, string, error) {
	path := cursor
	var query url.Values
	if path == "" {
		path = apiV2 + "/spaces/" + spaceID + "/pages"
		query = url.Values{
			"limit": {fmt.Sprint(listLimit)},
			"sort":  {"id"},
		}
	}

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, "", err
	}

	listings := make([]domain.PageListing, 0, len(resp.Results))
	for _, r := range resp.Results {
		listings = append(listings, domain.PageListing{
			ID:       r.ID,
			Title:    r.Title,
			Version:  r.Version.Number,
			ParentID: r.ParentID,
		})
	}

	next := resp.Links.Next
	if next != "" && !strings.HasPrefix(next, "/") {
		// The service returns a site-relative path; tolerate a full URL.
		if u, err := url.Parse(next); err == nil {
			next = u.Path
			if u.RawQuery != "" {
				next += "?" + u.RawQuery
			}
		}
	}
	return listings, next, nil
}

// updateRequest mirrors the v2 page update payload. The body travels as a
// JSON-encoded string, the same shape FetchPage receives it in.
type updateRequest struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Title   string `json:"title"`
	Body    struct {
		Representation string `json:"representation"`
		Value          string `json:"value"`
	} `json:"body"`
	Version struct {
		Number  int    `json:"number"`
		Message string `json:"message"`
	} `json:"version"`
}

// UpdatePage submits a new body at the given version number and returns
// the version the server recorded. A stale version number surfaces as an
// APIError matching domain.ErrConflict.
func (c *Client) UpdatePage(ctx context.Context, id, title string, body []byte, version int) (int, error) {
	req := updateRequest{ID: id, Status: "current", Title: title}
	req.Body.Representation = "atlas_doc_format"
	req.Body.Value = string(body)
	req.Version.Number = version
	req.Version.Message = updateMessage

	var resp pageResponse
	if err := c.do(ctx, http.MethodPut, apiV2+"/pages/"+id, nil, req, &resp); err != nil {
		return 0, err
	}
	return resp.Version.Number, nil
}

// DeletePage removes a page.
func (c *Client) DeletePage(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, apiV2+"/pages/"+id, nil, nil, nil)
}
