package confluence

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/custodia-labs/conflu-cli/internal/core/domain"
)

// spaceResponse mirrors the v2 space representation.
type spaceResponse struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

func (r spaceResponse) toDomain() *domain.Space {
	return &domain.Space{ID: r.ID, Key: r.Key, Name: r.Name}
}

// ResolveSpace looks up a space by key. Results are cached for the life of
// the client.
func (c *Client) ResolveSpace(ctx context.Context, key string) (*domain.Space, error) {
	c.mu.Lock()
	cached, ok := c.spaceByKey[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var resp struct {
		Results []spaceResponse `json:"results"`
	}
	query := url.Values{"keys": {key}}
	if err := c.do(ctx, http.MethodGet, apiV2+"/spaces", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("space %s: %w", key, domain.ErrNotFound)
	}

	space := resp.Results[0].toDomain()
	c.cacheSpace(space)
	return space, nil
}

// ResolveSpaceByID looks up a space by identifier, also cached.
func (c *Client) ResolveSpaceByID(ctx context.Context, id string) (*domain.Space, error) {
	c.mu.Lock()
	cached, ok := c.spaceByID[id]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	var resp spaceResponse
	if err := c.do(ctx, http.MethodGet, apiV2+"/spaces/"+id, nil, nil, &resp); err != nil {
		return nil, err
	}

	space := resp.toDomain()
	c.cacheSpace(space)
	return space, nil
}

func (c *Client) cacheSpace(space *domain.Space) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if space.Key != "" {
		c.spaceByKey[space.Key] = space
	}
	c.spaceByID[space.ID] = space
}
