package petcare

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// SearchOwners looks up owners whose contact record matches the given email.
func (c *Client) SearchOwners(ctx context.Context, email string, limit int) ([]Owner, error) {
	if limit <= 0 {
		limit = 1
	}
	query := url.Values{}
	query.Set("search", email)
	query.Set("limit", strconv.Itoa(limit))

	var owners []Owner
	if err := c.do(ctx, "search_owners", http.MethodGet, "/owners", query, nil, &owners); err != nil {
		return nil, err
	}
	return owners, nil
}

// CreateOwner registers a new owner contact record.
func (c *Client) CreateOwner(ctx context.Context, input OwnerInput) (*Owner, error) {
	var owner Owner
	if err := c.do(ctx, "create_owner", http.MethodPost, "/owners", nil, input, &owner); err != nil {
		return nil, err
	}
	return &owner, nil
}
