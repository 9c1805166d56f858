package petcare

import (
	"context"
	"net/http"
	"net/url"
)

// ListServices fetches the services customers may book online.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	query := url.Values{}
	query.Set("is_active", "true")
	query.Set("is_bookable_online", "true")

	var services []Service
	if err := c.do(ctx, "list_services", http.MethodGet, "/services", query, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// GetService fetches a single service by id.
func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	var service Service
	if err := c.do(ctx, "get_service", http.MethodGet, "/services/"+serviceID, nil, nil, &service); err != nil {
		return nil, err
	}
	return &service, nil
}
