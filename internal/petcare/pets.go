package petcare

import (
	"context"
	"net/http"
	"net/url"
)

// CreatePet registers a pet under the given owner.
func (c *Client) CreatePet(ctx context.Context, ownerID string, input PetInput) (*Pet, error) {
	payload := struct {
		OwnerID string `json:"owner_id"`
		PetInput
	}{OwnerID: ownerID, PetInput: input}

	var pet Pet
	if err := c.do(ctx, "create_pet", http.MethodPost, "/pets", nil, payload, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

// PetsByOwner lists the pets registered under an owner.
func (c *Client) PetsByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	query := url.Values{}
	query.Set("owner_id", ownerID)

	var pets []Pet
	if err := c.do(ctx, "list_pets", http.MethodGet, "/pets", query, nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}
