package api

import (
	"context"
	"net/url"

	"github.com/storksoft/cashtrack/internal/model"
)

// SearchPlaces searches places by description.
func (c *Client) SearchPlaces(ctx context.Context, search string) ([]model.SimplePlace, error) {
	query := url.Values{"search": {search}}
	var places []model.SimplePlace
	if err := c.get(ctx, "/places/search", query, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// CreatePlace creates a new place.
func (c *Client) CreatePlace(ctx context.Context, place model.SimplePlace) (*model.SimplePlace, error) {
	var created model.SimplePlace
	if err := c.post(ctx, "/places", place, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePlace updates an existing place.
func (c *Client) UpdatePlace(ctx context.Context, id string, place model.SimplePlace) (*model.SimplePlace, error) {
	var updated model.SimplePlace
	if err := c.patch(ctx, "/places/"+id, place, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePlace deletes a place.
func (c *Client) DeletePlace(ctx context.Context, id string) error {
	return c.delete(ctx, "/places/"+id)
}
