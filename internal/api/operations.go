package api

import (
	"context"

	"github.com/storksoft/cashtrack/internal/model"
)

// ListOperations fetches the unfiltered operation listing.
func (c *Client) ListOperations(ctx context.Context) ([]model.ListOperation, error) {
	var operations []model.ListOperation
	if err := c.get(ctx, "/operations", nil, &operations); err != nil {
		return nil, err
	}
	return operations, nil
}

// FilterOperations fetches operations matching the filter. An empty filter
// returns the same result set as ListOperations.
func (c *Client) FilterOperations(ctx context.Context, filter model.OperationFilter) ([]model.ListOperation, error) {
	var operations []model.ListOperation
	if err := c.post(ctx, "/operations/filter", filter, &operations); err != nil {
		return nil, err
	}
	return operations, nil
}

// CreateOperation submits a new operation.
func (c *Client) CreateOperation(ctx context.Context, input *model.OperationInput) (*model.SimpleOperation, error) {
	var created model.SimpleOperation
	if err := c.post(ctx, "/operations", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateOperation updates an existing operation.
func (c *Client) UpdateOperation(ctx context.Context, id string, input *model.OperationInput) (*model.SimpleOperation, error) {
	var updated model.SimpleOperation
	if err := c.patch(ctx, "/operations/"+id, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOperation deletes an operation.
func (c *Client) DeleteOperation(ctx context.Context, id string) error {
	return c.delete(ctx, "/operations/"+id)
}
