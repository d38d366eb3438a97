package api

import (
	"context"

	"github.com/storksoft/cashtrack/internal/model"
)

// ListCategories fetches all categories visible to the user.
func (c *Client) ListCategories(ctx context.Context) ([]model.ListCategory, error) {
	var categories []model.ListCategory
	if err := c.get(ctx, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory fetches one category in full detail.
func (c *Client) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	var category model.Category
	if err := c.get(ctx, "/categories/"+id, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateCategory creates a new category.
func (c *Client) CreateCategory(ctx context.Context, input model.CategoryInput) (*model.SimpleCategory, error) {
	var created model.SimpleCategory
	if err := c.post(ctx, "/categories", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCategory updates an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id string, input model.CategoryInput) (*model.SimpleCategory, error) {
	var updated model.SimpleCategory
	if err := c.patch(ctx, "/categories/"+id, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCategory deletes a category.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/categories/"+id)
}
