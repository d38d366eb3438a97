package api

import (
	"context"

	"github.com/storksoft/cashtrack/internal/model"
)

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.get(ctx, "/users/profile", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the profile.
func (c *Client) UpdateProfile(ctx context.Context, patch model.PatchUser) (*model.User, error) {
	var user model.User
	if err := c.patch(ctx, "/users/profile", patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteProfile deletes the user's account with the service.
func (c *Client) DeleteProfile(ctx context.Context) error {
	return c.delete(ctx, "/users/profile")
}

// Register creates a new user. This is the only unauthenticated call; use
// it on a client built with NewPublic.
func (c *Client) Register(ctx context.Context, registration model.UserRegistration) (*model.User, error) {
	var user model.User
	if err := c.post(ctx, "/users/register", registration, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
