package api

import (
	"context"

	"github.com/storksoft/cashtrack/internal/model"
)

// ListAccounts fetches all of the user's accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]model.ListAccount, error) {
	var accounts []model.ListAccount
	if err := c.get(ctx, "/accounts", nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccount fetches one account in full detail.
func (c *Client) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	var account model.Account
	if err := c.get(ctx, "/accounts/"+id, nil, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// CreateAccount creates a new account.
func (c *Client) CreateAccount(ctx context.Context, input model.AccountInput) (*model.SimpleAccount, error) {
	var created model.SimpleAccount
	if err := c.post(ctx, "/accounts", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateAccount updates an existing account.
func (c *Client) UpdateAccount(ctx context.Context, id string, input model.AccountInput) (*model.SimpleAccount, error) {
	var updated model.SimpleAccount
	if err := c.patch(ctx, "/accounts/"+id, input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteAccount deletes an account.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.delete(ctx, "/accounts/"+id)
}
