package api

import (
	"context"
	"net/url"

	"github.com/storksoft/cashtrack/internal/model"
)

// ListBanks fetches the bank reference data.
func (c *Client) ListBanks(ctx context.Context) ([]model.Bank, error) {
	var banks []model.Bank
	if err := c.get(ctx, "/configuration/banks", nil, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// SearchBanks searches banks by display name.
func (c *Client) SearchBanks(ctx context.Context, search string) ([]model.Bank, error) {
	query := url.Values{"search": {search}}
	var banks []model.Bank
	if err := c.get(ctx, "/configuration/banks/search", query, &banks); err != nil {
		return nil, err
	}
	return banks, nil
}

// ListCurrencies fetches the currency reference data.
func (c *Client) ListCurrencies(ctx context.Context) ([]model.Currency, error) {
	var currencies []model.Currency
	if err := c.get(ctx, "/configuration/currencies", nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// SearchCurrencies searches currencies by display name.
func (c *Client) SearchCurrencies(ctx context.Context, search string) ([]model.Currency, error) {
	query := url.Values{"search": {search}}
	var currencies []model.Currency
	if err := c.get(ctx, "/configuration/currencies/search", query, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// ListColors fetches the color reference data.
func (c *Client) ListColors(ctx context.Context) ([]model.Color, error) {
	var colors []model.Color
	if err := c.get(ctx, "/configuration/colors", nil, &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

// ListIcons fetches the icon reference data.
func (c *Client) ListIcons(ctx context.Context) ([]model.Icon, error) {
	var icons []model.Icon
	if err := c.get(ctx, "/configuration/icons", nil, &icons); err != nil {
		return nil, err
	}
	return icons, nil
}
