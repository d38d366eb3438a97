package main

import (
	"context"
	"log/slog"

	"github.com/storksoft/cashtrack/internal/api"
	"github.com/storksoft/cashtrack/internal/auth"
	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/config"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/storage"
)

// newClient builds an authenticated API client from the saved session.
func newClient(ctx context.Context) (*api.Client, error) {
	apiCfg, err := config.LoadAPI()
	if err != nil {
		return nil, err
	}

	authCfg, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	tokens, err := auth.TokenSource(ctx, authCfg)
	if err != nil {
		return nil, common.NewUserError("Not logged in. Run 'cashtrack auth login' first.", err)
	}

	return api.New(apiCfg.BaseURL, tokens), nil
}

// newPublicClient builds an unauthenticated client for registration.
func newPublicClient() (*api.Client, error) {
	apiCfg, err := config.LoadAPI()
	if err != nil {
		return nil, err
	}
	return api.NewPublic(apiCfg.BaseURL), nil
}

func loadAuthConfig() (auth.Config, error) {
	cfg, err := config.LoadAuth()
	if err != nil {
		return auth.Config{}, err
	}
	return auth.Config{
		Issuer:    cfg.Issuer,
		Realm:     cfg.Realm,
		ClientID:  cfg.ClientID,
		TokenFile: cfg.TokenFile,
	}, nil
}

// openCache opens the local reference cache, running migrations.
func openCache(ctx context.Context) (*storage.Cache, error) {
	path, err := config.LoadCachePath()
	if err != nil {
		return nil, err
	}

	cache, err := storage.Open(path)
	if err != nil {
		return nil, err
	}

	if err := cache.Migrate(ctx); err != nil {
		_ = cache.Close()
		return nil, err
	}

	return cache, nil
}

// fetchAccounts lists accounts from the backend, falling back to the local
// cache when the backend is unreachable. Fresh results refresh the cache.
func fetchAccounts(ctx context.Context, client *api.Client) ([]model.ListAccount, error) {
	accounts, err := client.ListAccounts(ctx)
	if err == nil {
		cacheAccounts(ctx, accounts)
		return accounts, nil
	}

	cache, cacheErr := openCache(ctx)
	if cacheErr != nil {
		return nil, err
	}
	defer func() { _ = cache.Close() }()

	cached, cacheErr := cache.Accounts(ctx)
	if cacheErr != nil || len(cached) == 0 {
		return nil, err
	}

	slog.Warn("Backend unreachable, using cached accounts", "error", err)
	return cached, nil
}

// fetchCategories lists categories with the same cache fallback.
func fetchCategories(ctx context.Context, client *api.Client) ([]model.ListCategory, error) {
	categories, err := client.ListCategories(ctx)
	if err == nil {
		cacheCategories(ctx, categories)
		return categories, nil
	}

	cache, cacheErr := openCache(ctx)
	if cacheErr != nil {
		return nil, err
	}
	defer func() { _ = cache.Close() }()

	cached, cacheErr := cache.Categories(ctx)
	if cacheErr != nil || len(cached) == 0 {
		return nil, err
	}

	slog.Warn("Backend unreachable, using cached categories", "error", err)
	return cached, nil
}

func cacheAccounts(ctx context.Context, accounts []model.ListAccount) {
	cache, err := openCache(ctx)
	if err != nil {
		slog.Debug("Cache unavailable", "error", err)
		return
	}
	defer func() { _ = cache.Close() }()

	if err := cache.SaveAccounts(ctx, accounts); err != nil {
		slog.Debug("Failed to refresh account cache", "error", err)
	}
}

func cacheCategories(ctx context.Context, categories []model.ListCategory) {
	cache, err := openCache(ctx)
	if err != nil {
		slog.Debug("Cache unavailable", "error", err)
		return
	}
	defer func() { _ = cache.Close() }()

	if err := cache.SaveCategories(ctx, categories); err != nil {
		slog.Debug("Failed to refresh category cache", "error", err)
	}
}
