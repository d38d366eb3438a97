package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	require.NoError(t, cache.Migrate(context.Background()))
	return cache
}

func TestMigrate_Idempotent(t *testing.T) {
	cache := testCache(t)
	require.NoError(t, cache.Migrate(context.Background()))
}

func TestAccounts_RoundTrip(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	icon := "icon-data"
	accounts := []model.ListAccount{
		{
			ID:   "a1",
			Name: "Wallet",
			Type: model.AccountCash,
			Currency: model.Currency{
				ID:          "cur-usd",
				DisplayName: "US Dollar",
				Symbol:      "$",
			},
			CreditLimit:    decimal.Zero,
			CurrentBalance: decimal.RequireFromString("123.45"),
		},
		{
			ID:             "a2",
			Name:           "Savings",
			Type:           model.AccountBank,
			CurrentBalance: decimal.RequireFromString("1000"),
			CreditLimit:    decimal.RequireFromString("0"),
			BankIcon:       &icon,
			SavingsAccount: true,
		},
	}

	require.NoError(t, cache.SaveAccounts(ctx, accounts))

	got, err := cache.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Wallet", got[0].Name)
	assert.Equal(t, model.AccountCash, got[0].Type)
	assert.Equal(t, "$", got[0].Currency.Symbol)
	assert.True(t, got[0].CurrentBalance.Equal(decimal.RequireFromString("123.45")))

	require.NotNil(t, got[1].BankIcon)
	assert.Equal(t, "icon-data", *got[1].BankIcon)
	assert.True(t, got[1].SavingsAccount)
}

func TestSaveAccounts_ReplacesPreviousContents(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	first := []model.ListAccount{{ID: "a1", Name: "Old", Type: model.AccountCash}}
	require.NoError(t, cache.SaveAccounts(ctx, first))

	second := []model.ListAccount{{ID: "a2", Name: "New", Type: model.AccountCard}}
	require.NoError(t, cache.SaveAccounts(ctx, second))

	got, err := cache.Accounts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
}

func TestCategories_RoundTrip(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	categories := []model.ListCategory{
		{ID: "c1", Name: "Groceries", ForOutcome: true},
		{ID: "c2", Name: "Salary", ForIncome: true},
	}
	require.NoError(t, cache.SaveCategories(ctx, categories))

	got, err := cache.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].ForOutcome)
	assert.False(t, got[0].ForIncome)
	assert.True(t, got[1].ForIncome)
}

func TestSearchPlaces_CaseInsensitive(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	places := []model.SimplePlace{
		{ID: "p1", Description: "Coffee House"},
		{ID: "p2", Description: "Corner Shop"},
		{ID: "p3", Description: "Gym"},
	}
	require.NoError(t, cache.SavePlaces(ctx, places))

	got, err := cache.SearchPlaces(ctx, "coffee")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Coffee House", got[0].Description)

	got, err = cache.SearchPlaces(ctx, "co")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestLastSync(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	_, err := cache.LastSync(ctx, ResourceAccounts)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, cache.SaveAccounts(ctx, nil))

	syncedAt, err := cache.LastSync(ctx, ResourceAccounts)
	require.NoError(t, err)
	assert.False(t, syncedAt.IsZero())
}

func TestClear(t *testing.T) {
	cache := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.SaveCategories(ctx, []model.ListCategory{{ID: "c1", Name: "Food"}}))
	require.NoError(t, cache.Clear(ctx))

	got, err := cache.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = cache.LastSync(ctx, ResourceCategories)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
