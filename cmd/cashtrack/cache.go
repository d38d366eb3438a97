package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/common"
	"github.com/storksoft/cashtrack/internal/storage"
)

func cacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local reference cache",
		Long: `The client keeps accounts, categories, and places in a local cache so
listings still work when the backend is unreachable. The cache refreshes
on every successful fetch; these commands refresh or clear it explicitly.`,
	}

	cmd.AddCommand(refreshCacheCmd())
	cmd.AddCommand(clearCacheCmd())
	cmd.AddCommand(cacheStatusCmd())

	return cmd
}

func refreshCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh the cache from the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			accounts, err := client.ListAccounts(ctx)
			if err != nil {
				return err
			}
			if err := cache.SaveAccounts(ctx, accounts); err != nil {
				return err
			}

			categories, err := client.ListCategories(ctx)
			if err != nil {
				return err
			}
			if err := cache.SaveCategories(ctx, categories); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cached %d accounts and %d categories", len(accounts), len(categories))))
			return nil
		},
	}
}

func clearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			if err := cache.Clear(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Cache cleared"))
			return nil
		},
	}
}

func cacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show when each resource was last cached",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cache, err := openCache(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = cache.Close() }()

			for _, resource := range []string{storage.ResourceAccounts, storage.ResourceCategories, storage.ResourcePlaces} {
				syncedAt, err := cache.LastSync(ctx, resource)
				switch {
				case err == nil:
					fmt.Fprintf(os.Stdout, "%-12s synced %s\n", resource, syncedAt.Local().Format("2006-01-02 15:04:05"))
				case errors.Is(err, common.ErrNotFound):
					fmt.Fprintf(os.Stdout, "%-12s never synced\n", resource)
				default:
					return err
				}
			}
			return nil
		},
	}
}
