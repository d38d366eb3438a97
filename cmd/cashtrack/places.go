package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/model"
)

func placesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Manage places",
		Long:  `Search and manage the places operations can be tagged with.`,
	}

	cmd.AddCommand(searchPlacesCmd())
	cmd.AddCommand(addPlaceCmd())
	cmd.AddCommand(updatePlaceCmd())
	cmd.AddCommand(deletePlaceCmd())

	return cmd
}

func searchPlacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search places by description",
		Long:  `Search places matching the given text. The search needs at least two characters.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			search := args[0]

			if len([]rune(search)) < 2 {
				return fmt.Errorf("search text must be at least 2 characters")
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			places, err := client.SearchPlaces(ctx, search)
			if err != nil {
				places, err = searchCachedPlaces(ctx, search, err)
				if err != nil {
					return err
				}
				slog.Warn("Backend unreachable, using cached places")
			} else {
				cachePlaces(ctx, places)
			}

			cli.RenderPlaces(os.Stdout, places)
			return nil
		},
	}
}

// searchCachedPlaces falls back to the local cache; the original fetch
// error is surfaced when the cache cannot answer either.
func searchCachedPlaces(ctx context.Context, search string, fetchErr error) ([]model.SimplePlace, error) {
	cache, err := openCache(ctx)
	if err != nil {
		return nil, fetchErr
	}
	defer func() { _ = cache.Close() }()

	places, err := cache.SearchPlaces(ctx, search)
	if err != nil || len(places) == 0 {
		return nil, fetchErr
	}
	return places, nil
}

func addPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <description>",
		Short: "Create a new place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := client.CreatePlace(cmd.Context(), model.SimplePlace{Description: args[0]})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created place %q (%s)", created.Description, created.ID)))
			return nil
		},
	}
}

func updatePlaceCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := client.UpdatePlace(cmd.Context(), args[0], model.SimplePlace{ID: args[0], Description: description})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated place %q", updated.Description)))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "new description")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func deletePlaceCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, os.Stdout, fmt.Sprintf("Delete place %s?", args[0]))
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			if err := client.DeletePlace(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted place " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}

func cachePlaces(ctx context.Context, places []model.SimplePlace) {
	cache, err := openCache(ctx)
	if err != nil {
		slog.Debug("Cache unavailable", "error", err)
		return
	}
	defer func() { _ = cache.Close() }()

	if err := cache.SavePlaces(ctx, places); err != nil {
		slog.Debug("Failed to refresh place cache", "error", err)
	}
}
