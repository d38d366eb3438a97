package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
)

func banksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banks",
		Short: "Browse the bank reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known banks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			banks, err := client.ListBanks(cmd.Context())
			if err != nil {
				return err
			}

			cli.RenderBanks(os.Stdout, banks)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <text>",
		Short: "Search banks by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			banks, err := client.SearchBanks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cli.RenderBanks(os.Stdout, banks)
			return nil
		},
	})

	return cmd
}

func currenciesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "Browse the currency reference data",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known currencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			currencies, err := client.ListCurrencies(cmd.Context())
			if err != nil {
				return err
			}

			cli.RenderCurrencies(os.Stdout, currencies)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "search <text>",
		Short: "Search currencies by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			currencies, err := client.SearchCurrencies(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cli.RenderCurrencies(os.Stdout, currencies)
			return nil
		},
	})

	return cmd
}

// colorsCmd and iconsCmd list the visual reference data used when styling
// categories; they hang off the categories command.
func colorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colors",
		Short: "List category colors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			colors, err := client.ListColors(cmd.Context())
			if err != nil {
				return err
			}

			for _, color := range colors {
				fmt.Printf("%s\t%s\n", color.ID, color.Hex())
			}
			return nil
		},
	}
}

func iconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "List category icons",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			icons, err := client.ListIcons(cmd.Context())
			if err != nil {
				return err
			}

			for _, icon := range icons {
				fmt.Println(icon.ID)
			}
			return nil
		},
	}
}
