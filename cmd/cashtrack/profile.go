package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/model"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the user profile",
	}

	cmd.AddCommand(showProfileCmd())
	cmd.AddCommand(updateProfileCmd())
	cmd.AddCommand(deleteProfileCmd())

	return cmd
}

func showProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.GetProfile(cmd.Context())
			if err != nil {
				return err
			}

			cli.RenderUser(os.Stdout, *user)
			return nil
		},
	}
}

func updateProfileCmd() *cobra.Command {
	var (
		username  string
		email     string
		firstName string
		lastName  string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the profile",
		Long:  `Apply a partial profile update. Only the given fields change.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch model.PatchUser
			if cmd.Flags().Changed("username") {
				patch.Username = &username
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			if cmd.Flags().Changed("first-name") {
				patch.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				patch.LastName = &lastName
			}

			if patch == (model.PatchUser{}) {
				return fmt.Errorf("nothing to update; pass at least one field flag")
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			user, err := client.UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Profile updated"))
			cli.RenderUser(os.Stdout, *user)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "new username")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")

	return cmd
}

func deleteProfileCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the user account",
		Long:  `Permanently delete the user account and all of its data with the service.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, os.Stdout, "Permanently delete your account and all data?")
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

			if err := client.DeleteProfile(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}
