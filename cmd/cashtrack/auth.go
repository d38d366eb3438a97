package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/auth"
	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/model"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the login session",
		Long:  `Log in to the finance service, inspect the current session, or log out.`,
	}

	cmd.AddCommand(loginCmd())
	cmd.AddCommand(logoutCmd())
	cmd.AddCommand(statusCmd())
	cmd.AddCommand(registerCmd())

	return cmd
}

func loginCmd() *cobra.Command {
	var (
		username string
		browser  bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the finance service",
		Long: `Authenticate against the identity provider and save the session.

With --browser the login happens through the system browser, which also
covers external identities like Google. Otherwise the command asks for
credentials directly.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			authCfg, err := loadAuthConfig()
			if err != nil {
				return err
			}

			if browser {
				if _, err := auth.LoginInteractive(ctx, authCfg); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess("Logged in"))
				return nil
			}

			reader := cli.NewReader(os.Stdin)
			if username == "" {
				fmt.Print(cli.FormatPrompt("Username"))
				username, err = reader.ReadLine(ctx)
				if err != nil {
					return err
				}
			}

			fmt.Print(cli.FormatPrompt("Password"))
			password, err := reader.ReadLine(ctx)
			if err != nil {
				return err
			}

			if _, err := auth.LoginWithPassword(ctx, authCfg, username, password); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged in"))
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username (prompted if not given)")
	cmd.Flags().BoolVar(&browser, "browser", false, "log in through the system browser")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved session",
		RunE: func(_ *cobra.Command, _ []string) error {
			authCfg, err := loadAuthConfig()
			if err != nil {
				return err
			}

			if err := auth.ClearSession(authCfg); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Logged out"))
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			authCfg, err := loadAuthConfig()
			if err != nil {
				return err
			}

			token, err := auth.LoadToken(authCfg.TokenFile)
			if err != nil {
				fmt.Println(cli.FormatInfo("Not logged in"))
				return nil
			}

			claims, err := auth.ParseClaims(token.AccessToken)
			if err != nil {
				fmt.Println(cli.FormatWarning("Session file present but unreadable; log in again"))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Logged in as " + claims.PreferredUsername))
			if claims.Email != "" {
				fmt.Println(cli.SubtleStyle.Render("  " + claims.Email))
			}
			if token.Valid() {
				fmt.Println(cli.SubtleStyle.Render("  access token valid until " + token.Expiry.Format("15:04:05")))
			} else {
				fmt.Println(cli.SubtleStyle.Render("  access token expired; will refresh on next use"))
			}

			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var (
		email    string
		username string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  `Create a new user with the finance service. Registration does not need a session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			client, err := newPublicClient()
			if err != nil {
				return err
			}

			reader := cli.NewReader(os.Stdin)
			if email == "" {
				fmt.Print(cli.FormatPrompt("Email"))
				if email, err = reader.ReadLine(ctx); err != nil {
					return err
				}
			}
			if username == "" {
				fmt.Print(cli.FormatPrompt("Username"))
				if username, err = reader.ReadLine(ctx); err != nil {
					return err
				}
			}

			fmt.Print(cli.FormatPrompt("Password"))
			password, err := reader.ReadLine(ctx)
			if err != nil {
				return err
			}

			user, err := client.Register(ctx, model.UserRegistration{
				Email:    email,
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registered %s. Log in with 'cashtrack auth login'.", user.Username)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (prompted if not given)")
	cmd.Flags().StringVar(&username, "username", "", "username (prompted if not given)")

	return cmd
}
