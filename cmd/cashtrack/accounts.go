package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, create, update, and delete the accounts money is tracked in.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(showAccountCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(updateAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			accounts, err := fetchAccounts(cmd.Context(), client)
			if err != nil {
				return err
			}

			if !includeArchived {
				active := accounts[:0]
				for _, account := range accounts {
					if !account.ArchiveAccount {
						active = append(active, account)
					}
				}
				accounts = active
			}

			cli.RenderAccounts(os.Stdout, accounts)
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "all", false, "include archived accounts")

	return cmd
}

func showAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one account in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			account, err := client.GetAccount(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(account.Name))
			fmt.Printf("Type:     %s\n", account.Type.Label())
			fmt.Printf("Balance:  %s %s\n", account.CurrentBalance, account.Currency.Symbol)
			if account.Type == model.AccountCredit {
				fmt.Printf("Limit:    %s %s\n", account.CreditLimit, account.Currency.Symbol)
			}
			if account.Bank != nil {
				fmt.Printf("Bank:     %s\n", account.Bank.DisplayName)
			}
			if account.SavingsAccount {
				fmt.Println("Savings account")
			}
			if account.ArchiveAccount {
				fmt.Println(cli.WarningStyle.Render("Archived"))
			}
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		accountType string
		currencyID  string
		balance     string
		creditLimit string
		bankID      string
		savings     bool
		isDefault   bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			input, err := buildAccountInput(args[0], accountType, currencyID, balance, creditLimit, bankID, savings, isDefault)
			if err != nil {
				return err
			}

			created, err := client.CreateAccount(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created account %q (%s)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", string(model.AccountCash), "account type (CASH, CARD, BANK_ACCOUNT, CREDIT, DEPOSIT)")
	cmd.Flags().StringVar(&currencyID, "currency", "", "currency id (see 'cashtrack currencies list')")
	cmd.Flags().StringVar(&balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&creditLimit, "credit-limit", "0", "credit limit (CREDIT accounts)")
	cmd.Flags().StringVar(&bankID, "bank", "", "bank id (see 'cashtrack banks list')")
	cmd.Flags().BoolVar(&savings, "savings", false, "mark as a savings account")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make this the default account")
	_ = cmd.MarkFlagRequired("currency")

	return cmd
}

func updateAccountCmd() *cobra.Command {
	var (
		name        string
		accountType string
		currencyID  string
		balance     string
		creditLimit string
		bankID      string
		savings     bool
		isDefault   bool
		archive     bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an account",
		Long:  `Update an account. Unspecified fields keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			current, err := client.GetAccount(ctx, args[0])
			if err != nil {
				return err
			}

			input := model.AccountInput{
				Name:                  current.Name,
				Type:                  current.Type,
				Currency:              model.IDRef{ID: current.Currency.ID},
				CreditLimit:           current.CreditLimit,
				CurrentBalance:        current.CurrentBalance,
				IncludeInTotalBalance: current.IncludeInTotalBalance,
				DefaultAccount:        current.DefaultAccount,
				SavingsAccount:        current.SavingsAccount,
				ArchiveAccount:        current.ArchiveAccount,
			}
			if current.Bank != nil {
				input.Bank = &model.IDRef{ID: current.Bank.ID}
			}

			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("type") {
				input.Type = model.AccountType(accountType)
				if !input.Type.Valid() {
					return fmt.Errorf("unknown account type %q", accountType)
				}
			}
			if cmd.Flags().Changed("currency") {
				input.Currency = model.IDRef{ID: currencyID}
			}
			if cmd.Flags().Changed("balance") {
				input.CurrentBalance, err = decimal.NewFromString(balance)
				if err != nil {
					return fmt.Errorf("invalid balance %q", balance)
				}
			}
			if cmd.Flags().Changed("credit-limit") {
				input.CreditLimit, err = decimal.NewFromString(creditLimit)
				if err != nil {
					return fmt.Errorf("invalid credit limit %q", creditLimit)
				}
			}
			if cmd.Flags().Changed("bank") {
				if bankID == "" {
					input.Bank = nil
				} else {
					input.Bank = &model.IDRef{ID: bankID}
				}
			}
			if cmd.Flags().Changed("savings") {
				input.SavingsAccount = savings
			}
			if cmd.Flags().Changed("default") {
				input.DefaultAccount = isDefault
			}
			if cmd.Flags().Changed("archive") {
				input.ArchiveAccount = archive
			}

			updated, err := client.UpdateAccount(ctx, args[0], input)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated account %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&accountType, "type", "", "new account type")
	cmd.Flags().StringVar(&currencyID, "currency", "", "new currency id")
	cmd.Flags().StringVar(&balance, "balance", "", "new balance")
	cmd.Flags().StringVar(&creditLimit, "credit-limit", "", "new credit limit")
	cmd.Flags().StringVar(&bankID, "bank", "", "new bank id (empty clears)")
	cmd.Flags().BoolVar(&savings, "savings", false, "mark as a savings account")
	cmd.Flags().BoolVar(&isDefault, "default", false, "make this the default account")
	cmd.Flags().BoolVar(&archive, "archive", false, "archive the account")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, os.Stdout, fmt.Sprintf("Delete account %s and all of its operations?", args[0]))
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

			if err := client.DeleteAccount(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted account " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}

func buildAccountInput(name, accountType, currencyID, balance, creditLimit, bankID string, savings, isDefault bool) (model.AccountInput, error) {
	parsedType := model.AccountType(accountType)
	if !parsedType.Valid() {
		return model.AccountInput{}, fmt.Errorf("unknown account type %q", accountType)
	}

	parsedBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return model.AccountInput{}, fmt.Errorf("invalid balance %q", balance)
	}

	parsedLimit, err := decimal.NewFromString(creditLimit)
	if err != nil {
		return model.AccountInput{}, fmt.Errorf("invalid credit limit %q", creditLimit)
	}

	input := model.AccountInput{
		Name:                  name,
		Type:                  parsedType,
		Currency:              model.IDRef{ID: currencyID},
		CreditLimit:           parsedLimit,
		CurrentBalance:        parsedBalance,
		IncludeInTotalBalance: true,
		DefaultAccount:        isDefault,
		SavingsAccount:        savings,
	}
	if bankID != "" {
		input.Bank = &model.IDRef{ID: bankID}
	}

	return input, nil
}
