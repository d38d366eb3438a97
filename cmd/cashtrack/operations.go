package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/api"
	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/config"
	"github.com/storksoft/cashtrack/internal/export"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/rules"
	"github.com/storksoft/cashtrack/internal/statement"
)

func operationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "operations",
		Aliases: []string{"ops"},
		Short:   "Record and browse operations",
		Long:    `Record income, expenses, and transfers, and browse the operation history.`,
	}

	cmd.AddCommand(listOperationsCmd())
	cmd.AddCommand(addOperationCmd())
	cmd.AddCommand(updateOperationCmd())
	cmd.AddCommand(deleteOperationCmd())
	cmd.AddCommand(importOperationsCmd())
	cmd.AddCommand(exportOperationsCmd())

	return cmd
}

// filterFlags holds the listing filter selections shared by list and export.
type filterFlags struct {
	from              string
	to                string
	types             []string
	accountIDs        []string
	categoryIDs       []string
	excludeCategories bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.types, "type", nil, "operation types (INCOME, OUTCOME, TRANSFER, OWN)")
	cmd.Flags().StringSliceVar(&f.accountIDs, "account", nil, "restrict to these account ids")
	cmd.Flags().StringSliceVar(&f.categoryIDs, "category", nil, "restrict to these category ids")
	cmd.Flags().BoolVar(&f.excludeCategories, "exclude-categories", false, "exclude the given categories instead of including them")
}

func (f *filterFlags) controls() rules.FilterControls {
	types := make([]model.OperationType, 0, len(f.types))
	for _, t := range f.types {
		types = append(types, model.OperationType(strings.ToUpper(t)))
	}
	return rules.FilterControls{
		From:              f.from,
		To:                f.to,
		Types:             types,
		AccountIDs:        f.accountIDs,
		CategoryIDs:       f.categoryIDs,
		ExcludeCategories: f.excludeCategories,
	}
}

// fetchFiltered runs the listing: the plain endpoint when no filter is
// applied, the filter endpoint otherwise.
func fetchFiltered(cmd *cobra.Command, client *api.Client, flags *filterFlags) ([]model.ListOperation, error) {
	filter, err := rules.BuildFilter(flags.controls())
	if err != nil {
		return nil, err
	}

	if filter.IsEmpty() {
		return client.ListOperations(cmd.Context())
	}
	return client.FilterOperations(cmd.Context(), filter)
}

func listOperationsCmd() *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List operations",
		Long: `List operations grouped by calendar day, newest first. Any combination
of date range, type, account, and category filters may be applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			operations, err := fetchFiltered(cmd, client, flags)
			if err != nil {
				return err
			}

			cli.RenderOperations(os.Stdout, operations)
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

// draftFlags holds the operation entry fields shared by add and update.
type draftFlags struct {
	opType         string
	categoryID     string
	fromAccountID  string
	toAccountID    string
	amount         string
	receivedAmount string
	date           string
	description    string
	placeID        string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.opType, "type", "", "operation type (INCOME, OUTCOME, TRANSFER, OWN)")
	cmd.Flags().StringVar(&f.categoryID, "category", "", "category id")
	cmd.Flags().StringVar(&f.fromAccountID, "from-account", "", "account money leaves")
	cmd.Flags().StringVar(&f.toAccountID, "to-account", "", "account money arrives into")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount (sent side for transfers)")
	cmd.Flags().StringVar(&f.receivedAmount, "received", "", "received amount for transfers (defaults to --amount)")
	cmd.Flags().StringVar(&f.date, "date", "", "operation date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&f.description, "description", "", "free-text description")
	cmd.Flags().StringVar(&f.placeID, "place", "", "place id (see 'cashtrack places search')")
}

func (f *draftFlags) draft() rules.Draft {
	return rules.Draft{
		Type:                 model.OperationType(strings.ToUpper(f.opType)),
		CategoryID:           f.categoryID,
		SourceAccountID:      f.fromAccountID,
		DestinationAccountID: f.toAccountID,
		Amount:               f.amount,
		ReceivedAmount:       f.receivedAmount,
		Date:                 f.date,
		Description:          f.description,
		PlaceID:              f.placeID,
	}
}

func addOperationCmd() *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new operation",
		Long: `Record an operation. Expenses need --from-account, income and own
deposits need --to-account, and transfers need both. Transfers take the
sent amount in --amount; --received covers cross-currency moves.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := rules.BuildPayload(flags.draft())
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := client.CreateOperation(cmd.Context(), payload)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Recorded operation " + created.ID))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateOperationCmd() *cobra.Command {
	flags := &draftFlags{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an operation",
		Long: `Replace an operation's fields. The full shape is validated the same
way as for a new operation, so all required fields must be given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := rules.BuildPayload(flags.draft())
			if err != nil {
				return err
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			updated, err := client.UpdateOperation(cmd.Context(), args[0], payload)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Updated operation " + updated.ID))
			return nil
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func deleteOperationCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an operation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, os.Stdout, fmt.Sprintf("Delete operation %s?", args[0]))
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

			if err := client.DeleteOperation(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted operation " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}

func importOperationsCmd() *cobra.Command {
	var (
		accountID         string
		incomeCategoryID  string
		outcomeCategoryID string
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import operations from a bank statement",
		Long: `Import an OFX/QFX or CSV bank statement into one account. Credits
become income operations and debits become expenses, filed under the given
categories. Each entry goes through the same validation and submission
path as a manually recorded operation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := cli.NewInterruptHandler(os.Stdout)
			ctx := handler.HandleInterrupts(cmd.Context())

			entries, err := parseStatement(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(cli.FormatInfo("Statement contains no entries."))
				return nil
			}

			drafts := statement.ToDrafts(entries, statement.DraftTarget{
				AccountID:         accountID,
				IncomeCategoryID:  incomeCategoryID,
				OutcomeCategoryID: outcomeCategoryID,
			})

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			bar := progressbar.NewOptions(len(drafts),
				progressbar.OptionSetWriter(os.Stdout),
				progressbar.OptionShowCount(),
				progressbar.OptionShowElapsedTimeOnFinish(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Importing operations..."),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)

			var imported, failed int
			for _, draft := range drafts {
				if ctx.Err() != nil {
					break
				}

				payload, buildErr := rules.BuildPayload(draft)
				if buildErr != nil {
					failed++
					_ = bar.Add(1)
					continue
				}

				if _, submitErr := client.CreateOperation(ctx, payload); submitErr != nil {
					failed++
					_ = bar.Add(1)
					continue
				}

				imported++
				_ = bar.Add(1)
			}

			if handler.WasInterrupted() {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Import interrupted: %d of %d entries submitted", imported, len(drafts))))
				return nil
			}

			msg := fmt.Sprintf("Imported %d operations", imported)
			if failed > 0 {
				msg += fmt.Sprintf(" (%d failed)", failed)
			}
			fmt.Println(cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account the statement belongs to")
	cmd.Flags().StringVar(&incomeCategoryID, "income-category", "", "category for credit entries")
	cmd.Flags().StringVar(&outcomeCategoryID, "outcome-category", "", "category for debit entries")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("income-category")
	_ = cmd.MarkFlagRequired("outcome-category")

	return cmd
}

func parseStatement(path string) ([]statement.Entry, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return statement.NewOFXParser().Parse(f)
	case ".csv":
		return statement.ParseCSV(f)
	default:
		return nil, fmt.Errorf("unsupported statement format %q (expected .ofx, .qfx, or .csv)", filepath.Ext(path))
	}
}

func exportOperationsCmd() *cobra.Command {
	flags := &filterFlags{}
	var (
		csvPath  string
		toSheets bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export operations",
		Long: `Export the (optionally filtered) operation listing to a CSV file or a
Google spreadsheet. Sheets export needs Google credentials under the
sheets.* config keys.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if csvPath == "" && !toSheets {
				return fmt.Errorf("pass --csv <file> or --sheets")
			}

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			operations, err := fetchFiltered(cmd, client, flags)
			if err != nil {
				return err
			}

			sorted := rules.SortByDateDescending(operations)

			if csvPath != "" {
				f, createErr := os.Create(csvPath) // #nosec G304
				if createErr != nil {
					return fmt.Errorf("failed to create %s: %w", csvPath, createErr)
				}
				defer func() { _ = f.Close() }()

				if err := export.WriteCSV(f, sorted); err != nil {
					return err
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d operations to %s", len(sorted), csvPath)))
			}

			if toSheets {
				sheetsCfg, cfgErr := config.LoadSheets()
				if cfgErr != nil {
					return cfgErr
				}

				writer, writerErr := export.NewSheetsWriter(ctx, export.SheetsConfig{
					ClientID:        sheetsCfg.ClientID,
					ClientSecret:    sheetsCfg.ClientSecret,
					TokenFile:       sheetsCfg.TokenFile,
					SpreadsheetID:   sheetsCfg.SpreadsheetID,
					SpreadsheetName: sheetsCfg.SpreadsheetName,
				})
				if writerErr != nil {
					return writerErr
				}

				spreadsheetID, writeErr := writer.Write(ctx, sorted)
				if writeErr != nil {
					return writeErr
				}
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d operations to spreadsheet %s", len(sorted), spreadsheetID)))
			}

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "write CSV to this file")
	cmd.Flags().BoolVar(&toSheets, "sheets", false, "export to Google Sheets")

	return cmd
}
