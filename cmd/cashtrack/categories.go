package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/storksoft/cashtrack/internal/cli"
	"github.com/storksoft/cashtrack/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, create, update, and delete the categories operations are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(colorsCmd())
	cmd.AddCommand(iconsCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var forType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long: `Display all categories. With --for, only categories usable for that
operation type are shown, the same restriction applied when recording an
operation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			categories, err := fetchCategories(cmd.Context(), client)
			if err != nil {
				return err
			}

			if forType != "" {
				opType := model.OperationType(forType)
				if !opType.Valid() {
					return fmt.Errorf("unknown operation type %q", forType)
				}
				usable := categories[:0]
				for _, category := range categories {
					if category.UsableFor(opType) {
						usable = append(usable, category)
					}
				}
				categories = usable
			}

			cli.RenderCategories(os.Stdout, categories)
			return nil
		},
	}

	cmd.Flags().StringVar(&forType, "for", "", "only categories usable for this operation type (INCOME, OUTCOME, TRANSFER, OWN)")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		forIncome  bool
		forOutcome bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !forIncome && !forOutcome {
				return fmt.Errorf("a category must apply to income, expenses, or both; pass --income and/or --outcome")
			}

			client, err := newClient(cmd.Context())
			if err != nil {
				return err
			}

			created, err := client.CreateCategory(cmd.Context(), model.CategoryInput{
				Name:       args[0],
				ForIncome:  forIncome,
				ForOutcome: forOutcome,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&forIncome, "income", false, "usable for income operations")
	cmd.Flags().BoolVar(&forOutcome, "outcome", false, "usable for expense operations")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name       string
		forIncome  bool
		forOutcome bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Update a category. Unspecified fields keep their current values.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			client, err := newClient(ctx)
			if err != nil {
				return err
			}

			current, err := client.GetCategory(ctx, args[0])
			if err != nil {
				return err
			}

			input := model.CategoryInput{
				Name:             current.Name,
				ForIncome:        current.ForIncome,
				ForOutcome:       current.ForOutcome,
				MandatoryOutcome: current.MandatoryOutcome,
			}
			if current.Icon != nil {
				input.Icon = &model.IDRef{ID: current.Icon.ID}
			}
			if current.Color != nil {
				input.Color = &model.IDRef{ID: current.Color.ID}
			}

			if cmd.Flags().Changed("name") {
				input.Name = name
			}
			if cmd.Flags().Changed("income") {
				input.ForIncome = forIncome
			}
			if cmd.Flags().Changed("outcome") {
				input.ForOutcome = forOutcome
			}
			if !input.ForIncome && !input.ForOutcome {
				return fmt.Errorf("a category must apply to income, expenses, or both")
			}

			updated, err := client.UpdateCategory(ctx, args[0], input)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new category name")
	cmd.Flags().BoolVar(&forIncome, "income", false, "usable for income operations")
	cmd.Flags().BoolVar(&forOutcome, "outcome", false, "usable for expense operations")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				reader := cli.NewReader(os.Stdin)
				confirmed, err := reader.Confirm(ctx, os.Stdout, fmt.Sprintf("Delete category %s?", args[0]))
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

			if err := client.DeleteCategory(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted category " + args[0]))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}
