package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/storksoft/cashtrack/internal/export"
	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/rules"
)

// RenderOperations writes the operation listing grouped by calendar day,
// newest day first, with incomes and expenses color-coded.
func RenderOperations(w io.Writer, ops []model.ListOperation) {
	if len(ops) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No operations found."))
		return
	}

	sorted := rules.SortByDateDescending(ops)
	groups := rules.GroupByCalendarDay(sorted)

	for i, group := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, DayHeaderStyle.Render(group.Label()))

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, op := range group.Operations {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n",
				SubtleStyle.Render(op.ID),
				operationTypeCell(op),
				categoryCell(op),
				descriptionCell(op),
				amountCell(op))
		}
		_ = tw.Flush()
	}
}

func operationTypeCell(op model.ListOperation) string {
	return export.DeriveType(op).Label()
}

func categoryCell(op model.ListOperation) string {
	if op.Category == nil {
		return SubtleStyle.Render("(uncategorized)")
	}
	return op.Category.Name
}

func descriptionCell(op model.ListOperation) string {
	desc := op.Description
	if op.Place != nil && op.Place.Description != "" {
		if desc == "" {
			desc = op.Place.Description
		} else {
			desc += " @ " + op.Place.Description
		}
	}
	if desc == "" {
		return SubtleStyle.Render(export.AccountLabel(op))
	}
	return desc
}

func amountCell(op model.ListOperation) string {
	amount := export.SignedAmount(op)
	switch {
	case amount.IsPositive():
		return IncomeStyle.Render("+" + amount.String())
	case amount.IsNegative():
		return OutcomeStyle.Render(amount.String())
	default:
		return amount.String()
	}
}

// RenderAccounts writes the account listing as a table.
func RenderAccounts(w io.Writer, accounts []model.ListAccount) {
	if len(accounts) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No accounts found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, "ID", "Name", "Type", "Balance", "Currency")
	for _, account := range accounts {
		balance := account.CurrentBalance.String()
		if account.Currency.Symbol != "" {
			balance += " " + account.Currency.Symbol
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			account.ID,
			account.Name,
			account.Type.Label(),
			balance,
			account.Currency.DisplayName)
	}
	_ = tw.Flush()
}

// RenderCategories writes the category listing as a table, marking which
// operation directions each category applies to.
func RenderCategories(w io.Writer, categories []model.ListCategory) {
	if len(categories) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No categories found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, "ID", "Name", "Income", "Expense")
	for _, category := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			category.ID,
			category.Name,
			yesNo(category.ForIncome),
			yesNo(category.ForOutcome))
	}
	_ = tw.Flush()
}

// RenderPlaces writes place search results.
func RenderPlaces(w io.Writer, places []model.SimplePlace) {
	if len(places) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No places found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, "ID", "Description")
	for _, place := range places {
		fmt.Fprintf(tw, "%s\t%s\n", place.ID, place.Description)
	}
	_ = tw.Flush()
}

// RenderUser writes the user profile.
func RenderUser(w io.Writer, user model.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", BoldStyle.Render("Username:"), user.Username)
	fmt.Fprintf(tw, "%s\t%s\n", BoldStyle.Render("Email:"), user.Email)
	if name := fullName(user); name != "" {
		fmt.Fprintf(tw, "%s\t%s\n", BoldStyle.Render("Name:"), name)
	}
	_ = tw.Flush()
}

func fullName(user model.User) string {
	var parts []string
	if user.FirstName != nil && *user.FirstName != "" {
		parts = append(parts, *user.FirstName)
	}
	if user.LastName != nil && *user.LastName != "" {
		parts = append(parts, *user.LastName)
	}
	return strings.Join(parts, " ")
}

// RenderBanks writes the bank reference listing.
func RenderBanks(w io.Writer, banks []model.Bank) {
	if len(banks) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No banks found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, "ID", "Name", "Country")
	for _, bank := range banks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", bank.ID, bank.DisplayName, bank.Country)
	}
	_ = tw.Flush()
}

// RenderCurrencies writes the currency reference listing.
func RenderCurrencies(w io.Writer, currencies []model.Currency) {
	if len(currencies) == 0 {
		fmt.Fprintln(w, InfoStyle.Render("No currencies found."))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeHeader(tw, "ID", "Name", "Symbol")
	for _, currency := range currencies {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", currency.ID, currency.DisplayName, currency.Symbol)
	}
	_ = tw.Flush()
}

func writeHeader(tw *tabwriter.Writer, columns ...string) {
	styled := make([]string, len(columns))
	dashes := make([]string, len(columns))
	for i, column := range columns {
		styled[i] = BoldStyle.Render(column)
		dashes[i] = strings.Repeat("-", len(column))
	}
	fmt.Fprintln(tw, strings.Join(styled, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
}

func yesNo(b bool) string {
	if b {
		return SuccessStyle.Render("yes")
	}
	return SubtleStyle.Render("no")
}
