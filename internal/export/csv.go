// Package export renders operation listings to external formats: CSV for
// local files and Google Sheets for shared reports.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/model"
)

var csvHeader = []string{"Date", "Type", "Category", "Account", "Place", "Description", "Amount"}

// WriteCSV writes operations as CSV rows, one operation per row, in the
// order given.
func WriteCSV(w io.Writer, ops []model.ListOperation) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, op := range ops {
		if err := cw.Write(csvRow(op)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(op model.ListOperation) []string {
	category := ""
	if op.Category != nil {
		category = op.Category.Name
	}
	place := ""
	if op.Place != nil {
		place = op.Place.Description
	}

	return []string{
		op.OperationDate,
		DeriveType(op).Label(),
		category,
		AccountLabel(op),
		place,
		op.Description,
		SignedAmount(op).String(),
	}
}

// DeriveType reconstructs the operation type from a listing row. The
// listing shape carries accounts and amounts rather than the type itself.
func DeriveType(op model.ListOperation) model.OperationType {
	switch {
	case op.AccountIncome != nil && op.AccountOutcome != nil:
		return model.OperationTransfer
	case op.AccountOutcome != nil:
		return model.OperationOutcome
	default:
		return model.OperationIncome
	}
}

// AccountLabel names the account(s) involved, source first for transfers.
func AccountLabel(op model.ListOperation) string {
	switch {
	case op.AccountIncome != nil && op.AccountOutcome != nil:
		return op.AccountOutcome.Name + " -> " + op.AccountIncome.Name
	case op.AccountOutcome != nil:
		return op.AccountOutcome.Name
	case op.AccountIncome != nil:
		return op.AccountIncome.Name
	default:
		return ""
	}
}

// SignedAmount is the net effect of the operation: income positive,
// outcome negative. Transfers net to the difference between the sides,
// which is zero unless the amounts differ (e.g. currency conversion).
func SignedAmount(op model.ListOperation) decimal.Decimal {
	return op.Income.Sub(op.Outcome)
}
