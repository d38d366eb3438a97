// Package rules implements the client-side rules for operation entry and
// filtering: which fields each operation type requires, how a draft becomes
// a submission payload, and how result listings are ordered and grouped.
package rules

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storksoft/cashtrack/internal/model"
)

// AccountRole identifies which side of an operation an account plays.
type AccountRole string

const (
	// RoleSource is the account money leaves.
	RoleSource AccountRole = "source"
	// RoleDestination is the account money arrives into.
	RoleDestination AccountRole = "destination"
)

// Validation errors returned by BuildPayload. All are values so callers can
// render field-specific messages without unwinding.
var (
	// ErrMissingCategory indicates no category was selected.
	ErrMissingCategory = errors.New("category is required")
	// ErrInvalidAmount indicates the amount is absent, non-numeric, or not
	// strictly positive.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrUnknownOperationType indicates a type outside the closed set.
	ErrUnknownOperationType = errors.New("unknown operation type")
)

// MissingAccountError indicates a required account is absent for the
// selected operation type. Role identifies which side is missing.
type MissingAccountError struct {
	Role AccountRole
	Type model.OperationType
}

func (e *MissingAccountError) Error() string {
	return fmt.Sprintf("%s account is required for %s operations", e.Role, e.Type)
}

// FieldRequirements describes which fields an operation type needs.
type FieldRequirements struct {
	NeedsSource      bool
	NeedsDestination bool
	NeedsPlace       bool
}

// RequiredFields maps an operation type to its required account roles.
// Expenses need a source, income and own deposits need a destination, and
// transfers need both. Places apply to everything except transfers.
func RequiredFields(t model.OperationType) FieldRequirements {
	return FieldRequirements{
		NeedsSource:      t == model.OperationOutcome || t == model.OperationTransfer,
		NeedsDestination: t == model.OperationIncome || t == model.OperationTransfer || t == model.OperationOwn,
		NeedsPlace:       t != model.OperationTransfer,
	}
}

// Draft holds the user-entered fields of an operation before validation.
// Amounts and the date stay as entered; BuildPayload normalizes them.
type Draft struct {
	Type                 model.OperationType
	CategoryID           string
	SourceAccountID      string
	DestinationAccountID string
	Amount               string
	ReceivedAmount       string
	Date                 string
	Description          string
	PlaceID              string
}

// BuildPayload validates a draft and produces the submission payload.
//
// Validation runs in order: category, per-type account requirements, then
// amount. For transfers the entered amount is the sent (source) side and a
// blank received amount defaults to it, so a same-currency transfer only
// needs one number. The calendar date is normalized to the start of the
// selected day in the local zone, serialized as an absolute instant.
func BuildPayload(d Draft) (*model.OperationInput, error) {
	if !d.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperationType, string(d.Type))
	}

	if strings.TrimSpace(d.CategoryID) == "" {
		return nil, ErrMissingCategory
	}

	req := RequiredFields(d.Type)
	if req.NeedsSource && strings.TrimSpace(d.SourceAccountID) == "" {
		return nil, &MissingAccountError{Role: RoleSource, Type: d.Type}
	}
	if req.NeedsDestination && strings.TrimSpace(d.DestinationAccountID) == "" {
		return nil, &MissingAccountError{Role: RoleDestination, Type: d.Type}
	}

	amount, err := parsePositiveAmount(d.Amount)
	if err != nil {
		return nil, err
	}

	received := amount
	if strings.TrimSpace(d.ReceivedAmount) != "" {
		received, err = parsePositiveAmount(d.ReceivedAmount)
		if err != nil {
			return nil, err
		}
	}

	when, err := normalizeDate(d.Date)
	if err != nil {
		return nil, err
	}

	input := &model.OperationInput{
		Category:      model.IDRef{ID: d.CategoryID},
		OperationType: d.Type,
		OperationDate: when,
		Description:   d.Description,
	}

	if req.NeedsSource {
		input.AccountOutcome = &model.IDRef{ID: d.SourceAccountID}
	}
	if req.NeedsDestination {
		input.AccountIncome = &model.IDRef{ID: d.DestinationAccountID}
	}
	if req.NeedsPlace && d.PlaceID != "" {
		input.Place = &model.IDRef{ID: d.PlaceID}
	}

	switch d.Type {
	case model.OperationIncome, model.OperationOwn:
		input.Income = amountString(amount)
	case model.OperationOutcome:
		input.Outcome = amountString(amount)
	case model.OperationTransfer:
		input.Outcome = amountString(amount)
		input.Income = amountString(received)
	}

	return input, nil
}

func parsePositiveAmount(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return amount, nil
}

func amountString(d decimal.Decimal) *string {
	s := d.String()
	return &s
}

// normalizeDate converts a "2006-01-02" calendar date to the start of that
// day in the local zone, serialized as an absolute instant. An empty date
// means today.
func normalizeDate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		now := time.Now()
		trimmed = now.Format("2006-01-02")
	}
	day, err := time.ParseInLocation("2006-01-02", trimmed, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return day.UTC().Format(time.RFC3339), nil
}
