package model

import "github.com/shopspring/decimal"

// OperationType identifies the kind of financial operation.
type OperationType string

const (
	// OperationIncome represents money arriving from an external source.
	OperationIncome OperationType = "INCOME"
	// OperationOutcome represents money leaving an account (an expense).
	OperationOutcome OperationType = "OUTCOME"
	// OperationTransfer represents money moving between two tracked accounts.
	OperationTransfer OperationType = "TRANSFER"
	// OperationOwn represents money arriving into an account without a
	// tracked source (e.g., an external deposit).
	OperationOwn OperationType = "OWN"
)

// OperationTypes lists all valid operation types in display order.
var OperationTypes = []OperationType{
	OperationOutcome,
	OperationIncome,
	OperationTransfer,
	OperationOwn,
}

// Valid reports whether t is one of the known operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OperationIncome, OperationOutcome, OperationTransfer, OperationOwn:
		return true
	}
	return false
}

// Label returns the human-readable name shown in listings.
func (t OperationType) Label() string {
	switch t {
	case OperationIncome:
		return "Income"
	case OperationOutcome:
		return "Expense"
	case OperationTransfer:
		return "Transfer"
	case OperationOwn:
		return "Own"
	}
	return string(t)
}

// OperationInput is the submission payload for creating or updating an
// operation. The backend expects the irrelevant account/amount side to be
// absent, not zero.
type OperationInput struct {
	Category       IDRef          `json:"category"`
	AccountOutcome *IDRef         `json:"accountOutcome"`
	AccountIncome  *IDRef         `json:"accountIncome"`
	OperationType  OperationType  `json:"operationType"`
	OperationDate  string         `json:"operationDate"`
	Description    string         `json:"description"`
	Place          *IDRef         `json:"place"`
	Income         *string        `json:"income"`
	Outcome        *string        `json:"outcome"`
}

// ListOperation is one row of the operation listing as returned by the
// backend.
type ListOperation struct {
	ID             string          `json:"id"`
	Category       *SimpleCategory `json:"category"`
	AccountOutcome *SimpleAccount  `json:"accountOutcome"`
	AccountIncome  *SimpleAccount  `json:"accountIncome"`
	OperationDate  string          `json:"operationDate"`
	Description    string          `json:"description"`
	Place          *SimplePlace    `json:"place"`
	Income         decimal.Decimal `json:"income"`
	Outcome        decimal.Decimal `json:"outcome"`
	Created        string          `json:"created"`
	Updated        string          `json:"updated"`
}

// SimpleOperation is the backend's acknowledgement shape for a created or
// updated operation.
type SimpleOperation struct {
	ID             string          `json:"id"`
	Category       *SimpleCategory `json:"category"`
	AccountOutcome *SimpleAccount  `json:"accountOutcome"`
	AccountIncome  *SimpleAccount  `json:"accountIncome"`
	OperationDate  string          `json:"operationDate"`
	Description    string          `json:"description"`
	Place          *SimplePlace    `json:"place"`
	Income         decimal.Decimal `json:"income"`
	Outcome        decimal.Decimal `json:"outcome"`
	Created        string          `json:"created"`
	Updated        string          `json:"updated"`
}

// DateRangeFilter bounds a filter by operation date. Either bound may be
// nil for an open-ended range.
type DateRangeFilter struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

// CategoryFilter includes or excludes a set of categories.
type CategoryFilter struct {
	CategoryIDs []string `json:"categoryIds"`
	Include     bool     `json:"include"`
}

// OperationFilter describes which operations to retrieve. A zero value
// means "no filter" and must return the same result set as the unfiltered
// listing.
type OperationFilter struct {
	DateRange      *DateRangeFilter `json:"dateRange"`
	AccountIDs     []string         `json:"accountIds"`
	CategoryFilter *CategoryFilter  `json:"categoryFilter"`
	NotProcessed   *bool            `json:"notProcessed"`
	OperationTypes []OperationType  `json:"operationTypes"`
}

// IsEmpty reports whether the filter applies no criteria at all.
func (f OperationFilter) IsEmpty() bool {
	return f.DateRange == nil &&
		f.AccountIDs == nil &&
		f.CategoryFilter == nil &&
		f.NotProcessed == nil &&
		f.OperationTypes == nil
}
