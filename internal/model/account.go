package model

import "github.com/shopspring/decimal"

// AccountType identifies the kind of account.
type AccountType string

const (
	// AccountCash is physical cash.
	AccountCash AccountType = "CASH"
	// AccountCard is a debit card.
	AccountCard AccountType = "CARD"
	// AccountBank is a regular bank account.
	AccountBank AccountType = "BANK_ACCOUNT"
	// AccountCredit is a credit card or line of credit.
	AccountCredit AccountType = "CREDIT"
	// AccountDeposit is a term deposit.
	AccountDeposit AccountType = "DEPOSIT"
)

// AccountTypes lists all valid account types.
var AccountTypes = []AccountType{
	AccountCash,
	AccountCard,
	AccountBank,
	AccountCredit,
	AccountDeposit,
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountCash, AccountCard, AccountBank, AccountCredit, AccountDeposit:
		return true
	}
	return false
}

// Label returns the human-readable name shown in listings.
func (t AccountType) Label() string {
	switch t {
	case AccountCash:
		return "Cash"
	case AccountCard:
		return "Card"
	case AccountBank:
		return "Bank account"
	case AccountCredit:
		return "Credit"
	case AccountDeposit:
		return "Deposit"
	}
	return string(t)
}

// Account is the full account detail as returned by the backend.
type Account struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Type                  AccountType     `json:"type"`
	Currency              Currency        `json:"currency"`
	CreditLimit           decimal.Decimal `json:"creditLimit"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
	IncludeInTotalBalance bool            `json:"includeInTotalBalance"`
	DefaultAccount        bool            `json:"defaultAccount"`
	Bank                  *Bank           `json:"bank"`
	CardNumber1           *string         `json:"cardNumber1"`
	CardNumber2           *string         `json:"cardNumber2"`
	CardNumber3           *string         `json:"cardNumber3"`
	CardNumber4           *string         `json:"cardNumber4"`
	SavingsAccount        bool            `json:"savingsAccount"`
	ArchiveAccount        bool            `json:"archiveAccount"`
}

// AccountInput is the payload for creating or updating an account.
type AccountInput struct {
	Name                  string          `json:"name"`
	Type                  AccountType     `json:"type"`
	Currency              IDRef           `json:"currency"`
	CreditLimit           decimal.Decimal `json:"creditLimit"`
	CurrentBalance        decimal.Decimal `json:"currentBalance"`
	IncludeInTotalBalance bool            `json:"includeInTotalBalance"`
	DefaultAccount        bool            `json:"defaultAccount"`
	Bank                  *IDRef          `json:"bank"`
	CardNumber1           *string         `json:"cardNumber1"`
	CardNumber2           *string         `json:"cardNumber2"`
	CardNumber3           *string         `json:"cardNumber3"`
	CardNumber4           *string         `json:"cardNumber4"`
	SavingsAccount        bool            `json:"savingsAccount"`
	ArchiveAccount        bool            `json:"archiveAccount"`
}

// ListAccount is one row of the account listing.
type ListAccount struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           AccountType     `json:"type"`
	Currency       Currency        `json:"currency"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	BankIcon       *string         `json:"bankIcon"`
	SavingsAccount bool            `json:"savingsAccount"`
	ArchiveAccount bool            `json:"archiveAccount"`
}

// SimpleAccount is the minimal account reference embedded in other
// responses.
type SimpleAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
