// Package statement parses bank statements into operation drafts so a
// fresh account's history can be bulk-loaded through the regular
// submission path.
package statement

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

// Entry is one statement line, direction-normalized: Amount is always
// positive and Credit tells whether money arrived or left.
type Entry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Credit      bool
}

// OFXParser parses OFX/QFX statement files.
type OFXParser struct{}

// NewOFXParser creates a new OFX parser.
func NewOFXParser() *OFXParser {
	return &OFXParser{}
}

// preprocess fixes common formatting issues in OFX files before handing
// them to the parser: stray leading whitespace, mixed-case SEVERITY
// values, and SGML tags missing their closing bracket.
func (p *OFXParser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse reads an OFX/QFX statement and returns its entries. Bank and
// credit-card statements are both supported; statements that fail to
// decode are skipped with a warning rather than aborting the whole file.
func (p *OFXParser) Parse(reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, convertTransaction(tx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, tx := range stmt.BankTranList.Transactions {
				entries = append(entries, convertTransaction(tx))
			}
		}
	}

	slog.Info("Parsed OFX statement",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// convertTransaction normalizes one OFX transaction. OFX amounts are
// signed: negative means money left the account.
func convertTransaction(tx ofxgo.Transaction) Entry {
	amount, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
	if err != nil {
		amount = decimal.Zero
	}

	credit := amount.IsPositive()
	if amount.IsNegative() {
		amount = amount.Neg()
	}

	return Entry{
		Date:        tx.DtPosted.Time,
		Description: extractDescription(tx),
		Amount:      amount,
		Credit:      credit,
	}
}

// extractDescription picks the most useful description from OFX data,
// preferring the payee name over the raw NAME field.
func extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic to be
// worth keeping over the memo.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
