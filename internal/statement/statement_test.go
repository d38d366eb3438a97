package statement

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/storksoft/cashtrack/internal/model"
	"github.com/storksoft/cashtrack/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>COFFEE HOUSE #12
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>1500.00
<FITID>2024012001
<NAME>PAYROLL DEPOSIT
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestOFXParser_Parse(t *testing.T) {
	parser := NewOFXParser()

	entries, err := parser.Parse(strings.NewReader(sampleOFX))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.False(t, entries[0].Credit)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "COFFEE HOUSE #12", entries[0].Description)
	assert.Equal(t, "2024-01-15", entries[0].Date.Format("2006-01-02"))

	assert.True(t, entries[1].Credit)
	assert.True(t, entries[1].Amount.Equal(decimal.RequireFromString("1500.00")))
}

func TestOFXParser_PreprocessFixesSeverityCase(t *testing.T) {
	parser := NewOFXParser()
	mangled := strings.ReplaceAll(sampleOFX, "<SEVERITY>INFO", "<SEVERITY>Info</SEVERITY>")

	_, err := parser.Parse(strings.NewReader(mangled))
	assert.NoError(t, err)
}

func TestParseCSV(t *testing.T) {
	input := `date,amount,description
2024-01-15,-25.50,Coffee House
2024-01-20,1500.00,Payroll
01/25/2024,-10,
`

	entries, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.False(t, entries[0].Credit)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("25.50")))
	assert.Equal(t, "Coffee House", entries[0].Description)

	assert.True(t, entries[1].Credit)
	assert.Equal(t, "2024-01-25", entries[2].Date.Format("2006-01-02"))
}

func TestParseCSV_BadRow(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("2024-01-15,not-a-number,Oops\n"))
	assert.Error(t, err)

	// A bad date past the header row is an error, not a silent skip.
	_, err = ParseCSV(strings.NewReader("date,amount\nalso-not-a-date,5\n"))
	assert.Error(t, err)
}

func TestToDrafts(t *testing.T) {
	entries, err := ParseCSV(strings.NewReader("2024-01-15,-25.50,Coffee\n2024-01-20,1500,Payroll\n"))
	require.NoError(t, err)

	target := DraftTarget{
		AccountID:         "acc-1",
		IncomeCategoryID:  "cat-income",
		OutcomeCategoryID: "cat-expense",
	}
	drafts := ToDrafts(entries, target)
	require.Len(t, drafts, 2)

	assert.Equal(t, model.OperationOutcome, drafts[0].Type)
	assert.Equal(t, "acc-1", drafts[0].SourceAccountID)
	assert.Equal(t, "cat-expense", drafts[0].CategoryID)
	assert.Empty(t, drafts[0].DestinationAccountID)

	assert.Equal(t, model.OperationIncome, drafts[1].Type)
	assert.Equal(t, "acc-1", drafts[1].DestinationAccountID)
	assert.Equal(t, "cat-income", drafts[1].CategoryID)

	// Every imported draft passes the regular submission validation.
	for _, draft := range drafts {
		_, err := rules.BuildPayload(draft)
		assert.NoError(t, err)
	}
}
