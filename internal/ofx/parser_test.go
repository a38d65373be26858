package ofx

import (
	"strings"
	"testing"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/spending"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
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
<CURDEF>GBP
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301120000[0:GMT]
<DTEND>20240314120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240313120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024031301
<NAME>COFFEE SHOP LONDON
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240310120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024031001
<NAME>SUPERMARKET
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240312120000[0:GMT]
<TRNAMT>40.00
<FITID>2024031201
<NAME>REFUND
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240314120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseFile(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	// OFX debits are negative; the model uses positive for money out.
	assert.Equal(t, "2024031301", txns[0].ID)
	assert.Equal(t, "COFFEE SHOP LONDON", txns[0].Name)
	assert.Equal(t, "1234567890", txns[0].AccountID)
	assert.InDelta(t, 25.50, txns[0].Amount, 1e-9)
	assert.InDelta(t, 125.00, txns[1].Amount, 1e-9)
	// Credits come out negative and are excluded from aggregation later.
	assert.InDelta(t, -40.00, txns[2].Amount, 1e-9)
}

func TestParseFile_FeedsAggregator(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseFile(strings.NewReader(sampleBankOFX))
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	snap := spending.Aggregate(txns, now)

	assert.InDelta(t, 0, snap.Daily, 1e-9)
	assert.InDelta(t, 150.50, snap.Weekly, 1e-9)
	assert.InDelta(t, 150.50, snap.Monthly, 1e-9)
}

func TestParseFile_LeadingWhitespace(t *testing.T) {
	parser := NewParser()

	txns, err := parser.ParseFile(strings.NewReader("\n\n" + sampleBankOFX))
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestParseFile_Invalid(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(strings.NewReader("definitely not ofx"))
	require.Error(t, err)
}
