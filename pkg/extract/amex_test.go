package extract

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAmexQBO = `OFXHEADER:100
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
<DTSERVER>20250201120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>NOK
<CCACCTFROM>
<ACCTID>37123456789
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20250101120000[0:GMT]
<DTEND>20250131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250115120000[0:GMT]
<TRNAMT>-89.00
<FITID>2025011501
<NAME>STARBUCKS OSLO S
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250120120000[0:GMT]
<TRNAMT>450.00
<FITID>2025012001
<NAME>REFUND ELKJOP
<MEMO>RETURNED GOODS
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-2500.00
<DTASOF>20250131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestAmexExtract(t *testing.T) {
	var a Amex
	transactions, rowErrs, err := a.Extract([]byte(sampleAmexQBO))
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, transactions, 2)

	charge := transactions[0]
	assert.Equal(t, "STARBUCKS OSLO S", charge.Narration)
	assert.True(t, charge.Amount.Equal(decimal.RequireFromString("-89.00")), "got %s", charge.Amount)
	assert.Equal(t, "NOK", charge.Currency)
	assert.Equal(t, 2025, charge.Date.Year())
	assert.Equal(t, 15, charge.Date.Day())

	refund := transactions[1]
	assert.Equal(t, "REFUND ELKJOP RETURNED GOODS", refund.Narration)
	assert.True(t, refund.Amount.Equal(decimal.RequireFromString("450.00")), "got %s", refund.Amount)
}

func TestAmexExtractRejectsGarbage(t *testing.T) {
	var a Amex
	_, _, err := a.Extract([]byte("this is not an ofx file"))
	assert.Error(t, err)
}

func TestPreprocessFixesSloppySGML(t *testing.T) {
	fixed := preprocess("\n\nOFXHEADER:100\n<OFX>\n<STMTTRN\n</OFX>\n")
	assert.Contains(t, fixed, "<STMTTRN>")
	assert.True(t, len(fixed) > 0 && fixed[0] == 'O')
}
