package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/haugli/kontobean/pkg/models"
)

// Amex parses the American Express QBO download, an OFX dialect. Amounts
// arrive with the sign convention already applied: charges negative,
// refunds positive.
type Amex struct{}

func (a *Amex) Format() Format {
	return AmexOFX
}

var ofxTagFix = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)

// preprocess fixes the SGML sloppiness real exports ship with: leading
// whitespace before the header and opening tags missing their closing
// bracket.
func preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	return ofxTagFix.ReplaceAllString(content, "$1>")
}

func (a *Amex) Extract(data []byte) ([]models.Transaction, []RowError, error) {
	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocess(string(data))))
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing OFX file: %w", err)
	}

	var transactions []models.Transaction

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		currency := stmt.CurDef.String()
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txn, err := convertOFX(ofxTx, currency)
			if err != nil {
				return nil, nil, err
			}
			transactions = append(transactions, txn)
		}
	}

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		currency := stmt.CurDef.String()
		for _, ofxTx := range stmt.BankTranList.Transactions {
			txn, err := convertOFX(ofxTx, currency)
			if err != nil {
				return nil, nil, err
			}
			transactions = append(transactions, txn)
		}
	}

	if len(transactions) == 0 {
		return nil, nil, fmt.Errorf("no statement transactions in OFX file")
	}

	return transactions, nil, nil
}

func convertOFX(ofxTx ofxgo.Transaction, currency string) (models.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return models.Transaction{}, fmt.Errorf("bad OFX amount for %q: %w", ofxTx.Name, err)
	}

	narration := strings.TrimSpace(string(ofxTx.Name))
	if memo := strings.TrimSpace(string(ofxTx.Memo)); memo != "" && memo != narration {
		narration = strings.TrimSpace(narration + " " + memo)
	}

	txn := models.Transaction{
		Date:      ofxTx.DtPosted.Time,
		Narration: narration,
		Amount:    amount,
		Currency:  currency,
	}
	if ofxTx.Payee != nil {
		txn.Payee = strings.TrimSpace(string(ofxTx.Payee.Name))
	}
	return txn, nil
}
