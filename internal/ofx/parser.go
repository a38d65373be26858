// Package ofx parses OFX/QFX bank statements so spending can be computed
// offline, without a provider connection.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/biggernumbers/biggernumbers/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile parses an OFX/QFX statement and returns its transactions with
// amounts normalized to the provider convention (positive = money out).
func (p *Parser) ParseFile(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	// Some banks emit leading blank lines before the OFX header.
	trimmed := strings.TrimLeft(string(content), " \t\r\n")

	resp, err := ofxgo.ParseResponse(strings.NewReader(trimmed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			accountID := string(stmt.BankAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, convertTransaction(ofxTx, accountID))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			accountID := string(stmt.CCAcctFrom.AcctID)
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, convertTransaction(ofxTx, accountID))
			}
		}
	}

	slog.Info("Parsed OFX file", "transactions", len(transactions))

	return transactions, nil
}

// convertTransaction converts an OFX transaction to the internal model.
// OFX amounts are negative for debits; the provider convention is the
// opposite, so the sign is flipped.
func convertTransaction(ofxTx ofxgo.Transaction, accountID string) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	name := string(ofxTx.Name)
	merchant := name
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		merchant = string(ofxTx.Payee.Name)
	}

	return model.Transaction{
		ID:           string(ofxTx.FiTID),
		Date:         ofxTx.DtPosted.Time,
		Name:         name,
		MerchantName: merchant,
		AccountID:    accountID,
		Amount:       -amount,
	}
}
