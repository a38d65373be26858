package plaid

import (
	"context"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/model"
)

// Provider defines the contract with the aggregation provider. It covers
// the three operations the server needs: minting link tokens, exchanging a
// public token for an access token, and fetching raw transactions.
// The interface allows mocking in tests and swapping data sources.
type Provider interface {
	CreateLinkToken(ctx context.Context) (string, error)
	ExchangePublicToken(ctx context.Context, publicToken string) (string, error)
	GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error)
}
