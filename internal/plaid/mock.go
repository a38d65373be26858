package plaid

import (
	"context"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/model"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	// Functions that can be set by tests to control behavior
	CreateLinkTokenFn     func(ctx context.Context) (string, error)
	ExchangePublicTokenFn func(ctx context.Context, publicToken string) (string, error)
	GetTransactionsFn     func(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error)

	// Call tracking
	CreateLinkTokenCalls     int
	ExchangePublicTokenCalls []string
	GetTransactionsCalls     []GetTransactionsCall
}

// GetTransactionsCall records the parameters of a GetTransactions call.
type GetTransactionsCall struct {
	AccessToken string
	StartDate   time.Time
	EndDate     time.Time
}

// NewMockProvider creates a new mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// CreateLinkToken implements Provider.CreateLinkToken.
func (m *MockProvider) CreateLinkToken(ctx context.Context) (string, error) {
	m.CreateLinkTokenCalls++

	if m.CreateLinkTokenFn != nil {
		return m.CreateLinkTokenFn(ctx)
	}
	return "link-sandbox-mock", nil
}

// ExchangePublicToken implements Provider.ExchangePublicToken.
func (m *MockProvider) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	m.ExchangePublicTokenCalls = append(m.ExchangePublicTokenCalls, publicToken)

	if m.ExchangePublicTokenFn != nil {
		return m.ExchangePublicTokenFn(ctx, publicToken)
	}
	return "access-sandbox-mock", nil
}

// GetTransactions implements Provider.GetTransactions.
func (m *MockProvider) GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error) {
	m.GetTransactionsCalls = append(m.GetTransactionsCalls, GetTransactionsCall{
		AccessToken: accessToken,
		StartDate:   startDate,
		EndDate:     endDate,
	})

	if m.GetTransactionsFn != nil {
		return m.GetTransactionsFn(ctx, accessToken, startDate, endDate)
	}
	return []model.Transaction{}, nil
}

// Reset clears all call tracking.
func (m *MockProvider) Reset() {
	m.CreateLinkTokenCalls = 0
	m.ExchangePublicTokenCalls = nil
	m.GetTransactionsCalls = nil
}

// Ensure MockProvider implements the Provider interface.
var _ Provider = (*MockProvider)(nil)
