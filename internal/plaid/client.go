// Package plaid provides a client for interacting with the Plaid API.
package plaid

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/common"
	"github.com/biggernumbers/biggernumbers/internal/model"
	"github.com/plaid/plaid-go/v20/plaid"
)

// Link token constants. These identify the application to Plaid Link and
// scope what a linking session may access.
const (
	clientName   = "BiggerNumbers"
	linkLanguage = "en"
	clientUserID = "user-id"
)

// Config holds Plaid API configuration.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // sandbox or production
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("%w: plaid client ID is required", common.ErrMissingConfig)
	}
	if c.Secret == "" {
		return fmt.Errorf("%w: plaid secret is required", common.ErrMissingConfig)
	}
	if c.Environment == "" {
		return fmt.Errorf("%w: plaid environment is required", common.ErrMissingConfig)
	}

	validEnvs := map[string]bool{
		"sandbox":    true,
		"production": true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("%w: plaid environment must be sandbox or production", common.ErrInvalidConfig)
	}

	return nil
}

// Client implements the Provider interface against the live Plaid API.
type Client struct {
	client      *plaid.APIClient
	logger      *slog.Logger
	environment string
}

// NewClient creates a new Plaid client with the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", cfg.ClientID)
	configuration.AddDefaultHeader("PLAID-SECRET", cfg.Secret)

	switch cfg.Environment {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	}

	return &Client{
		client:      plaid.NewAPIClient(configuration),
		environment: cfg.Environment,
		logger:      slog.Default().With("component", "plaid"),
	}, nil
}

// CreateLinkToken creates a Link token for Plaid Link initialization.
func (c *Client) CreateLinkToken(ctx context.Context) (string, error) {
	user := plaid.LinkTokenCreateRequestUser{
		ClientUserId: clientUserID,
	}

	request := plaid.NewLinkTokenCreateRequest(
		clientName,
		linkLanguage,
		[]plaid.CountryCode{plaid.COUNTRYCODE_GB},
		user,
	)
	request.SetProducts([]plaid.Products{plaid.PRODUCTS_TRANSACTIONS})

	// OAuth banks require the redirect URI registered in the Plaid
	// dashboard; sandbox works without one.
	if c.environment == "production" {
		request.SetRedirectUri("https://localhost:8080/")
	}

	resp, _, err := c.client.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return "", wrapProviderError("failed to create link token", err)
	}

	return resp.GetLinkToken(), nil
}

// ExchangePublicToken exchanges a public token from Link for an access
// token. The exchange is single-use and never retried.
func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	request := plaid.NewItemPublicTokenExchangeRequest(publicToken)
	resp, _, err := c.client.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		if plaidError := extractPlaidError(err); plaidError != nil {
			return "", fmt.Errorf("%w: %s - %s", common.ErrExchangeFailed, plaidError.ErrorCode, plaidError.ErrorMessage)
		}
		return "", fmt.Errorf("%w: %v", common.ErrExchangeFailed, err)
	}

	return resp.GetAccessToken(), nil
}

// GetTransactions fetches transactions from Plaid within the specified
// date range for the linked accounts behind accessToken.
func (c *Client) GetTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]model.Transaction, error) {
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	c.logger.Info("Fetching transactions from Plaid",
		"start_date", startDate.Format("2006-01-02"),
		"end_date", endDate.Format("2006-01-02"))

	var allTransactions []plaid.Transaction
	offset := int32(0)
	const pageSize = int32(500) // Plaid's max page size

	for {
		request := plaid.NewTransactionsGetRequest(
			accessToken,
			startDate.Format("2006-01-02"),
			endDate.Format("2006-01-02"),
		)
		options := plaid.TransactionsGetRequestOptions{
			Count:  plaid.PtrInt32(pageSize),
			Offset: plaid.PtrInt32(offset),
		}
		request.SetOptions(options)

		resp, _, err := c.client.PlaidApi.TransactionsGet(ctx).TransactionsGetRequest(*request).Execute()
		if err != nil {
			return nil, wrapProviderError("failed to fetch transactions", err)
		}

		page := resp.GetTransactions()
		allTransactions = append(allTransactions, page...)

		c.logger.Debug("Fetched transaction batch",
			"count", len(page),
			"offset", offset,
			"total", resp.GetTotalTransactions())

		if len(page) < int(pageSize) {
			break
		}
		offset += pageSize
	}

	c.logger.Info("Fetched all transactions", "count", len(allTransactions))

	transactions := make([]model.Transaction, 0, len(allTransactions))
	for _, pt := range allTransactions {
		transactions = append(transactions, c.mapPlaidTransaction(pt))
	}

	return transactions, nil
}

// mapPlaidTransaction converts a Plaid transaction to our internal model.
func (c *Client) mapPlaidTransaction(pt plaid.Transaction) model.Transaction {
	date, err := time.Parse("2006-01-02", pt.GetDate())
	if err != nil {
		c.logger.Error("Failed to parse transaction date", "date", pt.GetDate(), "error", err)
		date = time.Now()
	}

	merchantName := pt.GetMerchantName()
	if merchantName == "" {
		merchantName = pt.GetName()
	}

	return model.Transaction{
		Date:         date,
		ID:           pt.GetTransactionId(),
		Name:         pt.GetName(),
		MerchantName: merchantName,
		AccountID:    pt.GetAccountId(),
		Amount:       pt.GetAmount(),
		Pending:      pt.GetPending(),
	}
}

// wrapProviderError converts a plaid-go error into the application's
// provider error type, keeping the provider's code and message verbatim.
func wrapProviderError(msg string, err error) error {
	if plaidError := extractPlaidError(err); plaidError != nil {
		return fmt.Errorf("%s: %w", msg, &common.ProviderError{
			Code:    plaidError.ErrorCode,
			Message: plaidError.ErrorMessage,
		})
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// extractPlaidError attempts to extract a Plaid error from a generic error.
func extractPlaidError(err error) *plaid.PlaidError {
	plaidErr, convErr := plaid.ToPlaidError(err)
	if convErr != nil {
		return nil
	}
	return &plaidErr
}

// Ensure Client implements the Provider interface.
var _ Provider = (*Client)(nil)
