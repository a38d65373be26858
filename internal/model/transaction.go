// Package model defines the core value types shared across the application.
package model

import "time"

// Transaction represents a single financial transaction from any source.
// Amounts follow the provider convention: positive means money out.
type Transaction struct {
	Date         time.Time
	ID           string
	Name         string // Raw transaction description
	MerchantName string // Cleaned merchant name
	AccountID    string
	Amount       float64
	Pending      bool
}
