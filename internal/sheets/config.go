// Package sheets exports spending snapshots to a Google Sheets spreadsheet.
package sheets

import (
	"fmt"
	"os"
)

// Config holds the configuration for the Google Sheets exporter.
type Config struct {
	ClientID        string
	ClientSecret    string
	TokenFile       string
	SpreadsheetID   string
	SpreadsheetName string
	TimeZone        string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "BiggerNumbers Spending",
		TimeZone:        "Europe/London",
	}
}

// LoadFromEnv fills in credentials from environment variables.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("GOOGLE_SHEETS_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"); v != "" {
		c.SpreadsheetID = v
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("missing Google Sheets OAuth2 credentials")
	}
	if c.SpreadsheetName == "" {
		return fmt.Errorf("spreadsheet name cannot be empty")
	}
	return nil
}
