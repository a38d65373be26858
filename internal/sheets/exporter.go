package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/spending"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const sheetTitle = "Spending"

var headerRow = []any{"Exported At", "Daily", "Weekly", "Monthly"}

// SnapshotExporter appends spending snapshots to an external sheet.
type SnapshotExporter interface {
	Export(ctx context.Context, snap spending.Snapshot, at time.Time) error
}

// Exporter writes spending snapshots to a Google Sheets spreadsheet,
// one row per export.
type Exporter struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewExporter creates a Google Sheets exporter, running the OAuth2 flow
// if no saved token is available.
func NewExporter(ctx context.Context, config Config, logger *slog.Logger) (*Exporter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	token, err := GetOrCreateToken(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig(config).TokenSource(ctx, token))
	service, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Exporter{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Export appends one row with the rounded snapshot totals. The
// spreadsheet is created on first use when no ID is configured.
func (e *Exporter) Export(ctx context.Context, snap spending.Snapshot, at time.Time) error {
	spreadsheetID, err := e.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if err := e.ensureHeader(ctx, spreadsheetID); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rounded := snap.Rounded()
	values := &sheets.ValueRange{
		Values: [][]any{{
			at.Format(time.RFC3339),
			rounded.Daily,
			rounded.Weekly,
			rounded.Monthly,
		}},
	}

	_, err = e.service.Spreadsheets.Values.
		Append(spreadsheetID, sheetTitle+"!A:D", values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append snapshot row: %w", err)
	}

	e.logger.Info("exported spending snapshot",
		"spreadsheet_id", spreadsheetID,
		"daily", rounded.Daily,
		"weekly", rounded.Weekly,
		"monthly", rounded.Monthly)

	return nil
}

func (e *Exporter) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if e.config.SpreadsheetID != "" {
		_, err := e.service.Spreadsheets.Get(e.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", e.config.SpreadsheetID, err)
		}
		return e.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    e.config.SpreadsheetName,
			TimeZone: e.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: sheetTitle,
				},
			},
		},
	}

	created, err := e.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	e.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	e.config.SpreadsheetID = created.SpreadsheetId
	return created.SpreadsheetId, nil
}

// ensureHeader writes the header row if the sheet is still empty.
func (e *Exporter) ensureHeader(ctx context.Context, spreadsheetID string) error {
	resp, err := e.service.Spreadsheets.Values.
		Get(spreadsheetID, sheetTitle+"!A1:D1").
		Context(ctx).
		Do()
	if err != nil {
		return err
	}
	if len(resp.Values) > 0 {
		return nil
	}

	_, err = e.service.Spreadsheets.Values.
		Update(spreadsheetID, sheetTitle+"!A1:D1", &sheets.ValueRange{
			Values: [][]any{headerRow},
		}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}
