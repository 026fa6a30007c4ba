package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSink appends rows to worksheets of one Google spreadsheet using a
// service account. This is the primary destination the dashboard reads.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
}

var _ Sink = (*SheetsSink)(nil)

func NewSheetsSink(ctx context.Context, credentialsFile, spreadsheetID string, logger *slog.Logger) (*SheetsSink, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("could not read service account credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("could not parse service account credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("could not create sheets service: %w", err)
	}

	logger.Info("authenticated with Google Sheets", "spreadsheet", spreadsheetID)
	return &SheetsSink{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

func (s *SheetsSink) EnsureWorksheet(ctx context.Context, worksheet string, header []string) error {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not read spreadsheet metadata: %w", err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == worksheet {
			return nil
		}
	}

	s.logger.Info("worksheet not found, creating it", "worksheet", worksheet)
	_, err = s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: worksheet},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not create worksheet %s: %w", worksheet, err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	return s.AppendRows(ctx, worksheet, [][]any{headerRow})
}

func (s *SheetsSink) AppendRows(ctx context.Context, worksheet string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("could not append %d rows to %s: %w", len(rows), worksheet, err)
	}

	return nil
}
