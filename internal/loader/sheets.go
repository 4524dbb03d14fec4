package loader

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsLoader reads a worksheet through the Google Sheets API using a
// service account, mirroring the spreadsheet the reports were always
// driven from.
type SheetsLoader struct {
	service       *sheets.Service
	spreadsheetID string
	worksheet     string
	logger        *slog.Logger
}

// NewSheetsLoader builds a read-only Sheets client from service
// account JSON.
func NewSheetsLoader(ctx context.Context, credentialsJSON []byte, spreadsheetID, worksheet string, logger *slog.Logger) (*SheetsLoader, error) {
	service, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsLoader{
		service:       service,
		spreadsheetID: spreadsheetID,
		worksheet:     worksheet,
		logger:        logger.With(slog.String("component", "sheets_loader")),
	}, nil
}

// Load fetches the whole worksheet and maps it header-first into
// records.
func (l *SheetsLoader) Load(ctx context.Context) ([]map[string]string, error) {
	resp, err := l.service.Spreadsheets.Values.Get(l.spreadsheetID, l.worksheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", l.worksheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = fmt.Sprintf("%v", value)
		}
		rows = append(rows, cells)
	}

	records := mapRows(rows)
	l.logger.InfoContext(ctx, "worksheet loaded",
		slog.String("spreadsheet_id", l.spreadsheetID),
		slog.String("worksheet", l.worksheet),
		slog.Int("rows", len(records)),
	)
	return records, nil
}
