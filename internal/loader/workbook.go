package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// WorkbookLoader reads a local Excel workbook export with the same row
// contract as the Sheets loader, for offline runs and development
// against a downloaded copy of the sheet.
type WorkbookLoader struct {
	path      string
	worksheet string
	logger    *slog.Logger
}

// NewWorkbookLoader creates a loader for the given workbook file and
// worksheet name.
func NewWorkbookLoader(path, worksheet string, logger *slog.Logger) *WorkbookLoader {
	return &WorkbookLoader{
		path:      path,
		worksheet: worksheet,
		logger:    logger.With(slog.String("component", "workbook_loader")),
	}
}

// Load opens the workbook and maps the worksheet header-first into
// records.
func (l *WorkbookLoader) Load(ctx context.Context) ([]map[string]string, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", l.path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(l.worksheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", l.worksheet, err)
	}

	records := mapRows(rows)
	l.logger.InfoContext(ctx, "workbook loaded",
		slog.String("path", l.path),
		slog.String("worksheet", l.worksheet),
		slog.Int("rows", len(records)),
	)
	return records, nil
}
