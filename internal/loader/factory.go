package loader

import (
	"context"
	"fmt"
	"log/slog"

	"customerpulse/internal/config"
)

// FromConfig builds the loader matching the configured source. A local
// workbook path wins over a spreadsheet ID so operators can point a
// deployed binary at an exported file without touching credentials.
func FromConfig(ctx context.Context, source config.SourceConfig, logger *slog.Logger) (Loader, error) {
	if source.WorkbookPath != "" {
		return NewWorkbookLoader(source.WorkbookPath, source.Worksheet, logger), nil
	}

	credentials, err := source.Credentials()
	if err != nil {
		return nil, fmt.Errorf("failed to load sheets credentials: %w", err)
	}
	return NewSheetsLoader(ctx, credentials, source.SpreadsheetID, source.Worksheet, logger)
}
