// Package drive uploads the generated report to Google Drive. The
// report replaces the content of an existing Drive file in place, so
// the shared link consumers already have keeps working.
package drive

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Uploader replaces the content of a fixed Drive file.
type Uploader struct {
	service *drive.Service
	logger  *slog.Logger
}

// NewUploader creates a Drive uploader authenticated with service
// account JSON credentials.
func NewUploader(ctx context.Context, credentials []byte, logger *slog.Logger) (*Uploader, error) {
	service, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentials),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Uploader{
		service: service,
		logger:  logger.With(slog.String("component", "drive_uploader")),
	}, nil
}

// Upload replaces the content of the Drive file identified by fileID
// with the local HTML file at path.
func (u *Uploader) Upload(ctx context.Context, fileID, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	updated, err := u.service.Files.Update(fileID, &drive.File{}).
		Media(f, googleapi.ContentType("text/html")).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update drive file %s: %w", fileID, err)
	}

	u.logger.Info("report uploaded",
		slog.String("file_id", updated.Id),
		slog.String("name", updated.Name),
		slog.String("path", path),
		slog.String("duration", time.Since(start).String()),
	)
	return nil
}
