// Package report renders a year snapshot as a self-contained static
// HTML page: the same stacked bar, pie chart and bucket listing the
// dashboard shows, suitable for uploading to a shared Drive file.
package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"customerpulse/internal/config"
	"customerpulse/pkg/contracts/domain"
)

//go:embed report.html.tmpl
var reportTemplate string

// Generator writes static HTML reports.
type Generator struct {
	cfg    config.ReportConfig
	logger *slog.Logger
	tmpl   *template.Template
}

// NewGenerator creates a report generator. The embedded template is
// parsed once; a parse failure is a build defect, hence the panic.
func NewGenerator(cfg config.ReportConfig, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "report_generator")),
		tmpl:   template.Must(template.New("report").Parse(reportTemplate)),
	}
}

// templateData is what the report template renders.
type templateData struct {
	Snapshot     domain.YearSnapshot
	SnapshotJSON template.JS
	GeneratedAt  string
}

// Render writes the report HTML for a snapshot to w.
func (g *Generator) Render(w io.Writer, snapshot domain.YearSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	return g.tmpl.Execute(w, templateData{
		Snapshot:     snapshot,
		SnapshotJSON: template.JS(raw),
		GeneratedAt:  snapshot.GeneratedAt.Format("2006-01-02 15:04"),
	})
}

// Generate renders the snapshot into the configured output file and
// returns the written path.
func (g *Generator) Generate(snapshot domain.YearSnapshot) (string, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := filepath.Join(g.cfg.OutputDir, g.cfg.FileName)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	start := time.Now()
	if err := g.Render(f, snapshot); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	g.logger.Info("report written",
		slog.String("path", outPath),
		slog.Int("year", snapshot.Year),
		slog.String("duration", time.Since(start).String()),
	)
	return outPath, nil
}
