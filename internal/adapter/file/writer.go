package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/temperature-summary/internal/domain"
)

// SummaryWriter writes the report to a file, replacing any existing content.
// It implements pipeline.ReportLoader.
type SummaryWriter struct {
	path   string
	logger *slog.Logger
}

// NewSummaryWriter creates a SummaryWriter for path.
func NewSummaryWriter(path string, logger *slog.Logger) *SummaryWriter {
	return &SummaryWriter{path: path, logger: logger}
}

// LoadReport writes one line per daily summary, without a trailing newline.
func (w *SummaryWriter) LoadReport(_ context.Context, report domain.Report) error {
	data := domain.FormatReport(report)
	if err := os.WriteFile(w.path, []byte(data), 0o644); err != nil { //nolint:gosec // report is not sensitive
		return fmt.Errorf("write summary file: %w", err)
	}
	w.logger.Info("summary file written", "path", w.path, "days", report.Days())
	return nil
}
