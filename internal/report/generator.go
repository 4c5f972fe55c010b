package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"latency-monitor/internal/database"
)

// Generator creates charts and a text summary from the measurement log
type Generator struct {
	db     *database.DB
	target string
	now    func() time.Time
}

// NewGenerator creates a new report generator. target is only used for titles.
func NewGenerator(db *database.DB, target string) *Generator {
	return &Generator{db: db, target: target, now: time.Now}
}

// GenerateReport creates a report directory under outputDir and returns its path
func (g *Generator) GenerateReport(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := g.now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("latency_report_%s", timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	records, err := g.db.GetCycles(false)
	if err != nil {
		return "", fmt.Errorf("failed to load cycles: %w", err)
	}

	if err := g.generateLatencyChart(reportDir, records); err != nil {
		logrus.WithError(err).Warn("Failed to generate latency chart")
	}

	if err := g.generateLossChart(reportDir, records); err != nil {
		logrus.WithError(err).Warn("Failed to generate loss chart")
	}

	if err := g.generateTextReport(reportDir); err != nil {
		return reportDir, fmt.Errorf("failed to generate text report: %w", err)
	}

	logrus.WithField("dir", reportDir).Info("Report generated")
	return reportDir, nil
}
