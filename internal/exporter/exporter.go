package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/internal/analyzer"
	"github.com/gradekit/gradeboard/internal/ingest"
	"github.com/gradekit/gradeboard/pkg/config"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// OutputName is the fixed document name the dashboard expects.
const OutputName = "grade_analysis_data.json"

// Exporter produces the analytics document the dashboard consumes.
type Exporter struct {
	cfg      *config.Config
	analyzer *analyzer.Analyzer
	logger   *logger.Logger
}

// New creates an exporter bound to the configured input and output paths.
func New(cfg *config.Config, log *logger.Logger) *Exporter {
	return &Exporter{
		cfg:      cfg,
		analyzer: analyzer.New(cfg.PassingThreshold, log),
		logger:   log,
	}
}

// Run ingests the CSVs, analyzes them, and writes the analytics document.
// Returns the written path.
func (e *Exporter) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	grades, err := ingest.ReadGrades(e.cfg.GradesFile)
	if err != nil {
		return "", err
	}

	book, err := ingest.ReadCodebook(e.cfg.CodebookFile)
	if err != nil {
		return "", err
	}

	doc := e.analyzer.Analyze(grades, book)

	if e.cfg.StrictSchema {
		if err := analytics.Validate(doc); err != nil {
			return "", err
		}
	}

	path, err := Write(doc, e.cfg.OutputDir)
	if err != nil {
		return "", err
	}

	e.logger.WithField("path", path).Info("Analytics document exported")
	return path, nil
}

// Write serializes the document as indented JSON into outDir.
func Write(doc *analytics.AnalyticsDocument, outDir string) (string, error) {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal analytics document: %w", err)
	}

	path := filepath.Join(outDir, OutputName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write analytics document: %w", err)
	}

	return path, nil
}
