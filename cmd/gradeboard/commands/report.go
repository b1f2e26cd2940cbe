package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradekit/gradeboard/internal/analyzer"
	"github.com/gradekit/gradeboard/internal/ingest"
	"github.com/gradekit/gradeboard/internal/report"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write a dated remediation plan",
	Long: `Runs the grade analysis and writes a remediation plan for teachers:
individual plans per failing student, remediation groups per competency,
and class-level recommendations.

Formats:
  txt   - plain-text plan (default)
  xlsx  - workbook with failing students and competency statistics

Example:
  go run ./cmd/gradeboard report
  go run ./cmd/gradeboard report --format xlsx --out ./reports`,
	RunE: runReport,
}

var (
	reportGrades   string
	reportCodebook string
	reportOut      string
	reportFormat   string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().StringVar(&reportGrades, "grades", "", "grades CSV path (overrides GRADES_FILE)")
	reportCmd.Flags().StringVar(&reportCodebook, "codebook", "", "codebook CSV path (overrides CODEBOOK_FILE)")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "output directory (overrides OUTPUT_DIR)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "txt", "report format (txt|xlsx)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportFormat != "txt" && reportFormat != "xlsx" {
		return fmt.Errorf("unknown report format %q, want txt or xlsx", reportFormat)
	}

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides
	if reportGrades != "" {
		cfg.GradesFile = reportGrades
	}
	if reportCodebook != "" {
		cfg.CodebookFile = reportCodebook
	}
	if reportOut != "" {
		cfg.OutputDir = reportOut
	}

	log := logger.New(cfg)

	PrintRunHeader(RunMetadata{
		Task:      "Remediation Report",
		Grades:    cfg.GradesFile,
		Codebook:  cfg.CodebookFile,
		OutputDir: cfg.OutputDir,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	// 2. Ingest and analyze
	start := time.Now()

	grades, err := ingest.ReadGrades(cfg.GradesFile)
	if err != nil {
		PrintError(fmt.Sprintf("Read grades: %v", err))
		return err
	}

	book, err := ingest.ReadCodebook(cfg.CodebookFile)
	if err != nil {
		PrintError(fmt.Sprintf("Read codebook: %v", err))
		return err
	}

	an := analyzer.New(cfg.PassingThreshold, log)
	plan := report.Plan{
		Document:  an.Analyze(grades, book),
		Summaries: an.Summaries(grades, book),
		Date:      time.Now(),
	}

	// 3. Write the plan
	var path string
	switch reportFormat {
	case "xlsx":
		path, err = report.WriteExcel(plan, cfg.OutputDir)
	default:
		path, err = report.WriteText(plan, cfg.OutputDir)
	}
	if err != nil {
		PrintError(fmt.Sprintf("Write report: %v", err))
		return err
	}

	PrintRunCompletion(path, time.Since(start).Seconds())
	return nil
}
