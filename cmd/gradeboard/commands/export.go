package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gradekit/gradeboard/internal/exporter"
	"github.com/gradekit/gradeboard/internal/scheduler"
	"github.com/gradekit/gradeboard/internal/scheduler/jobs"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Generate the analytics document from CSV inputs",
	Long: `Reads the grades and codebook CSVs, runs the grade analysis, and
writes grade_analysis_data.json for the dashboard to consume.

With --every the export keeps running on a cron schedule so the
dashboard always serves fresh data.

Example:
  go run ./cmd/gradeboard export
  go run ./cmd/gradeboard export --grades grades.csv --codebook codebook.csv --out ./public
  go run ./cmd/gradeboard export --every "0 0 6 * * *"`,
	RunE: runExport,
}

var (
	exportGrades   string
	exportCodebook string
	exportOut      string
	exportStrict   bool
	exportEvery    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	// Flags
	exportCmd.Flags().StringVar(&exportGrades, "grades", "", "grades CSV path (overrides GRADES_FILE)")
	exportCmd.Flags().StringVar(&exportCodebook, "codebook", "", "codebook CSV path (overrides CODEBOOK_FILE)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (overrides OUTPUT_DIR)")
	exportCmd.Flags().BoolVar(&exportStrict, "strict", false, "validate the document before writing")
	exportCmd.Flags().StringVar(&exportEvery, "every", "", "cron schedule for continuous export (seconds included)")
}

func runExport(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Flag overrides
	if exportGrades != "" {
		cfg.GradesFile = exportGrades
	}
	if exportCodebook != "" {
		cfg.CodebookFile = exportCodebook
	}
	if exportOut != "" {
		cfg.OutputDir = exportOut
	}
	if exportStrict {
		cfg.StrictSchema = true
	}

	// 2. Initialize logger and exporter
	log := logger.New(cfg)
	exp := exporter.New(cfg, log)

	PrintRunHeader(RunMetadata{
		Task:      "Analytics Export",
		Grades:    cfg.GradesFile,
		Codebook:  cfg.CodebookFile,
		OutputDir: cfg.OutputDir,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	// 3. One-shot export
	start := time.Now()
	path, err := exp.Run(context.Background())
	if err != nil {
		PrintError(fmt.Sprintf("Export failed: %v", err))
		return err
	}
	PrintRunCompletion(path, time.Since(start).Seconds())

	if exportEvery == "" {
		return nil
	}

	// 4. Continuous mode: re-export on the cron schedule
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewExportJob(exp, exportEvery, log)); err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}

	sched.Start()
	fmt.Printf("\nRe-exporting on schedule %q. Press Ctrl+C to stop\n", exportEvery)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
