package report

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const (
	failingSheet = "Failing Students"
	summarySheet = "Competency Summary"
)

// WriteExcel renders the plan as an xlsx workbook into outDir and returns
// the written path. The workbook carries one sheet per report audience: the
// per-student failure list and the per-competency statistics.
func WriteExcel(plan Plan, outDir string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", failingSheet); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{"Student Name", "Assessment ID", "Score", "Content Domain", "Learning Competency"}
	if err := f.SetSheetRow(failingSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, student := range plan.Document.FailingStudents {
		for _, a := range student.FailedAssessments {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return "", err
			}
			values := []interface{}{student.StudentName, a.AssessmentID, float64(a.Score), a.ContentDomain, a.LearningCompetency}
			if err := f.SetSheetRow(failingSheet, cell, &values); err != nil {
				return "", fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}

	summaryHeader := []interface{}{"Learning Competency", "Pass Rate (%)", "Mean Score", "Median Score"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, s := range plan.Summaries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		values := []interface{}{s.Competency, s.PassRate, s.MeanScore, s.MedianScore}
		if err := f.SetSheetRow(summarySheet, cell, &values); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	path := filepath.Join(outDir, plan.Filename("xlsx"))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}
