package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/internal/analyzer"
)

// Plan bundles everything a remediation report renders.
type Plan struct {
	Document  *analytics.AnalyticsDocument
	Summaries []analyzer.CompetencySummary
	Date      time.Time
}

// Filename returns the dated report name for the given extension.
func (p Plan) Filename(ext string) string {
	return fmt.Sprintf("remediation_plan_%s.%s", p.Date.Format("2006-01-02"), ext)
}

// WriteText renders the plan as a plain-text report into outDir and returns
// the written path.
func WriteText(plan Plan, outDir string) (string, error) {
	path := filepath.Join(outDir, plan.Filename("txt"))
	if err := os.WriteFile(path, []byte(renderText(plan)), 0o644); err != nil {
		return "", fmt.Errorf("write remediation plan: %w", err)
	}
	return path, nil
}

func renderText(plan Plan) string {
	var b strings.Builder
	rule := strings.Repeat("=", 30)

	fmt.Fprintf(&b, "Remediation Plan - %s\n", plan.Date.Format("2006-01-02"))
	b.WriteString(rule + "\n\n")

	b.WriteString("Individual Remediation Plans\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, student := range plan.Document.FailingStudents {
		fmt.Fprintf(&b, "\nStudent: %s\n", student.StudentName)
		for _, a := range student.FailedAssessments {
			scoreInfo := fmt.Sprintf("(Score: %.2f)", float64(a.Score))
			if a.Score == 0 {
				scoreInfo += " - Note: Student may have missed this assessment."
			}
			fmt.Fprintf(&b, "  - Failed Assessment: %s %s\n", a.AssessmentID, scoreInfo)
			fmt.Fprintf(&b, "    - Competency: %s\n", a.LearningCompetency)
			fmt.Fprintf(&b, "    - Recommended Program: Focus on %s.\n", a.LearningCompetency)
			fmt.Fprintf(&b, "    - Specific Task: Review concepts related to %s.\n", a.AssessmentID)
			b.WriteString("    - Suggestion: Provide one-on-one tutoring and additional practice exercises.\n")
		}
	}
	b.WriteString("\n" + rule + "\n\n")

	b.WriteString("Remediation Groups based on Learning Competency\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, group := range analyzer.RemediationGroups(plan.Document) {
		fmt.Fprintf(&b, "\nLearning Competency: %s\n", group.Competency)
		b.WriteString("  Students needing support:\n")
		for _, name := range group.Students {
			fmt.Fprintf(&b, "    - %s\n", name)
		}
	}
	b.WriteString("\n" + rule + "\n\n")

	b.WriteString("Class Performance Analysis and Recommendations\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString("This section analyzes the overall class performance for each learning competency.\n\n")

	ranked := rankedRates(plan.Document.CompetencyPerformance)
	if len(ranked) == 0 {
		b.WriteString("No competency performance data to display.\n")
		return b.String()
	}

	b.WriteString("Performance by Learning Competency (sorted by pass rate):\n")
	for _, r := range ranked {
		fmt.Fprintf(&b, "- %s: %.2f%% pass rate\n", r.competency, r.rate)
	}

	b.WriteString("\nRecommendations:\n")
	for _, rec := range analyzer.Recommend(plan.Document.CompetencyPerformance) {
		fmt.Fprintf(&b, "\n- %s\n", rec)
	}

	return b.String()
}

type rankedRate struct {
	competency string
	rate       float64
}

// rankedRates sorts competencies by ascending pass rate so the weakest lead.
func rankedRates(rates analytics.PassRates) []rankedRate {
	ranked := make([]rankedRate, 0, rates.Len())
	for _, competency := range rates.Keys() {
		rate, _ := rates.Get(competency)
		ranked = append(ranked, rankedRate{competency: competency, rate: rate})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rate < ranked[j].rate
	})
	return ranked
}
