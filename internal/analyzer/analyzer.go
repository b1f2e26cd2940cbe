package analyzer

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/internal/ingest"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// Analyzer derives the analytics document from a grades matrix and codebook.
type Analyzer struct {
	threshold float64
	logger    *logger.Logger
}

// New creates an analyzer. Scores below threshold count as failures.
func New(threshold float64, log *logger.Logger) *Analyzer {
	return &Analyzer{
		threshold: threshold,
		logger:    log,
	}
}

// Analyze runs the full analysis: failing students, competency pass rates,
// and class recommendations.
func (a *Analyzer) Analyze(grades *ingest.GradeTable, book *ingest.Codebook) *analytics.AnalyticsDocument {
	columns := a.assessmentColumns(grades, book)

	doc := &analytics.AnalyticsDocument{
		CompetencyPerformance: a.passRates(grades, book),
		FailingStudents:       a.failingStudents(grades, book, columns),
	}
	doc.ClassRecommendations = Recommend(doc.CompetencyPerformance)

	a.logger.WithFields(map[string]interface{}{
		"assessments":     len(columns),
		"students":        len(grades.Students),
		"failing":         len(doc.FailingStudents),
		"competencies":    doc.CompetencyPerformance.Len(),
		"recommendations": len(doc.ClassRecommendations),
	}).Info("Grade analysis complete")

	return doc
}

// assessmentColumns returns the assessment ids present in both the codebook
// and the grades sheet, in codebook order.
func (a *Analyzer) assessmentColumns(grades *ingest.GradeTable, book *ingest.Codebook) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, id := range book.AssessmentIDs() {
		if seen[id] || !grades.HasColumn(id) {
			continue
		}
		seen[id] = true
		columns = append(columns, id)
	}
	return columns
}

// failingStudents collects every below-threshold score, grouped per student.
// Students with no failures are omitted entirely.
func (a *Analyzer) failingStudents(grades *ingest.GradeTable, book *ingest.Codebook, columns []string) []analytics.StudentRecord {
	var records []analytics.StudentRecord

	for _, student := range grades.Students {
		var failed []analytics.AssessmentResult

		for _, id := range columns {
			score := student.Scores[id]
			if score >= a.threshold {
				continue
			}

			entry, ok := book.Lookup(id)
			if !ok {
				continue
			}

			failed = append(failed, analytics.AssessmentResult{
				AssessmentID:       id,
				Score:              analytics.FlexFloat(round2(score)),
				ContentDomain:      entry.ContentDomain,
				LearningCompetency: entry.LearningCompetency,
			})
		}

		if len(failed) > 0 {
			records = append(records, analytics.StudentRecord{
				StudentName:       student.Name,
				FailedAssessments: failed,
			})
		}
	}

	return records
}

// passRates computes the class pass rate per competency: passing cells over
// total cells across all students and that competency's assessments.
func (a *Analyzer) passRates(grades *ingest.GradeTable, book *ingest.Codebook) analytics.PassRates {
	rates := analytics.NewPassRates()

	for _, competency := range book.Competencies() {
		var ids []string
		for _, id := range book.AssessmentsFor(competency) {
			if grades.HasColumn(id) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}

		totalPossible := len(grades.Students) * len(ids)
		if totalPossible == 0 {
			continue
		}

		totalPassed := 0
		for _, student := range grades.Students {
			for _, id := range ids {
				if student.Scores[id] >= a.threshold {
					totalPassed++
				}
			}
		}

		rates.Set(competency, round2(float64(totalPassed)/float64(totalPossible)*100))
	}

	return rates
}

// RemediationGroup lists the students needing support for one competency.
type RemediationGroup struct {
	Competency string
	Students   []string
}

// RemediationGroups regroups failing students by competency. Students appear
// once per group, in first-seen order.
func RemediationGroups(doc *analytics.AnalyticsDocument) []RemediationGroup {
	index := make(map[string]int)
	var groups []RemediationGroup

	for _, student := range doc.FailingStudents {
		for _, assessment := range student.FailedAssessments {
			competency := assessment.LearningCompetency

			i, ok := index[competency]
			if !ok {
				i = len(groups)
				index[competency] = i
				groups = append(groups, RemediationGroup{Competency: competency})
			}

			if !contains(groups[i].Students, student.StudentName) {
				groups[i].Students = append(groups[i].Students, student.StudentName)
			}
		}
	}

	return groups
}

// CompetencySummary carries descriptive statistics for one competency.
type CompetencySummary struct {
	Competency  string
	PassRate    float64
	MeanScore   float64
	MedianScore float64
}

// Summaries computes per-competency score statistics, sorted by ascending
// pass rate so the weakest areas lead.
func (a *Analyzer) Summaries(grades *ingest.GradeTable, book *ingest.Codebook) []CompetencySummary {
	rates := a.passRates(grades, book)

	summaries := make([]CompetencySummary, 0, rates.Len())
	for _, competency := range rates.Keys() {
		rate, _ := rates.Get(competency)

		var scores []float64
		for _, id := range book.AssessmentsFor(competency) {
			if !grades.HasColumn(id) {
				continue
			}
			for _, student := range grades.Students {
				scores = append(scores, student.Scores[id])
			}
		}

		mean, _ := stats.Mean(scores)
		median, _ := stats.Median(scores)

		summaries = append(summaries, CompetencySummary{
			Competency:  competency,
			PassRate:    rate,
			MeanScore:   round2(mean),
			MedianScore: round2(median),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].PassRate < summaries[j].PassRate
	})

	return summaries
}

func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return rounded
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
