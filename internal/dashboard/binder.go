package dashboard

import (
	"github.com/gradekit/gradeboard/internal/analytics"
)

// TableRow is one remediation table entry: a single failed assessment.
type TableRow struct {
	StudentName  string
	AssessmentID string
	Score        float64
	Competency   string
}

// BoundViews holds the inputs each renderer expects, derived from one
// analytics document.
type BoundViews struct {
	// ChartLabels pairs with ChartValues index by index, in document order.
	ChartLabels []string
	ChartValues []float64

	Rows  []TableRow
	Items []string
}

// Bind maps the document into renderer inputs. Pure and permissive: missing
// fields become empty views, never errors.
func Bind(doc *analytics.AnalyticsDocument) BoundViews {
	views := BoundViews{
		ChartLabels: doc.CompetencyPerformance.Keys(),
		ChartValues: doc.CompetencyPerformance.Values(),
		Items:       doc.ClassRecommendations,
	}

	// Flatten: one row per failed assessment. A student with no failed
	// assessments contributes no rows.
	for _, student := range doc.FailingStudents {
		for _, assessment := range student.FailedAssessments {
			views.Rows = append(views.Rows, TableRow{
				StudentName:  student.StudentName,
				AssessmentID: assessment.AssessmentID,
				Score:        float64(assessment.Score),
				Competency:   assessment.LearningCompetency,
			})
		}
	}

	return views
}
