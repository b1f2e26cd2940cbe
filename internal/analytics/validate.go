package analytics

import (
	"fmt"
	"math"
)

// Validate checks the document shape beyond what JSON decoding enforces.
// Absence and emptiness always pass: zero competencies, zero students, and
// zero recommendations are valid documents. Only strict mode calls this.
func Validate(doc *AnalyticsDocument) error {
	for _, competency := range doc.CompetencyPerformance.Keys() {
		rate, _ := doc.CompetencyPerformance.Get(competency)
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return &ShapeError{
				Field:  "competency_performance",
				Reason: fmt.Sprintf("rate for %q is not a finite number", competency),
			}
		}
		if rate < 0 || rate > 100 {
			return &ShapeError{
				Field:  "competency_performance",
				Reason: fmt.Sprintf("rate %.2f for %q outside 0..100", rate, competency),
			}
		}
	}

	for i, student := range doc.FailingStudents {
		if student.StudentName == "" {
			return &ShapeError{
				Field:  "failing_students",
				Reason: fmt.Sprintf("record %d has no student_name", i),
			}
		}
		for j, assessment := range student.FailedAssessments {
			if assessment.AssessmentID == "" {
				return &ShapeError{
					Field:  "failing_students",
					Reason: fmt.Sprintf("record %d assessment %d has no assessment_id", i, j),
				}
			}
		}
	}

	return nil
}
