package dashboard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradekit/gradeboard/internal/analytics"
)

func docFromJSON(t *testing.T, raw string) *analytics.AnalyticsDocument {
	t.Helper()

	var doc analytics.AnalyticsDocument
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	return &doc
}

func TestBindPairsLabelsWithValues(t *testing.T) {
	doc := docFromJSON(t, `{"competency_performance": {"Reading": 55, "Math": 82, "Science": 74.9}}`)

	views := Bind(doc)

	require.Len(t, views.ChartLabels, 3)
	require.Len(t, views.ChartValues, 3)
	assert.Equal(t, []string{"Reading", "Math", "Science"}, views.ChartLabels)
	assert.Equal(t, []float64{55, 82, 74.9}, views.ChartValues)
}

func TestBindFlattensAssessments(t *testing.T) {
	doc := docFromJSON(t, `{
		"failing_students": [
			{
				"student_name": "A. Lee",
				"failed_assessments": [
					{"assessment_id": "Quiz1", "score": 30, "learning_competency": "Math"},
					{"assessment_id": "Quiz2", "score": 45, "learning_competency": "Reading"}
				]
			},
			{"student_name": "B. Cruz", "failed_assessments": []},
			{
				"student_name": "C. Diaz",
				"failed_assessments": [
					{"assessment_id": "Quiz3", "score": 12, "learning_competency": "Math"}
				]
			}
		]
	}`)

	views := Bind(doc)

	// Row count follows assessments, not students; B. Cruz contributes none.
	require.Len(t, views.Rows, 3)
	assert.Equal(t, TableRow{StudentName: "A. Lee", AssessmentID: "Quiz1", Score: 30, Competency: "Math"}, views.Rows[0])
	assert.Equal(t, TableRow{StudentName: "A. Lee", AssessmentID: "Quiz2", Score: 45, Competency: "Reading"}, views.Rows[1])
	assert.Equal(t, TableRow{StudentName: "C. Diaz", AssessmentID: "Quiz3", Score: 12, Competency: "Math"}, views.Rows[2])
}

func TestBindKeepsRecommendationsVerbatim(t *testing.T) {
	doc := docFromJSON(t, `{"class_recommendations": ["Second", "First", "Second"]}`)

	views := Bind(doc)

	assert.Equal(t, []string{"Second", "First", "Second"}, views.Items)
}

func TestBindEmptyDocument(t *testing.T) {
	views := Bind(&analytics.AnalyticsDocument{})

	assert.Empty(t, views.ChartLabels)
	assert.Empty(t, views.ChartValues)
	assert.Empty(t, views.Rows)
	assert.Empty(t, views.Items)
}
