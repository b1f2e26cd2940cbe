package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowFilterApply(t *testing.T) {
	rows := []TableRow{
		{StudentName: "B. Kim", AssessmentID: "Quiz1", Score: 50, Competency: "Math"},
		{StudentName: "A. Lee", AssessmentID: "Quiz3", Score: 42, Competency: "Reading"},
		{StudentName: "A. Lee", AssessmentID: "Quiz4", Score: 55.5, Competency: "Math"},
	}

	tests := []struct {
		name   string
		filter RowFilter
		want   int
	}{
		{"no filter keeps everything", RowFilter{}, 3},
		{"by competency", RowFilter{Competency: "Math"}, 2},
		{"by student", RowFilter{Student: "A. Lee"}, 2},
		{"both fields combine", RowFilter{Competency: "Math", Student: "A. Lee"}, 1},
		{"no matches", RowFilter{Competency: "Writing"}, 0},
		{"exact match only", RowFilter{Student: "A"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, tt.filter.Apply(rows), tt.want)
		})
	}
}

func TestRowFilterActive(t *testing.T) {
	assert.False(t, RowFilter{}.Active())
	assert.True(t, RowFilter{Competency: "Math"}.Active())
	assert.True(t, RowFilter{Student: "A. Lee"}.Active())
}

func TestFilterOptionsSortedUnique(t *testing.T) {
	rows := []TableRow{
		{StudentName: "B. Kim", Competency: "Reading"},
		{StudentName: "A. Lee", Competency: "Math"},
		{StudentName: "B. Kim", Competency: "Math"},
		{StudentName: "", Competency: ""},
	}

	assert.Equal(t, []string{"Math", "Reading"}, CompetencyOptions(rows))
	assert.Equal(t, []string{"A. Lee", "B. Kim"}, StudentOptions(rows))
}
