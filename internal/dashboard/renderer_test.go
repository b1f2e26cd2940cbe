package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/pkg/config"
	"github.com/gradekit/gradeboard/pkg/httputil"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// recordingTarget captures renderer output for assertions.
type recordingTarget struct {
	chart      ChartModel
	chartSets  int
	rows       []TableRow
	rowSets    int
	items      []string
	itemSets   int
	failure    string
	failureSet bool
}

func (r *recordingTarget) SetChart(chart ChartModel) { r.chart = chart; r.chartSets++ }
func (r *recordingTarget) SetRows(rows []TableRow)   { r.rows = rows; r.rowSets++ }
func (r *recordingTarget) SetItems(items []string)   { r.items = items; r.itemSets++ }
func (r *recordingTarget) SetFailure(notice string)  { r.failure = notice; r.failureSet = true }

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		rate float64
		want Severity
	}{
		{0, SeverityRed},
		{59.9, SeverityRed},
		{60, SeverityOrange},
		{74.9, SeverityOrange},
		{75, SeverityGreen},
		{100, SeverityGreen},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SeverityFor(tt.rate), "rate %.1f", tt.rate)
	}
}

func TestRenderChartBuildsPairedBars(t *testing.T) {
	target := &recordingTarget{}

	RenderChart(target, []string{"Math", "Reading"}, []float64{82, 55})

	require.Len(t, target.chart.Bars, 2)
	assert.Equal(t, Bar{Label: "Math", Value: 82, Severity: SeverityGreen}, target.chart.Bars[0])
	assert.Equal(t, Bar{Label: "Reading", Value: 55, Severity: SeverityRed}, target.chart.Bars[1])

	// Fixed axis regardless of data range.
	assert.Equal(t, 0.0, target.chart.YMin)
	assert.Equal(t, 100.0, target.chart.YMax)
}

func TestRenderChartReplacesPriorChart(t *testing.T) {
	target := &recordingTarget{}

	RenderChart(target, []string{"Math", "Reading"}, []float64{82, 55})
	RenderChart(target, []string{"Math", "Reading"}, []float64{82, 55})

	// One chart, not two accumulated traces.
	assert.Equal(t, 2, target.chartSets)
	assert.Len(t, target.chart.Bars, 2)
}

func TestRenderChartIgnoresUnpairedLabels(t *testing.T) {
	target := &recordingTarget{}

	RenderChart(target, []string{"Math", "Reading", "Science"}, []float64{82, 55})

	assert.Len(t, target.chart.Bars, 2)
}

func TestBarHeightPctClamped(t *testing.T) {
	assert.Equal(t, 0.0, Bar{Value: -5}.HeightPct())
	assert.Equal(t, 42.5, Bar{Value: 42.5}.HeightPct())
	assert.Equal(t, 100.0, Bar{Value: 130}.HeightPct())
}

func TestRenderTableReplacesRows(t *testing.T) {
	target := &recordingTarget{}
	rows := []TableRow{{StudentName: "A. Lee", AssessmentID: "Quiz3", Score: 42, Competency: "Reading"}}

	RenderTable(target, rows)
	RenderTable(target, rows)

	// Clear-before-append: rendering twice must not duplicate rows.
	assert.Len(t, target.rows, 1)
}

func testPipeline(t *testing.T, source string, strict bool) *Pipeline {
	t.Helper()

	cfg := &config.Config{Env: "development", LogLevel: "error"}
	log := logger.New(cfg)
	loader := analytics.NewLoader(source, httputil.New(cfg, log).DisableRetry(), log)
	return NewPipeline(loader, strict, log)
}

func TestPipelineRendersAllWidgets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grade_analysis_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"competency_performance": {"Math": 82, "Reading": 55},
		"failing_students": [
			{
				"student_name": "A. Lee",
				"failed_assessments": [
					{"assessment_id": "Quiz3", "score": 42, "learning_competency": "Reading"}
				]
			}
		],
		"class_recommendations": ["Add reading support block"]
	}`), 0o644))

	target := &recordingTarget{}
	testPipeline(t, path, false).Render(context.Background(), target)

	assert.False(t, target.failureSet)

	require.Len(t, target.chart.Bars, 2)
	assert.Equal(t, SeverityGreen, target.chart.Bars[0].Severity)
	assert.Equal(t, SeverityRed, target.chart.Bars[1].Severity)

	require.Len(t, target.rows, 1)
	assert.Equal(t, TableRow{StudentName: "A. Lee", AssessmentID: "Quiz3", Score: 42, Competency: "Reading"}, target.rows[0])

	assert.Equal(t, []string{"Add reading support block"}, target.items)
}

func TestPipelineFailureReplacesContent(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "grade_analysis_data.json")

	target := &recordingTarget{}
	testPipeline(t, missing, false).Render(context.Background(), target)

	assert.True(t, target.failureSet)
	assert.Contains(t, target.failure, missing)

	// No partial rendering after a failure.
	assert.Zero(t, target.chartSets)
	assert.Zero(t, target.rowSets)
	assert.Zero(t, target.itemSets)
}

func TestPipelineStrictModeRejectsBadShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grade_analysis_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"competency_performance": {"Math": 140}}`), 0o644))

	strictTarget := &recordingTarget{}
	testPipeline(t, path, true).Render(context.Background(), strictTarget)
	assert.True(t, strictTarget.failureSet)

	// Permissive mode renders the same document.
	looseTarget := &recordingTarget{}
	testPipeline(t, path, false).Render(context.Background(), looseTarget)
	assert.False(t, looseTarget.failureSet)
	assert.Len(t, looseTarget.chart.Bars, 1)
}

func TestPipelineEmptyContainersAreNotErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grade_analysis_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"competency_performance": {},
		"failing_students": [],
		"class_recommendations": []
	}`), 0o644))

	target := &recordingTarget{}
	testPipeline(t, path, true).Render(context.Background(), target)

	assert.False(t, target.failureSet)
	assert.Empty(t, target.chart.Bars)
	assert.Empty(t, target.rows)
	assert.Empty(t, target.items)
	assert.True(t, strings.HasPrefix(target.chart.Title, "Pass Rate"))
}
