package dashboard

// Severity is the color band a pass rate falls into.
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityOrange Severity = "orange"
	SeverityGreen  Severity = "green"
)

// SeverityFor assigns the color band for a pass rate. Band lower bounds are
// inclusive: 60 and 75 belong to the higher band.
func SeverityFor(rate float64) Severity {
	switch {
	case rate < 60:
		return SeverityRed
	case rate < 75:
		return SeverityOrange
	default:
		return SeverityGreen
	}
}

// Bar is one rendered chart column.
type Bar struct {
	Label    string
	Value    float64
	Severity Severity
}

// HeightPct returns the bar height against the fixed 0..100 axis.
func (b Bar) HeightPct() float64 {
	switch {
	case b.Value < 0:
		return 0
	case b.Value > 100:
		return 100
	default:
		return b.Value
	}
}

// ChartModel is a declarative bar chart description.
type ChartModel struct {
	Title  string
	XLabel string
	YLabel string

	// The y-axis is pinned to 0..100 regardless of the data range.
	YMin float64
	YMax float64

	Bars []Bar
}

// Target receives rendered widget state. It stands in for the page so the
// pipeline can run against a recording fake in tests.
type Target interface {
	// SetChart replaces any previously rendered chart.
	SetChart(chart ChartModel)

	// SetRows replaces the table body with the given rows.
	SetRows(rows []TableRow)

	// SetItems replaces the recommendation list.
	SetItems(items []string)

	// SetFailure replaces the entire content region with an error notice.
	SetFailure(notice string)
}

// RenderChart builds the pass-rate bar chart and hands it to the target.
// Re-invocation fully replaces the prior chart.
func RenderChart(target Target, labels []string, values []float64) {
	bars := make([]Bar, 0, len(labels))
	for i, label := range labels {
		if i >= len(values) {
			break
		}
		bars = append(bars, Bar{
			Label:    label,
			Value:    values[i],
			Severity: SeverityFor(values[i]),
		})
	}

	target.SetChart(ChartModel{
		Title:  "Pass Rate by Learning Competency",
		XLabel: "Learning Competency",
		YLabel: "Pass Rate (%)",
		YMin:   0,
		YMax:   100,
		Bars:   bars,
	})
}

// RenderTable pushes the remediation rows in received order, four cells per
// row. The target replaces its prior rows, so repeated renders never
// accumulate duplicates.
func RenderTable(target Target, rows []TableRow) {
	target.SetRows(rows)
}

// RenderList pushes one item per recommendation string. Items are literal
// text; targets must never interpret them as markup.
func RenderList(target Target, items []string) {
	target.SetItems(items)
}
