package dashboard

import (
	"embed"
	"html/template"
	"io"
	"strconv"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("dashboard.html").
		Funcs(template.FuncMap{
			// Format scores and rates without trailing zeros: 42 not 42.00.
			"num": func(v float64) string {
				return strconv.FormatFloat(v, 'f', -1, 64)
			},
		}).
		ParseFS(templateFS, "templates/dashboard.html"),
)

// PageTarget renders the three widgets (or the failure notice) as a full
// HTML page. Each Set* call replaces the corresponding widget state.
type PageTarget struct {
	Title   string
	Chart   ChartModel
	Rows    []TableRow
	Items   []string
	Failure string

	// Table filter state, set by ApplyFilter after rendering.
	Filter            RowFilter
	CompetencyOptions []string
	StudentOptions    []string
}

// NewPageTarget creates an empty page.
func NewPageTarget() *PageTarget {
	return &PageTarget{Title: "Grade Analysis Dashboard"}
}

// SetChart replaces the chart widget.
func (t *PageTarget) SetChart(chart ChartModel) {
	t.Chart = chart
}

// SetRows replaces the remediation table body.
func (t *PageTarget) SetRows(rows []TableRow) {
	t.Rows = rows
}

// SetItems replaces the recommendation list.
func (t *PageTarget) SetItems(items []string) {
	t.Items = items
}

// ApplyFilter narrows the remediation table to matching rows. The filter
// option lists come from the unfiltered rows, so the form keeps offering
// every choice even when the current selection matches nothing.
func (t *PageTarget) ApplyFilter(filter RowFilter) {
	t.Filter = filter
	t.CompetencyOptions = CompetencyOptions(t.Rows)
	t.StudentOptions = StudentOptions(t.Rows)
	t.Rows = filter.Apply(t.Rows)
}

// SetFailure switches the page to the error notice. The template renders
// nothing else once a failure is set.
func (t *PageTarget) SetFailure(notice string) {
	t.Failure = notice
}

// Render writes the page HTML. Recommendation strings and student names pass
// through html/template escaping, so markup in the document stays literal.
func (t *PageTarget) Render(w io.Writer) error {
	return pageTemplate.Execute(w, t)
}
