package dashboard

import "sort"

// RowFilter narrows the remediation table by exact match. An empty field
// means "All".
type RowFilter struct {
	Competency string
	Student    string
}

// Active reports whether any filter field is set.
func (f RowFilter) Active() bool {
	return f.Competency != "" || f.Student != ""
}

// Match reports whether a row survives the filter.
func (f RowFilter) Match(row TableRow) bool {
	if f.Competency != "" && row.Competency != f.Competency {
		return false
	}
	if f.Student != "" && row.StudentName != f.Student {
		return false
	}
	return true
}

// Apply returns the rows that match the filter.
func (f RowFilter) Apply(rows []TableRow) []TableRow {
	if !f.Active() {
		return rows
	}

	filtered := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		if f.Match(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// CompetencyOptions returns the sorted unique competencies in the rows.
func CompetencyOptions(rows []TableRow) []string {
	return uniqueSorted(rows, func(r TableRow) string { return r.Competency })
}

// StudentOptions returns the sorted unique student names in the rows.
func StudentOptions(rows []TableRow) []string {
	return uniqueSorted(rows, func(r TableRow) string { return r.StudentName })
}

func uniqueSorted(rows []TableRow, key func(TableRow) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		v := key(row)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
