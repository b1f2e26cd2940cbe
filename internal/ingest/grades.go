package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StudentScores holds one grade-sheet row: a student and their scores keyed
// by assessment column.
type StudentScores struct {
	Name   string
	Scores map[string]float64
}

// GradeTable is the cleaned grades matrix.
type GradeTable struct {
	// Columns lists the score columns in sheet order (Name excluded).
	Columns  []string
	Students []StudentScores
}

// HasColumn reports whether the sheet carries the given score column.
func (g *GradeTable) HasColumn(name string) bool {
	for _, col := range g.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// ReadGrades reads and cleans a grades CSV. Spreadsheet exports are messy;
// cleaning mirrors what the data owners do by hand:
//   - a column literally named "0" is dropped (spreadsheet artifact)
//   - "#DIV/0!" cells become 0
//   - cells that fail numeric coercion become 0
func ReadGrades(path string) (*GradeTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open grades file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read grades file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("grades file %s is empty", path)
	}

	header := records[0]
	nameIdx := -1
	for i, col := range header {
		if col == "Name" {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("grades file %s has no Name column", path)
	}

	table := &GradeTable{}
	for i, col := range header {
		if i == nameIdx || col == "0" {
			continue
		}
		table.Columns = append(table.Columns, col)
	}

	for _, record := range records[1:] {
		student := StudentScores{
			Scores: make(map[string]float64, len(table.Columns)),
		}
		if nameIdx < len(record) {
			student.Name = strings.TrimSpace(record[nameIdx])
		}

		for i, col := range header {
			if i == nameIdx || col == "0" || i >= len(record) {
				continue
			}
			student.Scores[col] = coerceScore(record[i])
		}

		table.Students = append(table.Students, student)
	}

	return table, nil
}

// coerceScore converts a raw cell to a numeric score, falling back to 0.
func coerceScore(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "#DIV/0!" {
		return 0
	}

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}
	return value
}
