package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CodebookEntry maps one assessment to its curriculum metadata.
type CodebookEntry struct {
	AssessmentID       string
	ContentDomain      string
	LearningCompetency string
}

// Codebook is the assessment metadata sheet, in file order.
type Codebook struct {
	entries []CodebookEntry
	byID    map[string]CodebookEntry
}

// ReadCodebook reads the codebook CSV. A row without a learning competency is
// kept with competency "Unknown", matching the upstream spreadsheet
// convention; such rows never produce pass-rate groups.
func ReadCodebook(path string) (*Codebook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codebook file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read codebook file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("codebook file %s is empty", path)
	}

	idIdx, domainIdx, competencyIdx := -1, -1, -1
	for i, col := range records[0] {
		switch col {
		case "Assessment ID":
			idIdx = i
		case "Content Domain":
			domainIdx = i
		case "Learning Competency":
			competencyIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("codebook file %s has no Assessment ID column", path)
	}

	book := &Codebook{byID: make(map[string]CodebookEntry)}
	for _, record := range records[1:] {
		if idIdx >= len(record) {
			continue
		}

		entry := CodebookEntry{
			AssessmentID:       strings.TrimSpace(record[idIdx]),
			LearningCompetency: "Unknown",
		}
		if entry.AssessmentID == "" {
			continue
		}

		if domainIdx >= 0 && domainIdx < len(record) {
			entry.ContentDomain = strings.TrimSpace(record[domainIdx])
		}
		if competencyIdx >= 0 && competencyIdx < len(record) {
			if competency := strings.TrimSpace(record[competencyIdx]); competency != "" {
				entry.LearningCompetency = competency
			}
		}

		book.entries = append(book.entries, entry)
		if _, exists := book.byID[entry.AssessmentID]; !exists {
			book.byID[entry.AssessmentID] = entry
		}
	}

	return book, nil
}

// Lookup returns the metadata for an assessment id.
func (c *Codebook) Lookup(id string) (CodebookEntry, bool) {
	entry, ok := c.byID[id]
	return entry, ok
}

// AssessmentIDs returns all assessment ids in file order.
func (c *Codebook) AssessmentIDs() []string {
	ids := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		ids = append(ids, entry.AssessmentID)
	}
	return ids
}

// Competencies returns the unique learning competencies in file order,
// excluding the "Unknown" and "0" placeholders.
func (c *Codebook) Competencies() []string {
	seen := make(map[string]bool)
	var competencies []string
	for _, entry := range c.entries {
		competency := entry.LearningCompetency
		if competency == "Unknown" || competency == "0" || seen[competency] {
			continue
		}
		seen[competency] = true
		competencies = append(competencies, competency)
	}
	return competencies
}

// AssessmentsFor returns the assessment ids mapped to a competency, in file
// order.
func (c *Codebook) AssessmentsFor(competency string) []string {
	var ids []string
	for _, entry := range c.entries {
		if entry.LearningCompetency == competency {
			ids = append(ids, entry.AssessmentID)
		}
	}
	return ids
}
