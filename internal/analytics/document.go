package analytics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AnalyticsDocument is the single payload the dashboard consumes. It is
// produced by the exporter (or an external tool) and read-only once loaded.
type AnalyticsDocument struct {
	CompetencyPerformance PassRates       `json:"competency_performance"`
	FailingStudents       []StudentRecord `json:"failing_students"`
	ClassRecommendations  []string        `json:"class_recommendations"`
}

// StudentRecord groups the failed assessments of one student.
// Student names are not guaranteed unique.
type StudentRecord struct {
	StudentName       string             `json:"student_name"`
	FailedAssessments []AssessmentResult `json:"failed_assessments"`
}

// AssessmentResult is one failed evaluation instrument.
type AssessmentResult struct {
	AssessmentID       string    `json:"assessment_id"`
	Score              FlexFloat `json:"score"`
	ContentDomain      string    `json:"content_domain,omitempty"`
	LearningCompetency string    `json:"learning_competency"`
}

// PassRates maps competency names to pass-rate percentages while keeping the
// key order of the JSON document. Chart labels must pair with their values in
// document order, which a plain Go map cannot guarantee.
type PassRates struct {
	keys  []string
	rates map[string]float64
}

// NewPassRates returns an empty ordered rate map.
func NewPassRates() PassRates {
	return PassRates{rates: make(map[string]float64)}
}

// Set stores a rate, appending the key on first insert.
func (p *PassRates) Set(competency string, rate float64) {
	if p.rates == nil {
		p.rates = make(map[string]float64)
	}
	if _, exists := p.rates[competency]; !exists {
		p.keys = append(p.keys, competency)
	}
	p.rates[competency] = rate
}

// Get returns the rate for a competency.
func (p PassRates) Get(competency string) (float64, bool) {
	rate, ok := p.rates[competency]
	return rate, ok
}

// Keys returns competency names in document order.
func (p PassRates) Keys() []string {
	return p.keys
}

// Values returns the rates paired with Keys, in the same order.
func (p PassRates) Values() []float64 {
	values := make([]float64, 0, len(p.keys))
	for _, k := range p.keys {
		values = append(values, p.rates[k])
	}
	return values
}

// Len returns the number of competencies.
func (p PassRates) Len() int {
	return len(p.keys)
}

// UnmarshalJSON decodes a JSON object while preserving its key order.
func (p *PassRates) UnmarshalJSON(data []byte) error {
	*p = NewPassRates()

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		// null means absent; treat as empty
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("competency_performance: expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("competency_performance: non-string key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		// Malformed rates degrade to zero rather than failing the load.
		p.Set(key, parseFlexibleNumber(raw))
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}

	return nil
}

// MarshalJSON encodes the rates as a JSON object in insertion order.
func (p PassRates) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.WriteString(formatFiniteNumber(p.rates[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FlexFloat is a float64 that tolerates numeric strings and null in JSON.
// The document producer is not under our control; a non-numeric score renders
// as zero instead of failing the whole load.
type FlexFloat float64

// UnmarshalJSON accepts numbers, numeric strings, and null.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(parseFlexibleNumber(data))
	return nil
}

// MarshalJSON encodes the value as a plain JSON number.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	return []byte(formatFiniteNumber(float64(f))), nil
}

// parseFlexibleNumber extracts a float from raw JSON, falling back to zero.
// strconv.ParseFloat accepts "NaN" and "Inf" spellings, which JSON cannot
// represent, so non-finite results degrade to zero like any other junk.
func parseFlexibleNumber(raw []byte) float64 {
	s := string(bytes.TrimSpace(raw))
	if s == "" || s == "null" {
		return 0
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil && isFinite(v) {
		return v
	}

	// Quoted numeric string
	var quoted string
	if err := json.Unmarshal(raw, &quoted); err == nil {
		if v, err := strconv.ParseFloat(quoted, 64); err == nil && isFinite(v) {
			return v
		}
	}

	return 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// formatFiniteNumber renders a float as a JSON number token. Non-finite
// values would produce invalid JSON, so they encode as zero.
func formatFiniteNumber(v float64) string {
	if !isFinite(v) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
