package analytics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassRatesKeepDocumentOrder(t *testing.T) {
	// Keys deliberately not alphabetical; order must survive decoding.
	raw := `{"Reading":55,"Math":82,"Science":74.9,"Writing":60}`

	var rates PassRates
	require.NoError(t, json.Unmarshal([]byte(raw), &rates))

	assert.Equal(t, []string{"Reading", "Math", "Science", "Writing"}, rates.Keys())
	assert.Equal(t, []float64{55, 82, 74.9, 60}, rates.Values())
}

func TestPassRatesRoundTrip(t *testing.T) {
	rates := NewPassRates()
	rates.Set("Fractions", 48.15)
	rates.Set("Algebra", 91)
	rates.Set("Geometry", 62.5)

	encoded, err := json.Marshal(rates)
	require.NoError(t, err)

	var decoded PassRates
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, rates.Keys(), decoded.Keys())
	assert.Equal(t, rates.Values(), decoded.Values())
}

func TestPassRatesTolerantDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		keys []string
		vals []float64
	}{
		{
			name: "empty object",
			raw:  `{}`,
			keys: nil,
			vals: []float64{},
		},
		{
			name: "null",
			raw:  `null`,
			keys: nil,
			vals: []float64{},
		},
		{
			name: "numeric string rate",
			raw:  `{"Math":"82.5"}`,
			keys: []string{"Math"},
			vals: []float64{82.5},
		},
		{
			name: "garbage rate degrades to zero",
			raw:  `{"Math":"n/a"}`,
			keys: []string{"Math"},
			vals: []float64{0},
		},
		{
			name: "null rate degrades to zero",
			raw:  `{"Math":null}`,
			keys: []string{"Math"},
			vals: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rates PassRates
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &rates))
			assert.Equal(t, tt.keys, rates.Keys())
			assert.Equal(t, tt.vals, rates.Values())
		})
	}
}

func TestNonFiniteValuesDegradeToZero(t *testing.T) {
	// strconv.ParseFloat accepts these spellings even though JSON has no
	// representation for them; they must not survive into the document.
	tests := []struct {
		name string
		raw  string
	}{
		{"quoted NaN score", `"NaN"`},
		{"quoted Inf score", `"Inf"`},
		{"quoted negative Inf score", `"-Inf"`},
		{"overflowing number", `1e999`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, FlexFloat(0), f)

			encoded, err := json.Marshal(f)
			require.NoError(t, err)
			assert.Equal(t, "0", string(encoded))
		})
	}

	var rates PassRates
	require.NoError(t, json.Unmarshal([]byte(`{"Math":"NaN","Reading":55}`), &rates))
	assert.Equal(t, []float64{0, 55}, rates.Values())

	encoded, err := json.Marshal(rates)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Math":0,"Reading":55}`, string(encoded))
}

func TestMarshalCoercesNonFiniteToZero(t *testing.T) {
	rates := NewPassRates()
	rates.Set("Math", math.NaN())
	rates.Set("Reading", math.Inf(1))

	encoded, err := json.Marshal(rates)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Math":0,"Reading":0}`, string(encoded))

	score, err := json.Marshal(FlexFloat(math.Inf(-1)))
	require.NoError(t, err)
	assert.Equal(t, "0", string(score))
}

func TestPassRatesRejectsNonObject(t *testing.T) {
	var rates PassRates
	err := json.Unmarshal([]byte(`[1,2,3]`), &rates)
	assert.Error(t, err)
}

func TestFlexFloatDecoding(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`42`, 42},
		{`42.75`, 42.75},
		{`"42.75"`, 42.75},
		{`"absent"`, 0},
		{`null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var f FlexFloat
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, float64(f))
		})
	}
}

func TestDocumentDecodingWithMissingFields(t *testing.T) {
	var doc AnalyticsDocument
	require.NoError(t, json.Unmarshal([]byte(`{}`), &doc))

	assert.Zero(t, doc.CompetencyPerformance.Len())
	assert.Empty(t, doc.FailingStudents)
	assert.Empty(t, doc.ClassRecommendations)
}

func TestDocumentRoundTrip(t *testing.T) {
	perf := NewPassRates()
	perf.Set("Math", 82)
	perf.Set("Reading", 55)

	doc := &AnalyticsDocument{
		CompetencyPerformance: perf,
		FailingStudents: []StudentRecord{
			{
				StudentName: "A. Lee",
				FailedAssessments: []AssessmentResult{
					{AssessmentID: "Quiz3", Score: 42, LearningCompetency: "Reading"},
				},
			},
		},
		ClassRecommendations: []string{"Add reading support block"},
	}

	encoded, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded AnalyticsDocument
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	assert.Equal(t, []string{"Math", "Reading"}, decoded.CompetencyPerformance.Keys())
	require.Len(t, decoded.FailingStudents, 1)
	assert.Equal(t, "A. Lee", decoded.FailingStudents[0].StudentName)
	require.Len(t, decoded.FailingStudents[0].FailedAssessments, 1)
	assert.Equal(t, FlexFloat(42), decoded.FailingStudents[0].FailedAssessments[0].Score)
	assert.Equal(t, []string{"Add reading support block"}, decoded.ClassRecommendations)
}
