package analyzer

import (
	"fmt"
	"sort"

	"github.com/gradekit/gradeboard/internal/analytics"
)

// focusCount caps recommendations at the most challenging competencies.
const focusCount = 3

// Recommend generates class-level recommendation text for the weakest
// competencies, tiered by pass rate.
func Recommend(rates analytics.PassRates) []string {
	type ranked struct {
		competency string
		rate       float64
	}

	sorted := make([]ranked, 0, rates.Len())
	for _, competency := range rates.Keys() {
		rate, _ := rates.Get(competency)
		sorted = append(sorted, ranked{competency: competency, rate: rate})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].rate < sorted[j].rate
	})

	var recommendations []string
	for i, entry := range sorted {
		if i >= focusCount {
			break
		}

		switch {
		case entry.rate < 50:
			recommendations = append(recommendations, fmt.Sprintf(
				"URGENT FOCUS: '%s' has a very low pass rate of %.2f%%. A comprehensive re-teaching of this topic is strongly recommended for the entire class.",
				entry.competency, entry.rate))
		case entry.rate < 75:
			recommendations = append(recommendations, fmt.Sprintf(
				"HIGH PRIORITY: '%s' shows a significant struggle with a %.2f%% pass rate. Consider a targeted review session and providing supplementary materials.",
				entry.competency, entry.rate))
		default:
			recommendations = append(recommendations, fmt.Sprintf(
				"REVIEW SUGGESTED: While the pass rate for '%s' is %.2f%%, a number of students still require support. A quick review or a peer-tutoring session could be beneficial.",
				entry.competency, entry.rate))
		}
	}

	return recommendations
}
