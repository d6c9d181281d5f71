// Package textscan flags potential personal identifiers in free text.
package textscan

import (
	"fmt"
	"strings"

	"github.com/trailsight/trailsight/src/evidence"
)

const maxTextRisk = 25

// keywordWeights is the fixed identifier table. Kept as an ordered slice so
// findings come out in a stable order; each matched keyword contributes
// independently with no de-duplication by category.
var keywordWeights = []struct {
	word   string
	weight int
}{
	{"phone", 5},
	{"email", 5},
	{"address", 10},
	{"college", 5},
	{"school", 5},
	{"dob", 10},
	{"location", 5},
	{"city", 5},
}

// Analyze scores free text by case-insensitive substring match against the
// keyword table, capping the total at 25.
func Analyze(text string) evidence.TextReport {
	report := evidence.TextReport{Findings: []string{}}
	lower := strings.ToLower(text)

	for _, kw := range keywordWeights {
		if strings.Contains(lower, kw.word) {
			report.Findings = append(report.Findings,
				fmt.Sprintf("Text contains potential personal identifier: '%s'", kw.word))
			report.Risk += kw.weight
		}
	}

	if report.Risk > maxTextRisk {
		report.Risk = maxTextRisk
	}
	return report
}
