package service

import (
	"strings"

	"github.com/screening-recommender/internal/domain"
)

// ResponseScale maps a closed set of response phrases to 0-3 weights.
type ResponseScale map[string]int

// Score returns the weight of a trimmed response. Unrecognized or empty
// text scores 0.
func (s ResponseScale) Score(response string) int {
	return s[strings.TrimSpace(response)]
}

// Total sums the weights of every response.
func (s ResponseScale) Total(responses []string) int {
	total := 0
	for _, r := range responses {
		total += s.Score(r)
	}
	return total
}

// PHQ9Scale is the PHQ-9 response vocabulary.
var PHQ9Scale = ResponseScale{
	"Not at all":              0,
	"Several Days":            1,
	"More than half the days": 2,
	"Nearly every day":        3,
}

// BAIScale is the BAI response vocabulary.
var BAIScale = ResponseScale{
	"Not at all":                               0,
	"Mildly, but it didn't bother me much":     1,
	"Moderately - it wasn't pleasant at times": 2,
	"Severely - it bothered me a lot":          3,
}

// matchedRow is the first row of a record set whose name matches the client.
type matchedRow struct {
	cells []string
	index int
}

// findClientRow scans rows in source order and returns the first match.
// Blank rows are skipped.
func findClientRow(set *domain.RecordSet, locator ColumnLocator, matcher *NameMatcher, clientKey string) (matchedRow, bool) {
	for i, row := range set.Rows {
		if isBlankRow(row) {
			continue
		}
		if matcher.Matches(clientKey, RowNameOf(locator, row)) {
			return matchedRow{cells: row, index: i}, true
		}
	}
	return matchedRow{}, false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
