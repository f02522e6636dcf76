package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/screening-recommender/internal/domain"
)

// RowName is the name parts extracted from one source row. Sources without a
// suffix column leave Suffix empty.
type RowName struct {
	First  string
	Middle string
	Last   string
	Suffix string
}

// NameMatcher compares a client's name against row names using a
// whitespace-collapsed, case-folded key. There is no fuzzy matching and no
// diacritic folding.
type NameMatcher struct{}

// NewNameMatcher creates a new name matcher
func NewNameMatcher() *NameMatcher {
	return &NameMatcher{}
}

// Key normalizes name parts: trim, join with single spaces, collapse
// whitespace runs, case-fold.
func (m *NameMatcher) Key(parts ...string) string {
	joined := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	// Casers carry state and are not safe to share across goroutines.
	return cases.Fold().String(joined)
}

// ClientKey returns the comparison key for a client's full name.
func (m *NameMatcher) ClientKey(client domain.ClientIdentity) string {
	return m.Key(client.Parts()...)
}

// Matches reports whether clientKey equals the row's full-form key or its
// first+last key.
func (m *NameMatcher) Matches(clientKey string, row RowName) bool {
	if clientKey == "" {
		return false
	}
	if clientKey == m.Key(row.First, row.Middle, row.Last, row.Suffix) {
		return true
	}
	return clientKey == m.Key(row.First, row.Last)
}

// DisplayName renders the client name the way it is echoed back in results.
// Every run of letters is title-cased on its own, so any non-letter starts a
// new word: "o'neal" becomes "O'Neal" and "smith-jones" "Smith-Jones".
func DisplayName(client domain.ClientIdentity) string {
	name := client.DisplayName()
	title := cases.Title(language.English)

	var b strings.Builder
	b.Grow(len(name))
	start := -1
	for i, r := range name {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			b.WriteString(title.String(name[start:i]))
			start = -1
		}
		b.WriteRune(r)
	}
	if start >= 0 {
		b.WriteString(title.String(name[start:]))
	}
	return b.String()
}
