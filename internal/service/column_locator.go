package service

import (
	"strings"
)

// Field names a logical column in an assessment row.
type Field string

const (
	FIELD_FIRST_NAME       Field = "first_name"
	FIELD_MIDDLE_NAME      Field = "middle_name"
	FIELD_LAST_NAME        Field = "last_name"
	FIELD_SUFFIX           Field = "suffix"
	FIELD_SELECTED_OPTIONS Field = "selected_options"
	FIELD_EVER_ATTEMPTED   Field = "ever_attempted"
	FIELD_HOW_AND_WHEN     Field = "how_and_when"
	FIELD_RISK_SCREEN      Field = "risk_screen"
	FIELD_THOUGHTS_NOW     Field = "thoughts_now"
	FIELD_DESCRIPTION      Field = "description"
)

// unavailable marks a field whose column could not be resolved.
const unavailable = -1

// ColumnLocator resolves field positions for one source format. Reads past
// the end of a row, or of a field with no resolved column, yield "" and false.
type ColumnLocator interface {
	Cell(row []string, field Field) (string, bool)
	Items(row []string) []string
}

// RowNameOf extracts the name parts a locator can see in row.
func RowNameOf(locator ColumnLocator, row []string) RowName {
	first, _ := locator.Cell(row, FIELD_FIRST_NAME)
	middle, _ := locator.Cell(row, FIELD_MIDDLE_NAME)
	last, _ := locator.Cell(row, FIELD_LAST_NAME)
	suffix, _ := locator.Cell(row, FIELD_SUFFIX)
	return RowName{First: first, Middle: middle, Last: last, Suffix: suffix}
}

func cellAt(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[idx]), true
}

// HeaderSchema resolves columns by exact header text. Items are a fixed-length
// run starting at the item header's column.
type HeaderSchema struct {
	columns   map[Field]int
	itemStart int
	itemCount int
	missing   []string
}

// NewHeaderSchema looks up every named column in header. Headers that are not
// present make their field unavailable rather than failing.
func NewHeaderSchema(header []string, names map[Field]string, itemHeader string, itemCount int) *HeaderSchema {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	s := &HeaderSchema{
		columns:   make(map[Field]int, len(names)),
		itemStart: unavailable,
		itemCount: itemCount,
	}
	for field, name := range names {
		if i, ok := index[name]; ok {
			s.columns[field] = i
		} else {
			s.columns[field] = unavailable
			s.missing = append(s.missing, name)
		}
	}
	if i, ok := index[itemHeader]; ok {
		s.itemStart = i
	} else {
		s.missing = append(s.missing, itemHeader)
	}
	return s
}

// Missing lists the header names that were not found.
func (s *HeaderSchema) Missing() []string {
	return s.missing
}

// Cell returns the trimmed value of field in row.
func (s *HeaderSchema) Cell(row []string, field Field) (string, bool) {
	idx, ok := s.columns[field]
	if !ok {
		return "", false
	}
	return cellAt(row, idx)
}

// Items returns exactly itemCount cells; unavailable cells are "".
func (s *HeaderSchema) Items(row []string) []string {
	items := make([]string, s.itemCount)
	if s.itemStart == unavailable {
		return items
	}
	for i := range items {
		items[i], _ = cellAt(row, s.itemStart+i)
	}
	return items
}

// OffsetSchema resolves columns by fixed position. Negative offsets count
// from the end of the row, so -1 is the last cell. Items span from ItemStart
// up to, but excluding, the last ItemTrailing cells.
type OffsetSchema struct {
	Offsets      map[Field]int
	ItemStart    int
	ItemTrailing int
}

// Cell returns the trimmed value of field in row.
func (s *OffsetSchema) Cell(row []string, field Field) (string, bool) {
	off, ok := s.Offsets[field]
	if !ok {
		return "", false
	}
	if off < 0 {
		off += len(row)
	}
	return cellAt(row, off)
}

// Items returns the item span, or nil when the row is too short to hold one.
func (s *OffsetSchema) Items(row []string) []string {
	end := len(row) - s.ItemTrailing
	if s.ItemStart < 0 || end <= s.ItemStart {
		return nil
	}
	items := make([]string, 0, end-s.ItemStart)
	for _, cell := range row[s.ItemStart:end] {
		items = append(items, strings.TrimSpace(cell))
	}
	return items
}

// PHQ-9 export headers. The suffix header carries two spaces as exported.
const (
	PHQ9HeaderFirstName  = "First name"
	PHQ9HeaderMiddleName = "Middle name"
	PHQ9HeaderLastName   = "Last name"
	PHQ9HeaderSuffix     = "Suffix  (e.g., Jr., Sr., III)"
	PHQ9HeaderFirstItem  = "Little interest or pleasure in doing things"
)

// NewPHQ9Schema builds the header-based locator for a PHQ-9 export.
func NewPHQ9Schema(header []string) *HeaderSchema {
	return NewHeaderSchema(header, map[Field]string{
		FIELD_FIRST_NAME:  PHQ9HeaderFirstName,
		FIELD_MIDDLE_NAME: PHQ9HeaderMiddleName,
		FIELD_LAST_NAME:   PHQ9HeaderLastName,
		FIELD_SUFFIX:      PHQ9HeaderSuffix,
	}, PHQ9HeaderFirstItem, 9)
}

// ASQSchema is the fixed column layout of the ASQ export.
var ASQSchema = &OffsetSchema{
	Offsets: map[Field]int{
		FIELD_SELECTED_OPTIONS: 2,
		FIELD_EVER_ATTEMPTED:   3,
		FIELD_HOW_AND_WHEN:     4,
		FIELD_RISK_SCREEN:      5,
		FIELD_THOUGHTS_NOW:     6,
		FIELD_DESCRIPTION:      7,
		FIELD_FIRST_NAME:       8,
		FIELD_MIDDLE_NAME:      9,
		FIELD_LAST_NAME:        10,
	},
}

// BAISchema is the fixed column layout of the BAI export: a timestamp, the
// item responses, then four trailing identity and metadata cells.
var BAISchema = &OffsetSchema{
	Offsets: map[Field]int{
		FIELD_FIRST_NAME:  -4,
		FIELD_MIDDLE_NAME: -3,
		FIELD_LAST_NAME:   -2,
	},
	ItemStart:    1,
	ItemTrailing: 4,
}
