package narrative

import (
	"fmt"

	"github.com/screening-recommender/internal/domain"
)

// Phrase categories drawn for each instrument.
const (
	PHRASES_DEPRESSION        = "Depression"
	PHRASES_PHYSICAL_SYMPTOMS = "Physical Symptoms"
	PHRASES_WELL_BEING        = "Well-Being"
	PHRASES_ANXIETY           = "Anxiety"
	PHRASES_TRAUMA_PTSD       = "Trauma & PTSD"
	PHRASES_YOUTH_MENTAL      = "Youth Mental Health Test"
)

// Set holds the three instrument phrase libraries.
type Set struct {
	PHQ9 *Library
	ASQ  *Library
	BAI  *Library
}

// RequiredCategories lists the categories each library must define.
var RequiredCategories = map[domain.Source][]string{
	domain.SOURCE_PHQ9: {PHRASES_DEPRESSION, PHRASES_PHYSICAL_SYMPTOMS, PHRASES_WELL_BEING},
	domain.SOURCE_ASQ:  {domain.RISK_ACUTE.String(), domain.RISK_NON_ACUTE.String()},
	domain.SOURCE_BAI:  {PHRASES_ANXIETY, PHRASES_TRAUMA_PTSD, PHRASES_YOUTH_MENTAL},
}

// LoadSet loads the three libraries named in cfg.
func LoadSet(cfg domain.NarrativeConfig) (*Set, error) {
	phq9, err := LoadLibrary(cfg.PHQ9Path)
	if err != nil {
		return nil, fmt.Errorf("loading PHQ9 phrases: %w", err)
	}
	asq, err := LoadLibrary(cfg.ASQPath)
	if err != nil {
		return nil, fmt.Errorf("loading ASQ phrases: %w", err)
	}
	bai, err := LoadLibrary(cfg.BAIPath)
	if err != nil {
		return nil, fmt.Errorf("loading BAI phrases: %w", err)
	}
	return &Set{PHQ9: phq9, ASQ: asq, BAI: bai}, nil
}

// Library returns the library for source, or nil.
func (s *Set) Library(source domain.Source) *Library {
	switch source {
	case domain.SOURCE_PHQ9:
		return s.PHQ9
	case domain.SOURCE_ASQ:
		return s.ASQ
	case domain.SOURCE_BAI:
		return s.BAI
	default:
		return nil
	}
}

// Check runs Require on every library in pipeline order and returns the
// problems found.
func (s *Set) Check() []error {
	var errs []error
	for _, source := range domain.PipelineOrder {
		if err := s.Library(source).Require(RequiredCategories[source]...); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
