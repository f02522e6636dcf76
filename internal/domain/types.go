// Package domain contains the core entities for screening-based intervention
// recommendation: client identity, per-instrument score results, severity bands
// and the feature vector consumed by the pretrained tool classifier.
//
// Instruments covered:
//   - PHQ-9: 9-item depression severity questionnaire (0-3 per item)
//   - ASQ: Ask Suicide-Screening Questions, yes/no plus narrative fields
//   - BAI: Beck Anxiety Inventory (0-3 per item, variable item count)
package domain

import (
	"errors"
	"strings"
)

// Source identifies one of the three assessment record sets.
type Source string

const (
	SOURCE_PHQ9 Source = "PHQ9"
	SOURCE_ASQ  Source = "ASQ"
	SOURCE_BAI  Source = "BAI"
)

// PipelineOrder is the fixed order in which sources are searched.
var PipelineOrder = []Source{SOURCE_PHQ9, SOURCE_ASQ, SOURCE_BAI}

// String returns the string representation of the source.
func (s Source) String() string {
	return string(s)
}

// DepressionBand represents the PHQ-9 severity category for a total score.
// The string values are the labels returned to callers.
type DepressionBand string

const (
	DEPRESSION_MINIMAL           DepressionBand = "Minimal or None (0-4)"
	DEPRESSION_MILD              DepressionBand = "Mild Depression (5-9)"
	DEPRESSION_MODERATE          DepressionBand = "Moderate Depression (10-14)"
	DEPRESSION_MODERATELY_SEVERE DepressionBand = "Moderately Severe Depression (15-19)"
	DEPRESSION_SEVERE            DepressionBand = "Severe Depression (20-27)"
)

// AnxietyBand represents the BAI severity category for a total score.
type AnxietyBand string

const (
	ANXIETY_LOW      AnxietyBand = "Low Anxiety (0-21)"
	ANXIETY_MODERATE AnxietyBand = "Moderate Anxiety (22-35)"
	ANXIETY_SEVERE   AnxietyBand = "Severe Anxiety (36+)"
)

// RiskCategory represents the ASQ screen outcome.
type RiskCategory string

const (
	RISK_NON_ACUTE RiskCategory = "Non-Acute Positive Screen"
	RISK_ACUTE     RiskCategory = "Acute Positive Screen"
)

// Validation errors for categorical values
var (
	ErrNotFound              = errors.New("not found")
	ErrInvalidDepressionBand = errors.New("invalid PHQ-9 depression band")
	ErrInvalidAnxietyBand    = errors.New("invalid BAI anxiety band")
	ErrInvalidRiskCategory   = errors.New("invalid ASQ risk category")
)

// DepressionBandForScore buckets a PHQ-9 total into its band.
// Thresholds are inclusive upper bounds: 4, 9, 14, 19.
func DepressionBandForScore(score int) DepressionBand {
	switch {
	case score <= 4:
		return DEPRESSION_MINIMAL
	case score <= 9:
		return DEPRESSION_MILD
	case score <= 14:
		return DEPRESSION_MODERATE
	case score <= 19:
		return DEPRESSION_MODERATELY_SEVERE
	default:
		return DEPRESSION_SEVERE
	}
}

// AnxietyBandForScore buckets a BAI total into its band.
// Thresholds are inclusive upper bounds: 21, 35.
func AnxietyBandForScore(score int) AnxietyBand {
	switch {
	case score <= 21:
		return ANXIETY_LOW
	case score <= 35:
		return ANXIETY_MODERATE
	default:
		return ANXIETY_SEVERE
	}
}

// IsValid reports whether the band is one of the five PHQ-9 bands.
func (b DepressionBand) IsValid() bool {
	switch b {
	case DEPRESSION_MINIMAL, DEPRESSION_MILD, DEPRESSION_MODERATE, DEPRESSION_MODERATELY_SEVERE, DEPRESSION_SEVERE:
		return true
	default:
		return false
	}
}

// String returns the band label.
func (b DepressionBand) String() string {
	return string(b)
}

// Code returns the ordinal the tool classifier was trained against.
func (b DepressionBand) Code() (int, error) {
	switch b {
	case DEPRESSION_MINIMAL:
		return 0, nil
	case DEPRESSION_MILD:
		return 1, nil
	case DEPRESSION_MODERATE:
		return 2, nil
	case DEPRESSION_MODERATELY_SEVERE:
		return 3, nil
	case DEPRESSION_SEVERE:
		return 4, nil
	default:
		return 0, ErrInvalidDepressionBand
	}
}

// IsValid reports whether the band is one of the three BAI bands.
func (b AnxietyBand) IsValid() bool {
	switch b {
	case ANXIETY_LOW, ANXIETY_MODERATE, ANXIETY_SEVERE:
		return true
	default:
		return false
	}
}

// String returns the band label.
func (b AnxietyBand) String() string {
	return string(b)
}

// Code returns the ordinal the tool classifier was trained against.
func (b AnxietyBand) Code() (int, error) {
	switch b {
	case ANXIETY_LOW:
		return 0, nil
	case ANXIETY_MODERATE:
		return 1, nil
	case ANXIETY_SEVERE:
		return 2, nil
	default:
		return 0, ErrInvalidAnxietyBand
	}
}

// IsValid reports whether the category is acute or non-acute.
func (c RiskCategory) IsValid() bool {
	return c == RISK_ACUTE || c == RISK_NON_ACUTE
}

// String returns the category label.
func (c RiskCategory) String() string {
	return string(c)
}

// Code returns the ordinal the tool classifier was trained against.
func (c RiskCategory) Code() (int, error) {
	switch c {
	case RISK_NON_ACUTE:
		return 0, nil
	case RISK_ACUTE:
		return 1, nil
	default:
		return 0, ErrInvalidRiskCategory
	}
}

// RequiresImmediateFollowUp reports whether the screen demands same-day
// clinical contact.
func (c RiskCategory) RequiresImmediateFollowUp() bool {
	return c == RISK_ACUTE
}

// ClientIdentity holds the user-supplied name parts used to locate a client
// in every record set.
type ClientIdentity struct {
	FirstName  string `json:"first_name" form:"first_name" binding:"required"`
	MiddleName string `json:"middle_name,omitempty" form:"middle_name"`
	LastName   string `json:"last_name" form:"last_name" binding:"required"`
	Suffix     string `json:"suffix,omitempty" form:"suffix"`
}

// Validate checks that the required name parts are present.
func (c ClientIdentity) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" {
		return NewValidationError("first_name", "first name is required", c.FirstName)
	}
	if strings.TrimSpace(c.LastName) == "" {
		return NewValidationError("last_name", "last name is required", c.LastName)
	}
	return nil
}

// Parts returns the name parts in full-form order.
func (c ClientIdentity) Parts() []string {
	return []string{c.FirstName, c.MiddleName, c.LastName, c.Suffix}
}

// DisplayName joins the name parts with single spaces, skipping empty parts.
func (c ClientIdentity) DisplayName() string {
	return strings.Join(strings.Fields(strings.Join(c.Parts(), " ")), " ")
}
