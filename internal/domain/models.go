package domain

import (
	"fmt"
	"time"
)

// Ordinal response values are 0-3 on every instrument.
const MaxItemScore = 3

// PHQ9ItemCount is the fixed number of PHQ-9 items.
const PHQ9ItemCount = 9

// DepressionScore is the PHQ-9 result for a matched client row.
type DepressionScore struct {
	ClientName string         `json:"client_name"`
	TotalScore int            `json:"total_score"`
	ItemCount  int            `json:"item_count"`
	Band       DepressionBand `json:"category"`
	RowIndex   int            `json:"row_index"`
}

// MaxScore returns the highest total attainable for the scored items.
func (s DepressionScore) MaxScore() int {
	return s.ItemCount * MaxItemScore
}

// AnxietyScore is the BAI result for a matched client row.
type AnxietyScore struct {
	ClientName string      `json:"client_name"`
	TotalScore int         `json:"total_score"`
	ItemCount  int         `json:"item_count"`
	Band       AnxietyBand `json:"category"`
	RowIndex   int         `json:"row_index"`
}

// MaxScore returns the highest total attainable for the scored items.
func (s AnxietyScore) MaxScore() int {
	return s.ItemCount * MaxItemScore
}

// RiskAssessmentResult is the ASQ outcome plus the narrative fields shown to
// the clinician alongside it.
type RiskAssessmentResult struct {
	Category        RiskCategory `json:"category"`
	SelectedOptions string       `json:"selected_options"`
	EverAttempted   string       `json:"ever_attempted"`
	HowAndWhen      string       `json:"how_and_when"`
	ThoughtsNow     string       `json:"thoughts_now"`
	Description     string       `json:"description"`
	RowIndex        int          `json:"row_index"`
}

// Feature positions in the classifier's training schema.
const (
	FEATURE_PHQ9_TOTAL = iota
	FEATURE_PHQ9_CODE
	FEATURE_BAI_TOTAL
	FEATURE_BAI_CODE
	FEATURE_RISK_CODE
	FeatureCount
)

// FeatureNames lists the training column names, index-aligned with FeatureVector.
var FeatureNames = []string{
	"Total_PHQ9_Score",
	"Primary_Impression_PHQ9",
	"Total_BAI_Score",
	"Primary_Impression_BAI",
	"Ask_Suicide_Risk",
}

// FeatureVector is the fixed-order numeric input to the tool classifier:
// [PHQ9 total, PHQ9 code, BAI total, BAI code, risk code].
type FeatureVector [FeatureCount]float64

// Slice returns the vector as a slice for model input.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// Named returns the vector keyed by training column name.
func (v FeatureVector) Named() map[string]float64 {
	out := make(map[string]float64, FeatureCount)
	for i, name := range FeatureNames {
		out[name] = v[i]
	}
	return out
}

// FeatureInput is the named, caller-facing form of a FeatureVector.
type FeatureInput struct {
	TotalPHQ9Score        float64 `json:"Total_PHQ9_Score" jsonschema:"PHQ-9 total score, 0-27"`
	PrimaryImpressionPHQ9 float64 `json:"Primary_Impression_PHQ9" jsonschema:"PHQ-9 band code, 0 (minimal) to 4 (severe)"`
	TotalBAIScore         float64 `json:"Total_BAI_Score" jsonschema:"BAI total score"`
	PrimaryImpressionBAI  float64 `json:"Primary_Impression_BAI" jsonschema:"BAI band code, 0 (low) to 2 (severe)"`
	AskSuicideRisk        float64 `json:"Ask_Suicide_Risk" jsonschema:"ASQ code, 0 (non-acute) or 1 (acute)"`
}

// Vector converts the named input to schema order.
func (f FeatureInput) Vector() FeatureVector {
	var v FeatureVector
	v[FEATURE_PHQ9_TOTAL] = f.TotalPHQ9Score
	v[FEATURE_PHQ9_CODE] = f.PrimaryImpressionPHQ9
	v[FEATURE_BAI_TOTAL] = f.TotalBAIScore
	v[FEATURE_BAI_CODE] = f.PrimaryImpressionBAI
	v[FEATURE_RISK_CODE] = f.AskSuicideRisk
	return v
}

// Validate rejects codes outside the trained enumerations.
func (f FeatureInput) Validate() error {
	if f.TotalPHQ9Score < 0 || f.TotalPHQ9Score > PHQ9ItemCount*MaxItemScore {
		return NewValidationError("Total_PHQ9_Score", "must be between 0 and 27", f.TotalPHQ9Score)
	}
	if f.PrimaryImpressionPHQ9 < 0 || f.PrimaryImpressionPHQ9 > 4 {
		return NewValidationError("Primary_Impression_PHQ9", "must be between 0 and 4", f.PrimaryImpressionPHQ9)
	}
	if f.TotalBAIScore < 0 {
		return NewValidationError("Total_BAI_Score", "must not be negative", f.TotalBAIScore)
	}
	if f.PrimaryImpressionBAI < 0 || f.PrimaryImpressionBAI > 2 {
		return NewValidationError("Primary_Impression_BAI", "must be between 0 and 2", f.PrimaryImpressionBAI)
	}
	if f.AskSuicideRisk != 0 && f.AskSuicideRisk != 1 {
		return NewValidationError("Ask_Suicide_Risk", "must be 0 or 1", f.AskSuicideRisk)
	}
	return nil
}

// ScoreReport is the wire form of a scored instrument (PHQ-9, BAI).
type ScoreReport struct {
	ClientName            string   `json:"client_name"`
	TotalScore            int      `json:"total_score"`
	Interpretation        string   `json:"Interpretation"`
	PrimaryImpression     string   `json:"primary_impression"`
	AdditionalImpressions []string `json:"additional_impressions"`
}

// RiskReport is the wire form of the ASQ result. Key names match the
// questionnaire fields consumed by existing dashboards.
type RiskReport struct {
	Interpretation        string   `json:"Interpretation"`
	PrimaryImpression     string   `json:"primary_impression"`
	AdditionalImpressions []string `json:"additional_impressions"`
	SelectedOptions       string   `json:"selected_options"`
	EverAttempted         string   `json:"have_you_ever_tried to kill yourself?"`
	HowAndWhen            string   `json:"how_and_when"`
	ThoughtsNow           string   `json:"Are you having thoughts of killing yourself right now?"`
	PleaseDescribe        string   `json:"please_describe"`
}

// AnalysisResult is the all-or-nothing pipeline output.
type AnalysisResult struct {
	PHQ9             ScoreReport `json:"phq9"`
	ASQ              RiskReport  `json:"asq"`
	BAI              ScoreReport `json:"bai"`
	RecommendedTools []string    `json:"recommended_tools"`
}

// AnalysisTrace carries the non-wire by-products of one pipeline run, used
// for logging and diagnostics.
type AnalysisTrace struct {
	ID             string               `json:"id"`
	Depression     DepressionScore      `json:"depression"`
	Risk           RiskAssessmentResult `json:"risk"`
	Anxiety        AnxietyScore         `json:"anxiety"`
	Features       FeatureVector        `json:"features"`
	ProcessingTime time.Duration        `json:"processing_time"`
}

// String renders the vector with training column names for log output.
func (v FeatureVector) String() string {
	return fmt.Sprintf("[%s=%g %s=%g %s=%g %s=%g %s=%g]",
		FeatureNames[0], v[0], FeatureNames[1], v[1], FeatureNames[2], v[2],
		FeatureNames[3], v[3], FeatureNames[4], v[4])
}
