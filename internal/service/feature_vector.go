package service

import (
	"fmt"

	"github.com/screening-recommender/internal/domain"
)

// BuildFeatureVector encodes the three screening results in the classifier's
// training order: [PHQ9 total, PHQ9 code, BAI total, BAI code, risk code].
func BuildFeatureVector(depression domain.DepressionScore, anxiety domain.AnxietyScore, risk domain.RiskAssessmentResult) (domain.FeatureVector, error) {
	var v domain.FeatureVector

	phq9Code, err := depression.Band.Code()
	if err != nil {
		return v, fmt.Errorf("encoding PHQ9 category: %w", err)
	}
	baiCode, err := anxiety.Band.Code()
	if err != nil {
		return v, fmt.Errorf("encoding BAI category: %w", err)
	}
	riskCode, err := risk.Category.Code()
	if err != nil {
		return v, fmt.Errorf("encoding ASQ category: %w", err)
	}

	v[domain.FEATURE_PHQ9_TOTAL] = float64(depression.TotalScore)
	v[domain.FEATURE_PHQ9_CODE] = float64(phq9Code)
	v[domain.FEATURE_BAI_TOTAL] = float64(anxiety.TotalScore)
	v[domain.FEATURE_BAI_CODE] = float64(baiCode)
	v[domain.FEATURE_RISK_CODE] = float64(riskCode)
	return v, nil
}
