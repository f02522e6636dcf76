package service

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

// notAnswered fills ASQ narrative fields whose column is absent from the row.
const notAnswered = "N/A"

// ClassifyRisk categorizes the ASQ screening field: any value containing
// "Yes" (case-sensitive) is acute.
func ClassifyRisk(screen string) domain.RiskCategory {
	if strings.Contains(strings.TrimSpace(screen), "Yes") {
		return domain.RISK_ACUTE
	}
	return domain.RISK_NON_ACUTE
}

// RiskClassifier locates a client in the ASQ record set and categorizes
// their screen.
type RiskClassifier struct {
	logger  *logrus.Logger
	matcher *NameMatcher
	schema  *OffsetSchema
}

// NewRiskClassifier creates a new ASQ classifier
func NewRiskClassifier(logger *logrus.Logger, matcher *NameMatcher) *RiskClassifier {
	return &RiskClassifier{logger: logger, matcher: matcher, schema: ASQSchema}
}

// Assess returns the client's ASQ result, or a NotFoundError naming ASQ when
// no row matches.
func (r *RiskClassifier) Assess(set *domain.RecordSet, client domain.ClientIdentity) (*domain.RiskAssessmentResult, error) {
	row, ok := findClientRow(set, r.schema, r.matcher, r.matcher.ClientKey(client))
	if !ok {
		return nil, &domain.NotFoundError{Source: domain.SOURCE_ASQ}
	}

	screen, _ := r.schema.Cell(row.cells, FIELD_RISK_SCREEN)
	selected, _ := r.schema.Cell(row.cells, FIELD_SELECTED_OPTIONS)
	result := &domain.RiskAssessmentResult{
		Category:        ClassifyRisk(screen),
		SelectedOptions: selected,
		EverAttempted:   r.narrative(row.cells, FIELD_EVER_ATTEMPTED),
		HowAndWhen:      r.narrative(row.cells, FIELD_HOW_AND_WHEN),
		ThoughtsNow:     r.narrative(row.cells, FIELD_THOUGHTS_NOW),
		Description:     r.narrative(row.cells, FIELD_DESCRIPTION),
		RowIndex:        row.index,
	}

	entry := r.logger.WithFields(logrus.Fields{
		"source":    domain.SOURCE_ASQ,
		"row_index": result.RowIndex,
		"category":  result.Category,
	})
	if result.Category.RequiresImmediateFollowUp() {
		entry.Warn("Acute ASQ screen, immediate follow-up required")
	} else {
		entry.Info("ASQ risk classified")
	}

	return result, nil
}

func (r *RiskClassifier) narrative(row []string, field Field) string {
	if v, ok := r.schema.Cell(row, field); ok {
		return v
	}
	return notAnswered
}
