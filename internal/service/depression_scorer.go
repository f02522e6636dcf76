package service

import (
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

// DepressionScorer locates a client in the PHQ-9 record set and scores the
// nine item responses.
type DepressionScorer struct {
	logger  *logrus.Logger
	matcher *NameMatcher
}

// NewDepressionScorer creates a new PHQ-9 scorer
func NewDepressionScorer(logger *logrus.Logger, matcher *NameMatcher) *DepressionScorer {
	return &DepressionScorer{logger: logger, matcher: matcher}
}

// Score returns the client's PHQ-9 total and band, or a NotFoundError naming
// PHQ9 when no row matches.
func (d *DepressionScorer) Score(set *domain.RecordSet, client domain.ClientIdentity) (*domain.DepressionScore, error) {
	schema := NewPHQ9Schema(set.Header)
	if missing := schema.Missing(); len(missing) > 0 {
		d.logger.WithFields(logrus.Fields{
			"source":  domain.SOURCE_PHQ9,
			"missing": missing,
		}).Warn("PHQ9 header columns not found, treating as empty")
	}

	row, ok := findClientRow(set, schema, d.matcher, d.matcher.ClientKey(client))
	if !ok {
		return nil, &domain.NotFoundError{Source: domain.SOURCE_PHQ9}
	}

	items := schema.Items(row.cells)
	total := PHQ9Scale.Total(items)
	score := &domain.DepressionScore{
		ClientName: DisplayName(client),
		TotalScore: total,
		ItemCount:  len(items),
		Band:       domain.DepressionBandForScore(total),
		RowIndex:   row.index,
	}

	d.logger.WithFields(logrus.Fields{
		"source":      domain.SOURCE_PHQ9,
		"row_index":   score.RowIndex,
		"total_score": score.TotalScore,
		"category":    score.Band,
	}).Info("PHQ9 score computed")

	return score, nil
}
