package service

import (
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

// AnxietyScorer locates a client in the BAI record set and scores every item
// between the timestamp and the trailing identity cells.
type AnxietyScorer struct {
	logger  *logrus.Logger
	matcher *NameMatcher
	schema  *OffsetSchema
}

// NewAnxietyScorer creates a new BAI scorer
func NewAnxietyScorer(logger *logrus.Logger, matcher *NameMatcher) *AnxietyScorer {
	return &AnxietyScorer{logger: logger, matcher: matcher, schema: BAISchema}
}

// Score returns the client's BAI total and band, or a NotFoundError naming
// BAI when no row matches.
func (a *AnxietyScorer) Score(set *domain.RecordSet, client domain.ClientIdentity) (*domain.AnxietyScore, error) {
	row, ok := findClientRow(set, a.schema, a.matcher, a.matcher.ClientKey(client))
	if !ok {
		return nil, &domain.NotFoundError{Source: domain.SOURCE_BAI}
	}

	items := a.schema.Items(row.cells)
	total := BAIScale.Total(items)
	score := &domain.AnxietyScore{
		ClientName: DisplayName(client),
		TotalScore: total,
		ItemCount:  len(items),
		Band:       domain.AnxietyBandForScore(total),
		RowIndex:   row.index,
	}

	a.logger.WithFields(logrus.Fields{
		"source":      domain.SOURCE_BAI,
		"row_index":   score.RowIndex,
		"item_count":  score.ItemCount,
		"total_score": score.TotalScore,
		"category":    score.Band,
	}).Info("BAI score computed")

	return score, nil
}
