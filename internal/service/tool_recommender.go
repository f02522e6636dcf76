package service

import (
	"fmt"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/pkg/mlmodel"
)

// ModelRecommender recommends intervention tools with the pretrained
// classifier and label decoder. The bundle is shared read-only.
type ModelRecommender struct {
	bundle *mlmodel.Bundle
}

// NewModelRecommender creates a recommender over a loaded model bundle
func NewModelRecommender(bundle *mlmodel.Bundle) *ModelRecommender {
	return &ModelRecommender{bundle: bundle}
}

// Recommend predicts a single sample and decodes the set labels. The result
// is never nil.
func (m *ModelRecommender) Recommend(features domain.FeatureVector) ([]string, error) {
	tools, err := m.bundle.Predict(features.Slice())
	if err != nil {
		return nil, domain.NewProcessingError(fmt.Sprintf("predict recommended tools for %s", features), err)
	}
	if tools == nil {
		tools = []string{}
	}
	return tools, nil
}

// SchemaVersion returns the artifact version tag.
func (m *ModelRecommender) SchemaVersion() string {
	return m.bundle.Classifier.SchemaVersion
}

// LabelCount returns the number of tools the model can recommend.
func (m *ModelRecommender) LabelCount() int {
	return m.bundle.Classifier.LabelCount()
}
