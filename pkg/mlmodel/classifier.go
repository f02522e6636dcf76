package mlmodel

import (
	"errors"
	"fmt"
	"math"
)

// ModelTypeOneVsRestLogistic is the only classifier layout supported.
const ModelTypeOneVsRestLogistic = "one_vs_rest_logistic_regression"

var (
	ErrNoEstimators       = errors.New("classifier has no estimators")
	ErrFeatureCount       = errors.New("feature count mismatch")
	ErrSchemaMismatch     = errors.New("feature schema mismatch")
	ErrVersionMismatch    = errors.New("classifier and decoder schema versions differ")
	ErrLabelCountMismatch = errors.New("estimator count does not match decoder classes")
)

// Estimator is one binary logistic model. Labels that were constant in the
// training data carry Constant instead of weights.
type Estimator struct {
	Coef      []float64 `json:"coef" yaml:"coef"`
	Intercept float64   `json:"intercept" yaml:"intercept"`
	Constant  *int      `json:"constant,omitempty" yaml:"constant,omitempty"`
}

// Classifier is a one-vs-rest multi-label logistic regression: one binary
// estimator per label, a label is predicted when its decision value is
// strictly positive.
type Classifier struct {
	SchemaVersion string      `json:"schema_version" yaml:"schema_version"`
	ModelType     string      `json:"model_type" yaml:"model_type"`
	FeatureNames  []string    `json:"feature_names" yaml:"feature_names"`
	Estimators    []Estimator `json:"estimators" yaml:"estimators"`
}

// LoadClassifier reads and validates a classifier artifact.
func LoadClassifier(path string) (*Classifier, error) {
	c := &Classifier{}
	if err := decodeArtifact(path, c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid classifier artifact %s: %w", path, err)
	}
	return c, nil
}

func (c *Classifier) validate() error {
	if c.ModelType != "" && c.ModelType != ModelTypeOneVsRestLogistic {
		return fmt.Errorf("unsupported model type %q", c.ModelType)
	}
	if len(c.FeatureNames) == 0 {
		return errors.New("feature_names is empty")
	}
	if len(c.Estimators) == 0 {
		return ErrNoEstimators
	}
	for i, est := range c.Estimators {
		if est.Constant != nil {
			if *est.Constant != 0 && *est.Constant != 1 {
				return fmt.Errorf("estimator %d: constant must be 0 or 1, got %d", i, *est.Constant)
			}
			continue
		}
		if len(est.Coef) != len(c.FeatureNames) {
			return fmt.Errorf("estimator %d: %w: %d coefficients for %d features",
				i, ErrFeatureCount, len(est.Coef), len(c.FeatureNames))
		}
	}
	return nil
}

// CheckFeatures verifies the artifact was trained on exactly the expected
// columns in the expected order.
func (c *Classifier) CheckFeatures(expected []string) error {
	if len(expected) != len(c.FeatureNames) {
		return fmt.Errorf("%w: model has %d features, expected %d", ErrSchemaMismatch, len(c.FeatureNames), len(expected))
	}
	for i := range expected {
		if c.FeatureNames[i] != expected[i] {
			return fmt.Errorf("%w: position %d is %q, expected %q", ErrSchemaMismatch, i, c.FeatureNames[i], expected[i])
		}
	}
	return nil
}

// CheckDecoder verifies the decoder was fitted alongside this classifier.
func (c *Classifier) CheckDecoder(d *LabelDecoder) error {
	if c.SchemaVersion != d.SchemaVersion {
		return fmt.Errorf("%w: %q vs %q", ErrVersionMismatch, c.SchemaVersion, d.SchemaVersion)
	}
	if len(c.Estimators) != len(d.Classes) {
		return fmt.Errorf("%w: %d estimators, %d classes", ErrLabelCountMismatch, len(c.Estimators), len(d.Classes))
	}
	return nil
}

// LabelCount returns the number of labels the classifier predicts.
func (c *Classifier) LabelCount() int {
	return len(c.Estimators)
}

// DecisionFunction returns the raw logit for every label of one sample.
func (c *Classifier) DecisionFunction(x []float64) ([]float64, error) {
	if len(x) != len(c.FeatureNames) {
		return nil, fmt.Errorf("%w: got %d values, expected %d", ErrFeatureCount, len(x), len(c.FeatureNames))
	}
	out := make([]float64, len(c.Estimators))
	for k, est := range c.Estimators {
		if est.Constant != nil {
			if *est.Constant == 1 {
				out[k] = math.Inf(1)
			} else {
				out[k] = math.Inf(-1)
			}
			continue
		}
		z := est.Intercept
		for j, w := range est.Coef {
			z += w * x[j]
		}
		out[k] = z
	}
	return out, nil
}

// Predict returns the label-indicator matrix for a batch of samples.
func (c *Classifier) Predict(batch [][]float64) ([][]int, error) {
	out := make([][]int, len(batch))
	for i, x := range batch {
		z, err := c.DecisionFunction(x)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		row := make([]int, len(z))
		for k, v := range z {
			if v > 0 {
				row[k] = 1
			}
		}
		out[i] = row
	}
	return out, nil
}
