// Package mlmodel loads the pretrained intervention-tool classifier and its
// label decoder. Both artifacts are read-only after load and safe for
// concurrent use.
package mlmodel

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// decodeArtifact reads a YAML or JSON artifact into out. JSON is selected by
// file extension; anything else is parsed as YAML.
func decodeArtifact(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse JSON artifact %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse YAML artifact %s: %w", path, err)
		}
	}
	return nil
}

// Bundle is the classifier and decoder pair, versioned together.
type Bundle struct {
	Classifier *Classifier
	Decoder    *LabelDecoder
}

// LoadBundle loads both artifacts and checks that they agree with each other
// and with the expected feature schema.
func LoadBundle(classifierPath, decoderPath string, expectedFeatures []string) (*Bundle, error) {
	classifier, err := LoadClassifier(classifierPath)
	if err != nil {
		return nil, err
	}
	if err := classifier.CheckFeatures(expectedFeatures); err != nil {
		return nil, err
	}

	decoder, err := LoadDecoder(decoderPath)
	if err != nil {
		return nil, err
	}
	if err := classifier.CheckDecoder(decoder); err != nil {
		return nil, err
	}

	return &Bundle{Classifier: classifier, Decoder: decoder}, nil
}

// Predict runs the classifier on one sample and decodes the indicator row
// into label names.
func (b *Bundle) Predict(features []float64) ([]string, error) {
	indicators, err := b.Classifier.Predict([][]float64{features})
	if err != nil {
		return nil, err
	}
	labels, err := b.Decoder.InverseTransform(indicators)
	if err != nil {
		return nil, err
	}
	return labels[0], nil
}
