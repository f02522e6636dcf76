// Package setup wires the screening pipeline from configuration. Every
// entrypoint builds its components here so the HTTP server, the MCP server
// and the CLI share one startup path.
package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/narrative"
	"github.com/screening-recommender/internal/service"
	"github.com/screening-recommender/pkg/external"
	"github.com/screening-recommender/pkg/mlmodel"
)

// Components holds the long-lived collaborators built at startup. The model
// bundle and phrase libraries are read-only after Build returns.
type Components struct {
	Analyzer    *service.AnalysisService
	Recommender *service.ModelRecommender
	Sheets      *external.AssessmentSheetClient
	Phrases     *narrative.Set
}

// LoadModel loads the classifier and decoder and checks them against the
// feature schema. Any drift is fatal.
func LoadModel(cfg domain.ModelConfig) (*mlmodel.Bundle, error) {
	bundle, err := mlmodel.LoadBundle(cfg.ClassifierPath, cfg.DecoderPath, domain.FeatureNames)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifacts: %w", err)
	}
	return bundle, nil
}

// LoadPhrases loads the phrase libraries and returns the missing-category
// problems separately. Missing categories are not fatal at startup.
func LoadPhrases(cfg domain.NarrativeConfig) (*narrative.Set, []error, error) {
	set, err := narrative.LoadSet(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load phrase libraries: %w", err)
	}
	return set, set.Check(), nil
}

// Build constructs the pipeline from cfg.
func Build(cfg *domain.Config, logger *logrus.Logger) (*Components, error) {
	bundle, err := LoadModel(cfg.Model)
	if err != nil {
		return nil, err
	}
	recommender := service.NewModelRecommender(bundle)
	logger.WithFields(logrus.Fields{
		"schema_version": recommender.SchemaVersion(),
		"label_count":    recommender.LabelCount(),
	}).Info("Model artifacts loaded")

	phrases, problems, err := LoadPhrases(cfg.Narrative)
	if err != nil {
		return nil, err
	}
	for _, problem := range problems {
		logger.WithError(problem).Warn("Phrase library incomplete, affected requests will fail")
	}

	sheets := external.NewAssessmentSheetClient(cfg.Sources, logger)
	assembler := service.NewResponseAssembler(
		phrases.PHQ9,
		phrases.ASQ,
		phrases.BAI,
		narrative.NewRandomSelector(cfg.Narrative.Seed),
	)

	return &Components{
		Analyzer:    service.NewAnalysisService(logger, sheets, recommender, assembler),
		Recommender: recommender,
		Sheets:      sheets,
		Phrases:     phrases,
	}, nil
}

// Check loads every startup artifact named in cfg without building the
// pipeline and returns all problems found.
func Check(cfg *domain.Config) []error {
	var problems []error
	if _, err := LoadModel(cfg.Model); err != nil {
		problems = append(problems, err)
	}
	_, missing, err := LoadPhrases(cfg.Narrative)
	if err != nil {
		problems = append(problems, err)
	}
	return append(problems, missing...)
}
