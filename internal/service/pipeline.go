package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/screening-recommender/internal/domain"
)

// AnalysisService runs the screening pipeline: PHQ9, then ASQ, then BAI,
// then feature encoding, classification and assembly. The first source
// without a matching client aborts the run and later sources are not fetched.
type AnalysisService struct {
	logger      *logrus.Logger
	fetcher     domain.RecordFetcher
	depression  *DepressionScorer
	risk        *RiskClassifier
	anxiety     *AnxietyScorer
	recommender domain.ToolRecommender
	assembler   *ResponseAssembler
}

// NewAnalysisService wires the pipeline stages around one fetcher and
// recommender.
func NewAnalysisService(
	logger *logrus.Logger,
	fetcher domain.RecordFetcher,
	recommender domain.ToolRecommender,
	assembler *ResponseAssembler,
) *AnalysisService {
	matcher := NewNameMatcher()
	return &AnalysisService{
		logger:      logger,
		fetcher:     fetcher,
		depression:  NewDepressionScorer(logger, matcher),
		risk:        NewRiskClassifier(logger, matcher),
		anxiety:     NewAnxietyScorer(logger, matcher),
		recommender: recommender,
		assembler:   assembler,
	}
}

// Analyze implements domain.Analyzer.
func (s *AnalysisService) Analyze(ctx context.Context, client domain.ClientIdentity) (*domain.AnalysisResult, error) {
	result, _, err := s.Run(ctx, client)
	return result, err
}

// Run executes the pipeline and also returns the intermediate scores for
// diagnostics. Results are all-or-nothing.
func (s *AnalysisService) Run(ctx context.Context, client domain.ClientIdentity) (*domain.AnalysisResult, *domain.AnalysisTrace, error) {
	if err := client.Validate(); err != nil {
		return nil, nil, err
	}

	startTime := time.Now()
	trace := &domain.AnalysisTrace{ID: uuid.New().String()}
	logger := s.logger.WithField("analysis_id", trace.ID)
	logger.WithField("client", client.DisplayName()).Debug("Starting screening analysis")

	phq9, err := s.fetch(ctx, domain.SOURCE_PHQ9)
	if err != nil {
		return nil, nil, err
	}
	depression, err := s.depression.Score(phq9, client)
	if err != nil {
		logger.WithField("source", domain.SOURCE_PHQ9).Info("Client not found, aborting")
		return nil, nil, err
	}
	trace.Depression = *depression

	asq, err := s.fetch(ctx, domain.SOURCE_ASQ)
	if err != nil {
		return nil, nil, err
	}
	risk, err := s.risk.Assess(asq, client)
	if err != nil {
		logger.WithField("source", domain.SOURCE_ASQ).Info("Client not found, aborting")
		return nil, nil, err
	}
	trace.Risk = *risk

	bai, err := s.fetch(ctx, domain.SOURCE_BAI)
	if err != nil {
		return nil, nil, err
	}
	anxiety, err := s.anxiety.Score(bai, client)
	if err != nil {
		logger.WithField("source", domain.SOURCE_BAI).Info("Client not found, aborting")
		return nil, nil, err
	}
	trace.Anxiety = *anxiety

	features, err := BuildFeatureVector(*depression, *anxiety, *risk)
	if err != nil {
		return nil, nil, domain.NewProcessingError("build feature vector", err)
	}
	trace.Features = features

	tools, err := s.recommender.Recommend(features)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.assembler.Assemble(*depression, *risk, *anxiety, tools)
	if err != nil {
		return nil, nil, err
	}
	trace.ProcessingTime = time.Since(startTime)

	logger.WithFields(logrus.Fields{
		"features":        features.Named(),
		"tool_count":      len(result.RecommendedTools),
		"processing_time": trace.ProcessingTime,
	}).Info("Screening analysis completed")

	return result, trace, nil
}

func (s *AnalysisService) fetch(ctx context.Context, source domain.Source) (*domain.RecordSet, error) {
	set, err := s.fetcher.FetchRecordSet(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("loading %s records: %w", source, err)
	}
	return set, nil
}
