package service

import (
	"fmt"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/narrative"
)

// ResponseAssembler builds the wire result and attaches narrative phrases.
// PHQ-9 and BAI always draw from their thematic categories; ASQ draws from
// the risk category label. Phrase selection never feeds back into scores or
// features.
type ResponseAssembler struct {
	phq9     domain.PhraseSource
	asq      domain.PhraseSource
	bai      domain.PhraseSource
	selector domain.PhraseSelector
}

// NewResponseAssembler creates an assembler over the three phrase libraries
func NewResponseAssembler(phq9, asq, bai domain.PhraseSource, selector domain.PhraseSelector) *ResponseAssembler {
	return &ResponseAssembler{phq9: phq9, asq: asq, bai: bai, selector: selector}
}

// Assemble combines per-source results and recommended tools.
func (r *ResponseAssembler) Assemble(
	depression domain.DepressionScore,
	risk domain.RiskAssessmentResult,
	anxiety domain.AnxietyScore,
	tools []string,
) (*domain.AnalysisResult, error) {
	phq9Primary, err := r.pick(r.phq9, domain.SOURCE_PHQ9, narrative.PHRASES_DEPRESSION)
	if err != nil {
		return nil, err
	}
	phq9Additional, err := r.pickEach(r.phq9, domain.SOURCE_PHQ9, narrative.PHRASES_PHYSICAL_SYMPTOMS, narrative.PHRASES_WELL_BEING)
	if err != nil {
		return nil, err
	}

	riskKey := risk.Category.String()
	asqPrimary, err := r.pick(r.asq, domain.SOURCE_ASQ, riskKey)
	if err != nil {
		return nil, err
	}
	asqAdditional, err := r.pickEach(r.asq, domain.SOURCE_ASQ, riskKey, riskKey)
	if err != nil {
		return nil, err
	}

	baiPrimary, err := r.pick(r.bai, domain.SOURCE_BAI, narrative.PHRASES_ANXIETY)
	if err != nil {
		return nil, err
	}
	baiAdditional, err := r.pickEach(r.bai, domain.SOURCE_BAI, narrative.PHRASES_TRAUMA_PTSD, narrative.PHRASES_YOUTH_MENTAL)
	if err != nil {
		return nil, err
	}

	if tools == nil {
		tools = []string{}
	}

	return &domain.AnalysisResult{
		PHQ9: domain.ScoreReport{
			ClientName:            depression.ClientName,
			TotalScore:            depression.TotalScore,
			Interpretation:        depression.Band.String(),
			PrimaryImpression:     phq9Primary,
			AdditionalImpressions: phq9Additional,
		},
		ASQ: domain.RiskReport{
			Interpretation:        riskKey,
			PrimaryImpression:     asqPrimary,
			AdditionalImpressions: asqAdditional,
			SelectedOptions:       risk.SelectedOptions,
			EverAttempted:         risk.EverAttempted,
			HowAndWhen:            risk.HowAndWhen,
			ThoughtsNow:           risk.ThoughtsNow,
			PleaseDescribe:        risk.Description,
		},
		BAI: domain.ScoreReport{
			ClientName:            anxiety.ClientName,
			TotalScore:            anxiety.TotalScore,
			Interpretation:        anxiety.Band.String(),
			PrimaryImpression:     baiPrimary,
			AdditionalImpressions: baiAdditional,
		},
		RecommendedTools: tools,
	}, nil
}

func (r *ResponseAssembler) pick(lib domain.PhraseSource, source domain.Source, category string) (string, error) {
	phrases, err := lib.Phrases(category)
	if err != nil {
		return "", domain.NewProcessingError(fmt.Sprintf("select %s phrases", source), err)
	}
	return r.selector.Pick(phrases), nil
}

func (r *ResponseAssembler) pickEach(lib domain.PhraseSource, source domain.Source, categories ...string) ([]string, error) {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		p, err := r.pick(lib, source, c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
