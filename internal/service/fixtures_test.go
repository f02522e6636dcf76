package service

import (
	"context"
	"sync"

	"github.com/screening-recommender/internal/domain"
	"github.com/screening-recommender/internal/narrative"
	"github.com/screening-recommender/pkg/mlmodel"
)

var phq9Header = []string{
	"Timestamp",
	PHQ9HeaderFirstName,
	PHQ9HeaderMiddleName,
	PHQ9HeaderLastName,
	PHQ9HeaderSuffix,
	PHQ9HeaderFirstItem,
	"Feeling down, depressed, or hopeless",
	"Trouble falling or staying asleep, or sleeping too much",
	"Feeling tired or having little energy",
	"Poor appetite or overeating",
	"Feeling bad about yourself",
	"Trouble concentrating on things",
	"Moving or speaking so slowly that other people could have noticed",
	"Thoughts that you would be better off dead",
}

// janePHQ9Responses sum to 12.
var janePHQ9Responses = []string{
	"Not at all", "Not at all", "Not at all",
	"Several Days", "Several Days",
	"More than half the days", "More than half the days",
	"Nearly every day", "Nearly every day",
}

func phq9Row(first, middle, last, suffix string, responses ...string) []string {
	return append([]string{"2024-03-01 10:00:00", first, middle, last, suffix}, responses...)
}

func asqRow(first, middle, last, screen string) []string {
	return []string{
		"2024-03-01 10:05:00", "Yes", "None of the above", "No", "", screen, "No", "", first, middle, last,
	}
}

// janeBAIResponses sum to 18 over 21 items.
func janeBAIResponses() []string {
	var out []string
	for i := 0; i < 6; i++ {
		out = append(out, "Moderately - it wasn't pleasant at times")
	}
	for i := 0; i < 6; i++ {
		out = append(out, "Mildly, but it didn't bother me much")
	}
	for i := 0; i < 9; i++ {
		out = append(out, "Not at all")
	}
	return out
}

func baiRow(first, middle, last string, responses []string) []string {
	row := append([]string{"2024-03-01 10:10:00"}, responses...)
	return append(row, first, middle, last, "client@example.com")
}

func janeRecordSets() map[domain.Source]*domain.RecordSet {
	return map[domain.Source]*domain.RecordSet{
		domain.SOURCE_PHQ9: {
			Source: domain.SOURCE_PHQ9,
			Header: phq9Header,
			Rows: [][]string{
				phq9Row("John", "", "Smith", "", janePHQ9Responses...),
				phq9Row("Jane", "", "Doe", "", janePHQ9Responses...),
			},
		},
		domain.SOURCE_ASQ: {
			Source: domain.SOURCE_ASQ,
			Header: make([]string, 11),
			Rows: [][]string{
				asqRow("Jane", "", "Doe", "No"),
			},
		},
		domain.SOURCE_BAI: {
			Source: domain.SOURCE_BAI,
			Header: make([]string, 26),
			Rows: [][]string{
				baiRow("Jane", "", "Doe", janeBAIResponses()),
			},
		},
	}
}

type stubFetcher struct {
	mu    sync.Mutex
	sets  map[domain.Source]*domain.RecordSet
	errs  map[domain.Source]error
	calls []domain.Source
}

func (s *stubFetcher) FetchRecordSet(_ context.Context, source domain.Source) (*domain.RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, source)
	if err := s.errs[source]; err != nil {
		return nil, err
	}
	return s.sets[source], nil
}

// testBundle recommends "Behavioral Activation" whenever the PHQ9 total
// exceeds 10, "Crisis Safety Plan" for acute risk and "Relaxation Training"
// when the BAI total exceeds 20.
func testBundle() *mlmodel.Bundle {
	return &mlmodel.Bundle{
		Classifier: &mlmodel.Classifier{
			SchemaVersion: "test",
			ModelType:     mlmodel.ModelTypeOneVsRestLogistic,
			FeatureNames:  domain.FeatureNames,
			Estimators: []mlmodel.Estimator{
				{Coef: []float64{1, 0, 0, 0, 0}, Intercept: -10},
				{Coef: []float64{0, 0, 0, 0, 1}, Intercept: -0.5},
				{Coef: []float64{0, 0, 1, 0, 0}, Intercept: -20},
			},
		},
		Decoder: &mlmodel.LabelDecoder{
			SchemaVersion: "test",
			Classes:       []string{"Behavioral Activation", "Crisis Safety Plan", "Relaxation Training"},
		},
	}
}

func testPhrases() (phq9, asq, bai *narrative.Library) {
	phq9 = narrative.NewLibrary("phq9", map[string][]string{
		narrative.PHRASES_DEPRESSION:        {"low mood noted"},
		narrative.PHRASES_PHYSICAL_SYMPTOMS: {"sleep disturbance"},
		narrative.PHRASES_WELL_BEING:        {"seeks support"},
	})
	asq = narrative.NewLibrary("asq", map[string][]string{
		domain.RISK_ACUTE.String():     {"immediate follow-up"},
		domain.RISK_NON_ACUTE.String(): {"routine follow-up"},
	})
	bai = narrative.NewLibrary("bai", map[string][]string{
		narrative.PHRASES_ANXIETY:      {"manageable anxiety"},
		narrative.PHRASES_TRAUMA_PTSD:  {"no trauma indicators"},
		narrative.PHRASES_YOUTH_MENTAL: {"age appropriate"},
	})
	return phq9, asq, bai
}

func testAssembler() *ResponseAssembler {
	phq9, asq, bai := testPhrases()
	return NewResponseAssembler(phq9, asq, bai, narrative.FirstSelector{})
}
