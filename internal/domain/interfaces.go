package domain

import (
	"context"
)

// RecordSet is one parsed assessment table: a header row plus data rows.
// It is fetched fresh per request and never mutated after parse.
type RecordSet struct {
	Source Source
	Header []string
	Rows   [][]string
}

// RecordFetcher retrieves a source's delimited table by URL.
type RecordFetcher interface {
	FetchRecordSet(ctx context.Context, source Source) (*RecordSet, error)
}

// PhraseSelector picks one phrase from a non-empty candidate list. The
// default implementation is uniform random; tests inject a seeded one.
type PhraseSelector interface {
	Pick(phrases []string) string
}

// PhraseSource resolves a category key to its narrative phrases.
type PhraseSource interface {
	Phrases(category string) ([]string, error)
}

// ToolRecommender maps a feature vector to recommended intervention tools.
type ToolRecommender interface {
	Recommend(features FeatureVector) ([]string, error)
}

// Analyzer runs the full screening pipeline for one client.
type Analyzer interface {
	Analyze(ctx context.Context, client ClientIdentity) (*AnalysisResult, error)
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetSourcesConfig() *SourcesConfig
	GetModelConfig() *ModelConfig
	GetNarrativeConfig() *NarrativeConfig
	Validate() error
	IsProduction() bool
}
