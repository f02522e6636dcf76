package domain

import (
	"time"
)

// Config represents the main application configuration
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Sources     SourcesConfig   `mapstructure:"sources"`
	Model       ModelConfig     `mapstructure:"model"`
	Narrative   NarrativeConfig `mapstructure:"narrative"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
	Logging     LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SourcesConfig holds the three assessment sheet endpoints.
type SourcesConfig struct {
	PHQ9URL        string               `mapstructure:"phq9_url"`
	ASQURL         string               `mapstructure:"asq_url"`
	BAIURL         string               `mapstructure:"bai_url"`
	Timeout        time.Duration        `mapstructure:"timeout"` // 0 means no client-side timeout
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// URLFor returns the configured endpoint for a source.
func (s SourcesConfig) URLFor(source Source) string {
	switch source {
	case SOURCE_PHQ9:
		return s.PHQ9URL
	case SOURCE_ASQ:
		return s.ASQURL
	case SOURCE_BAI:
		return s.BAIURL
	default:
		return ""
	}
}

// CircuitBreakerConfig configures the per-source breaker.
type CircuitBreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MinRequests  uint32        `mapstructure:"min_requests"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
}

// ModelConfig points at the pretrained classifier and label decoder artifacts.
type ModelConfig struct {
	ClassifierPath string `mapstructure:"classifier_path"`
	DecoderPath    string `mapstructure:"decoder_path"`
}

// NarrativeConfig points at the category-keyed phrase libraries.
type NarrativeConfig struct {
	PHQ9Path string `mapstructure:"phq9_path"`
	ASQPath  string `mapstructure:"asq_path"`
	BAIPath  string `mapstructure:"bai_path"`
	Seed     uint64 `mapstructure:"seed"` // 0 draws a fresh seed at startup
}

// RateLimitConfig configures per-client request limiting on the HTTP surface.
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
