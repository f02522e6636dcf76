package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/screening-recommender/internal/domain"
)

// Default assessment sheet exports.
const (
	DefaultPHQ9URL = "https://docs.google.com/spreadsheets/d/1fQ8lRGPvNg3gcM0JkAMrdixGsj0CrK6T31K149D-jMI/export?format=csv"
	DefaultASQURL  = "https://docs.google.com/spreadsheets/d/1TiU8sv5cJg30ZL3fqPSmBwJJbB7h2xv1NNbKo4ZIydU/export?format=csv"
	DefaultBAIURL  = "https://docs.google.com/spreadsheets/d/1f7kaFuhCv6S_eX4EuIrlhZFDR7W5MhQpJSXHznlpJEk/export?format=csv"
)

// Manager implements the ConfigManager interface using Viper
type Manager struct {
	v          *viper.Viper
	configFile string
	config     *domain.Config
}

// NewManager creates a new configuration manager that searches the
// standard locations for config.yaml.
func NewManager() (*Manager, error) {
	return NewManagerWithFile("")
}

// NewManagerWithFile creates a configuration manager reading an explicit
// config file. An empty path falls back to the standard search.
func NewManagerWithFile(path string) (*Manager, error) {
	m := &Manager{configFile: path}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from various sources
func (m *Manager) loadConfig() error {
	v := viper.New()

	if m.configFile != "" {
		v.SetConfigFile(m.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/screening-recommender/")
	}

	// SCREENING_SOURCES_PHQ9_URL overrides sources.phq9_url
	v.SetEnvPrefix("SCREENING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional unless named explicitly
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if m.configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.v = v
	m.config = config
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "0s")

	// Assessment sources
	v.SetDefault("sources.phq9_url", DefaultPHQ9URL)
	v.SetDefault("sources.asq_url", DefaultASQURL)
	v.SetDefault("sources.bai_url", DefaultBAIURL)
	v.SetDefault("sources.timeout", "0s")
	v.SetDefault("sources.circuit_breaker.enabled", true)
	v.SetDefault("sources.circuit_breaker.max_requests", 1)
	v.SetDefault("sources.circuit_breaker.interval", "60s")
	v.SetDefault("sources.circuit_breaker.timeout", "30s")
	v.SetDefault("sources.circuit_breaker.min_requests", 3)
	v.SetDefault("sources.circuit_breaker.failure_ratio", 0.6)

	// Model artifacts
	v.SetDefault("model.classifier_path", "./models/tool_classifier.yaml")
	v.SetDefault("model.decoder_path", "./models/tool_labels.yaml")

	// Phrase libraries
	v.SetDefault("narrative.phq9_path", "./phrases/phrases_phq9.json")
	v.SetDefault("narrative.asq_path", "./phrases/phrases_asq.json")
	v.SetDefault("narrative.bai_path", "./phrases/phrases_bai.json")
	v.SetDefault("narrative.seed", 0)

	// Rate limiting
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 10)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetConfig returns the complete configuration
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// GetServerConfig returns server configuration
func (m *Manager) GetServerConfig() *domain.ServerConfig {
	return &m.config.Server
}

// GetSourcesConfig returns assessment source configuration
func (m *Manager) GetSourcesConfig() *domain.SourcesConfig {
	return &m.config.Sources
}

// GetModelConfig returns model artifact configuration
func (m *Manager) GetModelConfig() *domain.ModelConfig {
	return &m.config.Model
}

// GetNarrativeConfig returns phrase library configuration
func (m *Manager) GetNarrativeConfig() *domain.NarrativeConfig {
	return &m.config.Narrative
}

// ConfigFileUsed returns the path of the loaded config file, if any.
func (m *Manager) ConfigFileUsed() string {
	return m.v.ConfigFileUsed()
}

// Validate validates the configuration
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	for _, source := range domain.PipelineOrder {
		raw := config.Sources.URLFor(source)
		if raw == "" {
			return fmt.Errorf("%s source URL is required", source)
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s source URL: %q", source, raw)
		}
	}
	if config.Sources.Timeout < 0 {
		return fmt.Errorf("sources timeout must not be negative: %s", config.Sources.Timeout)
	}
	if cb := config.Sources.CircuitBreaker; cb.Enabled && (cb.FailureRatio < 0 || cb.FailureRatio > 1) {
		return fmt.Errorf("circuit breaker failure ratio must be within [0, 1]: %g", cb.FailureRatio)
	}

	if config.Model.ClassifierPath == "" {
		return fmt.Errorf("classifier artifact path is required")
	}
	if config.Model.DecoderPath == "" {
		return fmt.Errorf("label decoder artifact path is required")
	}

	if config.Narrative.PHQ9Path == "" || config.Narrative.ASQPath == "" || config.Narrative.BAIPath == "" {
		return fmt.Errorf("all three phrase library paths are required")
	}

	if config.RateLimit.Enabled && (config.RateLimit.RequestsPerSecond <= 0 || config.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit requires positive requests_per_second and burst")
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}

	return nil
}

// IsProduction returns true if running in production mode
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}
