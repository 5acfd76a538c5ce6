// Package config loads service configuration from a YAML file with
// environment variable overrides and .env file support.
package config

import "time"

// Default configuration values.
const (
	defaultServiceName    = "data-quality"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8080
	defaultConcurrency    = 10
	defaultBatchSize      = 100
	defaultEnvironment    = "dev"
	defaultAPITimeoutSec  = 30
	defaultAPIRateLimit   = 10
	defaultAPIBurst       = 5
	defaultMaxRetries     = 3
	defaultSiteLimit      = 100
	defaultOrgLimit       = 100
	defaultThreshold      = 20.0
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
)

// GraphQL endpoints per environment.
const (
	productionEndpoint = "https://api.sboc.us/graphql"
	stagingEndpoint    = "https://stagingapi.sboc.us/graphql"
	devEndpoint        = "https://devapi.sboc.us/graphql"
)

// Config holds all configuration for the data-quality service.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	API      APIConfig      `yaml:"api"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Port        int    `env:"DATA_QUALITY_PORT"        yaml:"port"`
	Debug       bool   `env:"APP_DEBUG"                yaml:"debug"`
	Concurrency int    `env:"DATA_QUALITY_CONCURRENCY" yaml:"concurrency"`
	BatchSize   int    `yaml:"batch_size"`
}

// APIConfig holds Tackle Hunger GraphQL API settings.
type APIConfig struct {
	Token       string        `env:"AI_SCRAPING_TOKEN"       yaml:"token"`
	Environment string        `env:"ENVIRONMENT"             yaml:"environment"`
	DevURL      string        `env:"AI_SCRAPING_GRAPHQL_URL" yaml:"dev_url"`
	Timeout     time.Duration `env:"API_TIMEOUT"             yaml:"timeout"`
	RateLimit   int           `yaml:"rate_limit"`
	Burst       int           `yaml:"burst"`
	MaxRetries  int           `yaml:"max_retries"`
}

// GraphQLEndpoint returns the endpoint for the configured environment.
// Unknown environments fall back to dev, which AI_SCRAPING_GRAPHQL_URL can
// override for local work.
func (a APIConfig) GraphQLEndpoint() string {
	switch a.Environment {
	case "production":
		return productionEndpoint
	case "staging":
		return stagingEndpoint
	default:
		if a.DevURL != "" {
			return a.DevURL
		}
		return devEndpoint
	}
}

// AnalysisConfig holds completeness analysis settings.
type AnalysisConfig struct {
	SiteLimit               int     `yaml:"site_limit"`
	OrgLimit                int     `yaml:"org_limit"`
	RecommendationThreshold float64 `yaml:"recommendation_threshold"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults(path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setAPIDefaults(&cfg.API)
	setAnalysisDefaults(&cfg.Analysis)
	setLoggingDefaults(&cfg.Logging)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
}

func setAPIDefaults(a *APIConfig) {
	if a.Environment == "" {
		a.Environment = defaultEnvironment
	}
	if a.Timeout == 0 {
		a.Timeout = defaultAPITimeoutSec * time.Second
	}
	if a.RateLimit == 0 {
		a.RateLimit = defaultAPIRateLimit
	}
	if a.Burst == 0 {
		a.Burst = defaultAPIBurst
	}
	if a.MaxRetries == 0 {
		a.MaxRetries = defaultMaxRetries
	}
}

func setAnalysisDefaults(a *AnalysisConfig) {
	if a.SiteLimit == 0 {
		a.SiteLimit = defaultSiteLimit
	}
	if a.OrgLimit == 0 {
		a.OrgLimit = defaultOrgLimit
	}
	if a.RecommendationThreshold == 0 {
		a.RecommendationThreshold = defaultThreshold
	}
}

func setLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = defaultLogLevel
	}
	if l.Format == "" {
		l.Format = defaultLogFormat
	}
}
