package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"atspro/internal/errors"
	"atspro/internal/taxonomy"

	"github.com/spf13/viper"
)

// Config holds all application configuration
// API Key Precedence Order:
// 1. Vault (if configured) - Highest priority
// 2. Config File values
// 3. Environment Variables (ATSPRO_AI_APIKEY, etc.)
// 4. Default values - Lowest priority
type Config struct {
	Engine        EngineConfig        `mapstructure:"engine"`
	AI            AIConfig            `mapstructure:"ai"`
	Server        ServerConfig        `mapstructure:"server"`
	App           AppConfig           `mapstructure:"app"`
	Vault         VaultConfig         `mapstructure:"vault"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// EngineConfig holds scoring engine configuration
type EngineConfig struct {
	KeywordPolicy string         `mapstructure:"keywordPolicy"` // Keyword scoring policy: "plain", "weighted"
	Taxonomy      TaxonomyConfig `mapstructure:"taxonomy"`
}

// TaxonomyConfig holds optional vocabulary overrides for the scoring
// engine. Empty slices keep the compiled-in defaults.
type TaxonomyConfig struct {
	StopWords   []string `mapstructure:"stopWords"`
	ActionVerbs []string `mapstructure:"actionVerbs"`
	WeakPhrases []string `mapstructure:"weakPhrases"`
	PassiveAux  []string `mapstructure:"passiveAux"`
	HardSkills  []string `mapstructure:"hardSkills"`
	SoftSkills  []string `mapstructure:"softSkills"`
	JobTitles   []string `mapstructure:"jobTitles"`
}

// Overrides converts the configured vocabulary lists into taxonomy
// overrides.
func (t TaxonomyConfig) Overrides() taxonomy.Overrides {
	return taxonomy.Overrides{
		StopWords:   t.StopWords,
		ActionVerbs: t.ActionVerbs,
		WeakPhrases: t.WeakPhrases,
		PassiveAux:  t.PassiveAux,
		HardSkills:  t.HardSkills,
		SoftSkills:  t.SoftSkills,
		JobTitles:   t.JobTitles,
	}
}

// AIConfig holds generative rewrite configuration
type AIConfig struct {
	RewriteStrategy string        `mapstructure:"rewriteStrategy"` // Rewrite strategy: "rule", "generative"
	Provider        string        `mapstructure:"provider"`
	Model           string        `mapstructure:"model"`
	Timeout         time.Duration `mapstructure:"timeout"`
	APIKey          string        `mapstructure:"apiKey"`
	MaxRetries      int           `mapstructure:"maxRetries"`
	Temperature     *float32      `mapstructure:"temperature"`

	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuitBreaker"`
}

// CircuitBreakerConfig represents circuit breaker configuration
type CircuitBreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`          // Whether circuit breaker is enabled
	MaxRequests      uint32        `mapstructure:"maxRequests"`      // Max requests allowed when half-open
	Interval         time.Duration `mapstructure:"interval"`         // Interval to clear counts
	Timeout          time.Duration `mapstructure:"timeout"`          // Timeout for half-open to open
	MinRequests      uint32        `mapstructure:"minRequests"`      // Minimum requests before tripping
	FailureThreshold float64       `mapstructure:"failureThreshold"` // Failure ratio threshold (0.0-1.0)
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

	// Maximum accepted multipart upload size in bytes
	MaxUploadSize int64 `mapstructure:"maxUploadSize"`

	// CORS Configuration
	CORS CORSConfig `mapstructure:"cors"`

	// TLS Configuration
	TLS TLSConfig `mapstructure:"tls"`

	// API Authentication
	APIKeys []string `mapstructure:"apiKeys"` // Valid API keys for authentication

	// Rate Limiting Configuration
	RateLimit RateLimitConfig `mapstructure:"rateLimit"`
}

// CORSConfig holds cross-origin request configuration
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// TLSConfig holds TLS/mTLS configuration
type TLSConfig struct {
	Mode     string `mapstructure:"mode"`     // TLS mode: "disabled", "server", "mutual"
	CertFile string `mapstructure:"certFile"` // Server certificate file (PEM)
	KeyFile  string `mapstructure:"keyFile"`  // Server private key file (PEM)
	CAFile   string `mapstructure:"caFile"`   // CA certificate file for client cert verification (PEM, required for mutual mode)

	// Certificate content (used when loaded from Vault instead of files)
	CertContent string `mapstructure:"certContent"` // Server certificate content (PEM)
	KeyContent  string `mapstructure:"keyContent"`  // Server private key content (PEM)
	CAContent   string `mapstructure:"caContent"`   // CA certificate content (PEM)

	// Advanced TLS options
	MinVersion       string   `mapstructure:"minVersion"`       // Minimum TLS version: "1.2", "1.3"
	CipherSuites     []string `mapstructure:"cipherSuites"`     // Allowed cipher suites (optional)
	ClientAuthPolicy string   `mapstructure:"clientAuthPolicy"` // Client auth policy for mutual mode: "require", "request", "verify"

	// Certificate validation options
	InsecureSkipVerify bool   `mapstructure:"insecureSkipVerify"` // Skip certificate verification (dev only)
	ServerName         string `mapstructure:"serverName"`         // Expected server name for client connections

	// Auto-reload configuration
	AutoReload AutoReloadConfig `mapstructure:"autoReload"`
}

// AutoReloadConfig holds configuration for automatic certificate
// reloading from watched certificate files
type AutoReloadConfig struct {
	Enabled       bool          `mapstructure:"enabled"`       // Enable file-watch based reloading
	DebounceDelay time.Duration `mapstructure:"debounceDelay"` // Debounce delay for file change events
	MaxRetries    int           `mapstructure:"maxRetries"`    // Maximum retry attempts for failed reloads
	RetryDelay    time.Duration `mapstructure:"retryDelay"`    // Delay between retry attempts
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled        bool          `mapstructure:"enabled"`        // Enable/disable rate limiting
	RequestsPerMin int           `mapstructure:"requestsPerMin"` // Requests allowed per minute
	BurstCapacity  int           `mapstructure:"burstCapacity"`  // Burst capacity for token bucket
	ByIP           bool          `mapstructure:"byIP"`           // Enable per-IP rate limiting
	ByAPIKey       bool          `mapstructure:"byAPIKey"`       // Enable per-API-key rate limiting
	Window         time.Duration `mapstructure:"window"`         // Rate limiting window duration
}

// AppConfig holds general application configuration
type AppConfig struct {
	LogLevel         string   `mapstructure:"logLevel"`
	DefaultFormat    string   `mapstructure:"defaultFormat"`
	SupportedFormats []string `mapstructure:"supportedFormats"`
	MaxFileSize      int64    `mapstructure:"maxFileSize"`
}

// ObservabilityConfig holds observability configuration
type ObservabilityConfig struct {
	Enabled         bool                `mapstructure:"enabled"`
	ServiceName     string              `mapstructure:"serviceName"`
	ServiceVersion  string              `mapstructure:"serviceVersion"`
	ServiceInstance string              `mapstructure:"serviceInstance"`
	ConsoleOutput   bool                `mapstructure:"consoleOutput"`
	SampleRate      float64             `mapstructure:"sampleRate"`
	Tracing         TracingConfig       `mapstructure:"tracing"`
	Metrics         MetricsConfig       `mapstructure:"metrics"`
	CustomMetrics   CustomMetricsConfig `mapstructure:"customMetrics"`
	Console         ConsoleConfig       `mapstructure:"console"`
	Prometheus      PrometheusConfig    `mapstructure:"prometheus"`
	OTLP            OTLPConfig          `mapstructure:"otlp"`
	HealthCheck     HealthCheckConfig   `mapstructure:"healthCheck"`
}

// TracingConfig holds tracing configuration
type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	SampleRate float64 `mapstructure:"sampleRate"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	CollectionInterval time.Duration `mapstructure:"collectionInterval"`
}

// ConsoleConfig holds console output configuration
type ConsoleConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	PrettyPrint bool `mapstructure:"prettyPrint"`
}

// CustomMetricsConfig holds fine-grained custom metrics configuration
type CustomMetricsConfig struct {
	Pipeline       PipelineMetricsConfig       `mapstructure:"pipeline"`
	Generator      GeneratorMetricsConfig      `mapstructure:"generator"`
	Infrastructure InfrastructureMetricsConfig `mapstructure:"infrastructure"`
}

// PipelineMetricsConfig holds analysis and rewrite pipeline metrics
// configuration
type PipelineMetricsConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	TrackDuration bool `mapstructure:"trackDuration"`
	TrackScores   bool `mapstructure:"trackScores"`
	TrackSizes    bool `mapstructure:"trackSizes"`
}

// GeneratorMetricsConfig holds model backend metrics configuration
type GeneratorMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackDuration   bool `mapstructure:"trackDuration"`
	TrackTokenUsage bool `mapstructure:"trackTokenUsage"`
	TrackModelInfo  bool `mapstructure:"trackModelInfo"`
}

// InfrastructureMetricsConfig holds infrastructure metrics configuration
type InfrastructureMetricsConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TrackRateLimits bool `mapstructure:"trackRateLimits"`
	TrackCertExpiry bool `mapstructure:"trackCertExpiry"`
}

// PrometheusConfig holds Prometheus configuration
type PrometheusConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
	Port     string `mapstructure:"port"`
}

// OTLPConfig holds OTLP exporter configuration
type OTLPConfig struct {
	Enabled  bool              `mapstructure:"enabled"`
	Endpoint string            `mapstructure:"endpoint"`
	Insecure bool              `mapstructure:"insecure"`
	Headers  map[string]string `mapstructure:"headers"`
}

// HealthCheckConfig holds health check configuration
type HealthCheckConfig struct {
	Timeout           time.Duration `mapstructure:"timeout"`
	ModelCheckTimeout time.Duration `mapstructure:"modelCheckTimeout"`
}

// LoadConfig loads configuration from environment variables and a config file
func LoadConfig() (*Config, error) {
	log.Println("[CONFIG] Starting configuration loading process")

	v := viper.New()

	// Set default values
	setDefaults(v)
	log.Println("[CONFIG] Applied default configuration values")

	// Set up environment variable handling
	v.SetEnvPrefix("ATSPRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	log.Println("[CONFIG] Configured environment variable handling with prefix 'ATSPRO'")

	// Set up config file handling
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/atspro/")
	v.AddConfigPath("$HOME/.atspro")
	v.AddConfigPath(".")
	log.Println("[CONFIG] Configured config file search paths: /etc/atspro/, $HOME/.atspro, .")

	// Read the config file
	configFileUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Println("[CONFIG] No config file found, using defaults and environment variables")
	} else {
		configFileUsed = v.ConfigFileUsed()
		log.Printf("[CONFIG] Successfully loaded config file: %s", configFileUsed)
	}

	// Unmarshal the configuration into the Config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	log.Println("[CONFIG] Successfully unmarshaled configuration")

	// Apply fallback logic for backward compatibility
	config.applyFallbacks()
	log.Println("[CONFIG] Applied configuration fallbacks and environment variable overrides")

	// Vault runs before validation so Vault-provided secrets (generator
	// API key, TLS material) are what gets validated
	if config.Vault.Enabled {
		vaultLogger, err := errors.New(config.App.LogLevel)
		if err != nil {
			vaultLogger = nil
		}
		if err := ApplyVaultSecrets(&config, vaultLogger); err != nil {
			return nil, fmt.Errorf("failed to apply vault secrets: %w", err)
		}
		log.Println("[CONFIG] Applied secrets from Vault")
	}

	// Log configuration sources summary
	config.logConfigurationSources(configFileUsed)

	// Validate the configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log.Println("[CONFIG] Configuration loading completed successfully")
	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Engine.KeywordPolicy {
	case "", "plain", "weighted":
		// Valid policies (empty defaults to plain)
	default:
		return fmt.Errorf("invalid keyword policy: %s (must be 'plain' or 'weighted')", c.Engine.KeywordPolicy)
	}

	switch c.AI.RewriteStrategy {
	case "", "rule":
		// The rule strategy needs no model backend
	case "generative":
		if c.AI.APIKey == "" {
			return fmt.Errorf("AI API key is required for the generative rewrite strategy (set ATSPRO_AI_APIKEY environment variable)")
		}
		if c.AI.Timeout <= 0 {
			return fmt.Errorf("AI timeout must be positive")
		}
	default:
		return fmt.Errorf("invalid rewrite strategy: %s (must be 'rule' or 'generative')", c.AI.RewriteStrategy)
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if c.Server.MaxUploadSize <= 0 {
		return fmt.Errorf("server max upload size must be positive")
	}

	validFormats := make(map[string]bool)
	for _, format := range c.App.SupportedFormats {
		validFormats[format] = true
	}
	if !validFormats[c.App.DefaultFormat] {
		return fmt.Errorf("invalid default format: %s", c.App.DefaultFormat)
	}

	// Validate TLS configuration
	if err := c.ValidateTLSConfig(); err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}

	return nil
}

// Global configuration instance
var GlobalConfig *Config

// InitConfig initializes the global configuration
func InitConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	GlobalConfig = config
	return nil
}
