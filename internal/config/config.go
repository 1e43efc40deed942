package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiKey   string
	GroqKey     string
	CerebrasKey string
	OpenAIKey   string

	SessionSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Generation GenerationConfig
}

// GenerationConfig selects the model provider used by the generation gateway.
type GenerationConfig struct {
	Provider         string        `yaml:"provider"`
	Model            string        `yaml:"model"`
	BaseURL          string        `yaml:"base_url"`
	FallbackEnabled  bool          `yaml:"fallback_enabled"`
	FallbackProvider string        `yaml:"fallback_provider"`
	Timeout          time.Duration `yaml:"timeout"`
}

const (
	DefaultProvider = "gemini"
	DefaultTimeout  = 60 * time.Second
)

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiKey:                firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		CerebrasKey:              os.Getenv("CEREBRAS_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		Generation: GenerationConfig{
			Provider: os.Getenv("GENERATION_PROVIDER"),
			Model:    os.Getenv("GENERATION_MODEL"),
		},
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	if err := cfg.LoadFromYAML(configPath); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if raw := os.Getenv("GENERATION_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATION_TIMEOUT %q: %w", raw, err)
		}
		cfg.Generation.Timeout = d
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "chefgpt"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.SessionSecret == "" && cfg.Env != "production" {
		cfg.SessionSecret = "chefgpt-development-secret"
	}

	cfg.SetGenerationDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment wins over the file for provider and model
	if yamlConfig.Generation.Provider != "" && c.Generation.Provider == "" {
		c.Generation.Provider = yamlConfig.Generation.Provider
	}
	if yamlConfig.Generation.Model != "" && c.Generation.Model == "" {
		c.Generation.Model = yamlConfig.Generation.Model
	}
	if yamlConfig.Generation.BaseURL != "" {
		c.Generation.BaseURL = yamlConfig.Generation.BaseURL
	}
	if yamlConfig.Generation.FallbackEnabled {
		c.Generation.FallbackEnabled = true
	}
	if yamlConfig.Generation.FallbackProvider != "" {
		c.Generation.FallbackProvider = yamlConfig.Generation.FallbackProvider
	}
	if yamlConfig.Generation.Timeout > 0 {
		c.Generation.Timeout = yamlConfig.Generation.Timeout
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Provider == "" {
		c.Generation.Provider = DefaultProvider
	}
	if c.Generation.Timeout <= 0 {
		c.Generation.Timeout = DefaultTimeout
	}
	if c.Generation.FallbackEnabled && c.Generation.FallbackProvider == "" {
		c.Generation.FallbackProvider = "groq"
	}
}

// KeyFor returns the API key configured for a provider name.
func (c *Config) KeyFor(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiKey
	case "groq":
		return c.GroqKey
	case "cerebras":
		return c.CerebrasKey
	case "openai":
		return c.OpenAIKey
	}
	return ""
}

func (c *Config) validate() error {
	providers := []string{c.Generation.Provider}
	if c.Generation.FallbackEnabled {
		providers = append(providers, c.Generation.FallbackProvider)
	}
	for _, p := range providers {
		switch p {
		case "gemini", "groq", "cerebras", "openai":
		default:
			return fmt.Errorf("unknown generation provider %q", p)
		}
		if c.KeyFor(p) == "" {
			return fmt.Errorf("API key for generation provider %q is required", p)
		}
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
