package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds the process-wide settings. It is built once by Load and passed
// by pointer to the components that need it.
type Config struct {
	Provider string `yaml:"provider" validate:"oneof=gemini openai"`
	Model    string `yaml:"model" validate:"required"`

	GoogleAPIKey  string `yaml:"-" validate:"required_if=Provider gemini"`
	OpenAIAPIKey  string `yaml:"-" validate:"required_if=Provider openai"`
	OpenAIBaseURL string `yaml:"openai_base_url" validate:"omitempty,url"`
	TavilyAPIKey  string `yaml:"-"`

	MaxRetries  int           `yaml:"max_retries" validate:"min=1"`
	BaseBackoff time.Duration `yaml:"base_backoff" validate:"min=0"`
	MaxSteps    int           `yaml:"max_steps" validate:"min=1"`

	ParallelTools   bool `yaml:"parallel_tools"`
	ToolConcurrency int  `yaml:"tool_concurrency" validate:"min=1"`

	HTTPTimeout time.Duration `yaml:"http_timeout" validate:"min=0"`
	HTTPPort    string        `yaml:"http_port" validate:"required,numeric"`

	// WikiLanguage selects the Wikipedia edition and the preferred caption
	// language for transcripts.
	WikiLanguage string `yaml:"wiki_language" validate:"required,alpha"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           "gemini-2.5-flash",
		MaxRetries:      5,
		BaseBackoff:     30 * time.Second,
		MaxSteps:        25,
		ToolConcurrency: 4,
		HTTPTimeout:     30 * time.Second,
		HTTPPort:        "8080",
		WikiLanguage:    "en",
	}
}

// Load reads .env (if present), the optional YAML file named by AGENT_CONFIG
// and the environment, in that order of increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		ancli.Warnf("could not load .env file: %v", err)
	}

	cfg := Default()

	if path := os.Getenv("AGENT_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct tags of c.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %q: %w", path, err)
	}

	return nil
}

func (c *Config) loadEnv() error {
	c.Provider = getEnvOrDefault("MODEL_PROVIDER", c.Provider)
	c.Model = getEnvOrDefault("MODEL", c.Model)
	c.GoogleAPIKey = getEnvOrDefault("GOOGLE_API_KEY", getEnvOrDefault("GEMINI_API_KEY", c.GoogleAPIKey))
	c.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIBaseURL = getEnvOrDefault("OPENAI_BASE_URL", c.OpenAIBaseURL)
	c.TavilyAPIKey = getEnvOrDefault("TAVILY_API_KEY", c.TavilyAPIKey)
	c.HTTPPort = getEnvOrDefault("HTTP_PORT", c.HTTPPort)
	c.WikiLanguage = getEnvOrDefault("WIKI_LANGUAGE", c.WikiLanguage)

	var err error
	if c.MaxRetries, err = getEnvInt("MAX_RETRIES", c.MaxRetries); err != nil {
		return err
	}
	if c.MaxSteps, err = getEnvInt("MAX_STEPS", c.MaxSteps); err != nil {
		return err
	}
	if c.ToolConcurrency, err = getEnvInt("TOOL_CONCURRENCY", c.ToolConcurrency); err != nil {
		return err
	}
	if c.BaseBackoff, err = getEnvDuration("BASE_BACKOFF", c.BaseBackoff); err != nil {
		return err
	}
	if c.HTTPTimeout, err = getEnvDuration("HTTP_TIMEOUT", c.HTTPTimeout); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("PARALLEL_TOOLS"); ok {
		c.ParallelTools = misc.Truthy(v)
	}

	return nil
}

// getEnvOrDefault retrieves an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return d, nil
}
