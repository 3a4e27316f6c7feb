package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"pizzagraph/domain/pizza"
	"pizzagraph/infrastructure/persistence/ontology"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress   string        `yaml:"server_address"`
	Environment     string        `yaml:"environment"`
	ServiceName     string        `yaml:"service_name"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`

	// Ontology configuration
	OntologyPath      string `yaml:"ontology_path"`
	OntologyFormat    string `yaml:"ontology_format"`
	OntologyNamespace string `yaml:"ontology_namespace"`

	// Lambda configuration
	IsLambda           bool   `yaml:"is_lambda"`
	LambdaFunctionName string `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Rate limiting; zero disables it
	RateLimit         float64 `yaml:"rate_limit"`
	RateLimitBurst    int     `yaml:"rate_limit_burst"`
	RateLimitByClient bool    `yaml:"rate_limit_by_client"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`

	// Source is the config file that was applied, if any
	Source string `yaml:"-"`
}

// Defaults returns the configuration used when nothing is set
func Defaults() *Config {
	return &Config{
		ServerAddress:     ":8080",
		Environment:       "development",
		ServiceName:       "pizzagraph",
		ShutdownTimeout:   30 * time.Second,
		MaxBodyBytes:      1 << 20,
		OntologyPath:      "ontology/pizza.ttl",
		OntologyNamespace: pizza.DefaultNamespace,
		LogLevel:          "info",
		EnableMetrics:     true,
		EnableCORS:        true,
	}
}

// LoadConfig loads configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() error {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)

	c.OntologyPath = getEnv("ONTOLOGY_PATH", c.OntologyPath)
	c.OntologyFormat = getEnv("ONTOLOGY_FORMAT", c.OntologyFormat)
	c.OntologyNamespace = getEnv("ONTOLOGY_NAMESPACE", c.OntologyNamespace)

	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", "")
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || c.LambdaFunctionName != "")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.RateLimitByClient = getEnvBool("RATE_LIMIT_BY_CLIENT", c.RateLimitByClient)

	var err error
	if c.RateLimit, err = getEnvFloat("RATE_LIMIT", c.RateLimit); err != nil {
		return err
	}
	if c.RateLimitBurst, err = getEnvInt("RATE_LIMIT_BURST", c.RateLimitBurst); err != nil {
		return err
	}
	if c.MaxBodyBytes, err = getEnvInt64("MAX_BODY_BYTES", c.MaxBodyBytes); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.OntologyPath == "" {
		return fmt.Errorf("ONTOLOGY_PATH is required")
	}
	if _, err := ontology.ParseFormat(c.OntologyFormat); err != nil {
		return fmt.Errorf("ONTOLOGY_FORMAT: %w", err)
	}
	if _, err := pizza.NewVocabulary(c.OntologyNamespace); err != nil {
		return fmt.Errorf("ONTOLOGY_NAMESPACE: %w", err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.RateLimit < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT and RATE_LIMIT_BURST cannot be negative")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT cannot be negative")
	}
	return nil
}

// Vocabulary returns the vocabulary for the configured namespace
func (c *Config) Vocabulary() (pizza.Vocabulary, error) {
	return pizza.NewVocabulary(c.OntologyNamespace)
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return intVal, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intVal, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return intVal, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
