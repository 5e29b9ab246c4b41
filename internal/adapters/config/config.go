package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"brickops/pkg/errors"
)

type Config struct {
	App           AppConfig
	Databricks    DatabricksConfig
	Model         ModelConfig
	Server        ServerConfig
	Chat          ChatConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"brickops"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

// DatabricksConfig holds workspace API credentials and client limits.
// Token is a PAT or service-principal OAuth token with admin permissions.
type DatabricksConfig struct {
	Host       string        `envconfig:"DATABRICKS_HOST" required:"true"`
	Token      string        `envconfig:"DATABRICKS_TOKEN" required:"true"`
	Timeout    time.Duration `envconfig:"DATABRICKS_TIMEOUT" default:"30s"`
	RatePerSec float64       `envconfig:"DATABRICKS_RATE_LIMIT" default:"10"`
	RateBurst  int           `envconfig:"DATABRICKS_RATE_BURST" default:"5"`
}

// ModelConfig selects the chat model serving endpoint the agent reasons with.
type ModelConfig struct {
	Endpoint      string  `envconfig:"MODEL_ENDPOINT" default:"databricks-gpt-oss-20b"`
	Temperature   float64 `envconfig:"MODEL_TEMPERATURE" default:"0"`
	MaxToolRounds int     `envconfig:"MODEL_MAX_TOOL_ROUNDS" default:"20"`
	SystemPrompt  string  `envconfig:"MODEL_SYSTEM_PROMPT" default:"You are a helpful assistant. You have access to tools to answer questions"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// ChatConfig configures the chat front-end application.
// AgentURL points at the deployed serving endpoint's invocations URL.
type ChatConfig struct {
	Port     int    `envconfig:"CHAT_PORT" default:"8090"`
	AgentURL string `envconfig:"CHAT_AGENT_URL" default:"http://localhost:8080/invocations"`
	Token    string `envconfig:"CHAT_AGENT_TOKEN"`
	Title    string `envconfig:"CHAT_TITLE" default:"Workspace Admin Agent"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	Provider    string `envconfig:"ERROR_TRACKING_PROVIDER" default:"sentry"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
