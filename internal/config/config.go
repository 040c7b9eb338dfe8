package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	BackendGist  = "gist"
	BackendRepo  = "repo"
	BackendRedis = "redis"
)

// Config содержит конфигурацию сервиса рулетки.
type Config struct {
	// Настройки сервера
	Port               string        `envconfig:"PORT" default:"8080"`
	Env                string        `envconfig:"ENV" default:"production"`
	LogLevel           string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding        string        `envconfig:"LOG_ENCODING" default:"json"`
	LogOutput          string        `envconfig:"LOG_OUTPUT"` // файл лога; пусто - stdout
	CORSAllowedOrigins string        `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`

	// Хранилище документа
	StoreBackend   string        `envconfig:"STORE_BACKEND" default:"gist"`
	StoreTimeout   time.Duration `envconfig:"STORE_TIMEOUT" default:"15s"`
	GitHubAPIURL   string        `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
	GistID         string        `envconfig:"GIST_ID"`
	GistFilename   string        `envconfig:"GIST_FILENAME" default:"gamestate.json"`
	GistPublic     bool          `envconfig:"GIST_PUBLIC" default:"false"`
	GitHubRepo     string        `envconfig:"GITHUB_REPO"` // owner/name
	GitHubFilePath string        `envconfig:"GITHUB_FILE_PATH" default:"public/gamestate.json"`
	GitHubBranch   string        `envconfig:"GITHUB_BRANCH"`
	RedisAddr      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisKey       string        `envconfig:"REDIS_KEY" default:"gamestate"`
	RedisDB        int           `envconfig:"REDIS_DB" default:"0"`
	// Секретное поле БЕЗ envconfig тега
	GitHubToken string

	// Настройки AI
	AIClientType  string        `envconfig:"AI_CLIENT_TYPE" default:"openai"`
	AIBaseURL     string        `envconfig:"AI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	AIModel       string        `envconfig:"AI_MODEL" default:"gemini-2.5-flash"`
	AITimeout     time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`
	AITemperature *float64      `envconfig:"AI_TEMPERATURE"`
	AIMaxTokens   *int          `envconfig:"AI_MAX_TOKENS"`
	// Секретное поле БЕЗ envconfig тега
	AIAPIKey string

	// RedisPassword is optional, read like the other secrets.
	RedisPassword string
}

// StoreID returns the identifier of the configured backend; empty means unconfigured.
func (c *Config) StoreID() string {
	switch c.StoreBackend {
	case BackendRepo:
		return c.GitHubRepo
	case BackendRedis:
		return c.RedisKey
	default:
		return c.GistID
	}
}

// GetAllowedOrigins splits CORS_ALLOWED_ORIGINS.
func (c *Config) GetAllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// LoadConfig загружает конфигурацию из переменных окружения и секретов.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	switch cfg.StoreBackend {
	case BackendGist, BackendRepo, BackendRedis:
	default:
		return nil, fmt.Errorf("неизвестный STORE_BACKEND: '%s'", cfg.StoreBackend)
	}

	// Секреты необязательны: без них чтение публичного gist и локальный Ollama продолжают работать.
	cfg.GitHubToken = ReadOptionalSecret("GITHUB_TOKEN", "github_token")
	cfg.AIAPIKey = ReadOptionalSecret("GCP_API_KEY", "ai_api_key")
	cfg.RedisPassword = ReadOptionalSecret("REDIS_PASSWORD", "redis_password")

	return &cfg, nil
}

// LogSummary пишет загруженную конфигурацию без секретов.
func (c *Config) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("port", c.Port),
		zap.String("env", c.Env),
		zap.String("logLevel", c.LogLevel),
		zap.String("logOutput", c.LogOutput),
		zap.String("storeBackend", c.StoreBackend),
		zap.String("storeID", c.StoreID()),
		zap.Bool("storeConfigured", c.StoreID() != ""),
		zap.String("aiClientType", c.AIClientType),
		zap.String("aiBaseURL", c.AIBaseURL),
		zap.String("aiModel", c.AIModel),
		zap.Duration("aiTimeout", c.AITimeout),
		zap.Duration("requestTimeout", c.RequestTimeout),
		zap.Bool("githubToken", c.GitHubToken != ""),
		zap.Bool("aiAPIKey", c.AIAPIKey != ""),
	)
}
