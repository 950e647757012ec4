package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret      string
	AccessTokenTTL string
	SeedPassword   string

	Log      string
	LogLevel string
	Env      string // dev|prod

	FixturesPath string

	GeminiAPIKey   string
	GeminiModel    string
	AIContextLimit int

	AnalyticsBatchSize     int
	AnalyticsFlushInterval time.Duration

	SessionTTL  time.Duration
	MCPEndpoint string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, чтобы не создавать зависимость от logger.
// Ошибка возвращается только для нечитаемых чисел и длительностей.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "15m"),
		SeedPassword:   def(os.Getenv("SEED_PASSWORD"), "changeme"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		FixturesPath: strings.TrimSpace(os.Getenv("FIXTURES_PATH")),

		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:  def(os.Getenv("GEMINI_MODEL"), "gemini-2.5-flash"),

		MCPEndpoint: def(os.Getenv("MCP_ENDPOINT"), "/mcp"),
	}

	var err error
	if cfg.AIContextLimit, err = atoi("AI_CONTEXT_LIMIT", def(os.Getenv("AI_CONTEXT_LIMIT"), "4000")); err != nil {
		return nil, err
	}
	if cfg.AnalyticsBatchSize, err = atoi("ANALYTICS_BATCH_SIZE", def(os.Getenv("ANALYTICS_BATCH_SIZE"), "10")); err != nil {
		return nil, err
	}
	if cfg.AnalyticsFlushInterval, err = duration("ANALYTICS_FLUSH_INTERVAL", def(os.Getenv("ANALYTICS_FLUSH_INTERVAL"), "5s")); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = duration("SESSION_TTL", def(os.Getenv("SESSION_TTL"), "2h")); err != nil {
		return nil, err
	}
	if _, err = duration("ACCESS_TOKEN_EXPIRY", cfg.AccessTokenTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func atoi(name, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: ожидается положительное целое, получено %q", name, v)
	}
	return n, nil
}

func duration(name, v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: некорректная длительность %q", name, v)
	}
	return d, nil
}

// HasDB — задана ли конфигурация Postgres.
func (c *Config) HasDB() bool {
	return c.DbHost != "" && c.DbUser != "" && c.DbName != ""
}

// AccessTTL — срок жизни access-токена; значение уже проверено в LoadConfig.
func (c *Config) AccessTTL() time.Duration {
	d, err := time.ParseDuration(c.AccessTokenTTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.Env != "dev" {
			return nil, fmt.Errorf("JWT_SECRET is empty")
		}
		warnings = append(warnings, "JWT_SECRET is empty, admin API is effectively open to forged tokens")
	}

	// без БД аналитика пишется только в лог
	if !c.HasDB() {
		warnings = append(warnings, "DB is not configured (DB_HOST/DB_USER/DB_NAME), analytics events go to the log only")
	}

	if c.GeminiAPIKey == "" {
		warnings = append(warnings, "GEMINI_API_KEY is not set, AI assistant is disabled")
	}

	if c.SeedPassword == "changeme" {
		warnings = append(warnings, "SEED_PASSWORD is the default one")
	}

	if !strings.HasPrefix(c.MCPEndpoint, "/") {
		return warnings, fmt.Errorf("MCP_ENDPOINT must start with '/': %q", c.MCPEndpoint)
	}

	return warnings, nil
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
