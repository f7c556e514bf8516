package shared

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/event_hotels?parseTime=true&charset=utf8mb4&loc=UTC"`

	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	SessionBackend string `env:"SESSION_BACKEND" envDefault:"mysql"`

	JWTSecret      string        `env:"JWT_SECRET"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"200"`

	SeedFile    string `env:"SEED_FILE" envDefault:"seed/hotels.json"`
	SeedWorkers int    `env:"SEED_WORKERS" envDefault:"4"`
}

const (
	SessionBackendMySQL = "mysql"
	SessionBackendRedis = "redis"
)

// Load parses the environment. JWT_SECRET is only required by the API binary,
// so it is checked by RequireAPI rather than here.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	switch c.SessionBackend {
	case SessionBackendMySQL, SessionBackendRedis:
	default:
		return Config{}, fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendMySQL, SessionBackendRedis, c.SessionBackend)
	}
	if c.SeedWorkers <= 0 {
		c.SeedWorkers = 1
	}
	return c, nil
}

func (c Config) RequireAPI() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}
