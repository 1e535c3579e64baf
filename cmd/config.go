package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/pkg/errors"
)

const (
	LiveChannelLocal = "local"
	LiveChannelRedis = "redis"
)

type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"8080"`
	AppEnv     string `envconfig:"APP_ENV" default:"development"`
	AppVersion string `envconfig:"APP_VERSION" default:"dev"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"fooddelivery"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret      string  `envconfig:"JWT_SECRET"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"10"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"20"`

	// LiveChannelBackend is "local" for a single instance or "redis" to fan
	// notifications out to every instance.
	LiveChannelBackend string `envconfig:"LIVE_CHANNEL_BACKEND" default:"local"`
	RedisAddr          string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword      string `envconfig:"REDIS_PASSWORD"`
	RedisChannelPrefix string `envconfig:"REDIS_CHANNEL_PREFIX" default:"notifications:"`

	NotificationRetention time.Duration `envconfig:"NOTIFICATION_RETENTION" default:"720h"`
	PurgeSchedule         string        `envconfig:"PURGE_SCHEDULE" default:"0 0 3 * * *"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadConfig reads envFile (when present) into the process environment and
// parses the environment into a Config.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, pkgerrors.Wrapf(err, "load %s", envFile)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, pkgerrors.Wrap(err, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LiveChannelBackend {
	case LiveChannelLocal, LiveChannelRedis:
	default:
		return fmt.Errorf("LIVE_CHANNEL_BACKEND must be %q or %q, got %q",
			LiveChannelLocal, LiveChannelRedis, c.LiveChannelBackend)
	}
	if c.NotificationRetention <= 0 {
		return fmt.Errorf("NOTIFICATION_RETENTION must be positive, got %s", c.NotificationRetention)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// RequireJWTSecret fails when tokens can be neither issued nor verified.
func (c Config) RequireJWTSecret() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

// DSN is the key/value connection string used by gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// DatabaseURL is the postgres:// form used by the migrator.
func (c Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}
