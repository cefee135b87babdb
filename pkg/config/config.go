package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Stripe       StripeConfig
	FeatureFlags FeatureFlagsConfig
	Listing      ListingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TRENDZ_APP_ENV" required:"true"`
	Port         string `envconfig:"TRENDZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TRENDZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TRENDZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TRENDZ_DB_DSN"`
	Driver string `envconfig:"TRENDZ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TRENDZ_DB_HOST"`
	LegacyPort     int    `envconfig:"TRENDZ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TRENDZ_DB_USER"`
	LegacyPassword string `envconfig:"TRENDZ_DB_PASSWORD"`
	LegacyName     string `envconfig:"TRENDZ_DB_NAME"`
	LegacySSLMode  string `envconfig:"TRENDZ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TRENDZ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TRENDZ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TRENDZ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TRENDZ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TRENDZ_REDIS_URL"`
	Address      string        `envconfig:"TRENDZ_REDIS_ADDR"`
	Password     string        `envconfig:"TRENDZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"TRENDZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TRENDZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TRENDZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TRENDZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TRENDZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TRENDZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"TRENDZ_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TRENDZ_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"TRENDZ_JWT_EXPIRATION_MINUTES" default:"60"`
}

type StripeConfig struct {
	APIKey string `envconfig:"TRENDZ_STRIPE_API_KEY"`
	Env    string `envconfig:"TRENDZ_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TRENDZ_AUTO_MIGRATE" default:"false"`
}

type ListingConfig struct {
	DefaultLimit  int `envconfig:"TRENDZ_LISTING_DEFAULT_LIMIT" default:"10"`
	MaxLimit      int `envconfig:"TRENDZ_LISTING_MAX_LIMIT" default:"100"`
	FeaturedLimit int `envconfig:"TRENDZ_LISTING_FEATURED_LIMIT" default:"5"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
