package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`
	Port int    `env:"PORT" envDefault:"8080"`

	Persist  PersistConfig
	S3       S3Config
	Redis    RedisConfig
	DB       DBConfig
	Auth     AuthConfig
	Admin    AdminConfig
	HTTP     HTTPConfig
	Blog     BlogConfig
	Articles ArticlesConfig

	OTLPEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTELSampleRatio float64 `env:"OTEL_TRACES_SAMPLE_RATIO" envDefault:"1"`
}

type PersistConfig struct {
	Backend    string `env:"PERSIST_BACKEND" envDefault:"file"`
	Key        string `env:"PERSIST_KEY" envDefault:"neural-pulse-storage"`
	Dir        string `env:"PERSIST_DIR" envDefault:"./data"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"./data/neuralpulse.db"`

	// remote backends only (s3, redis, postgres)
	CallTimeoutMs      int `env:"PERSIST_CALL_TIMEOUT_MS" envDefault:"3000"`
	BreakerThreshold   int `env:"PERSIST_BREAKER_THRESHOLD" envDefault:"3"`
	BreakerCooldownSec int `env:"PERSIST_BREAKER_COOLDOWN_SEC" envDefault:"15"`
}

type S3Config struct {
	Bucket   string `env:"S3_BUCKET"`
	Endpoint string `env:"S3_ENDPOINT"`
	Region   string `env:"S3_REGION" envDefault:"us-east-1"`
	KeyID    string `env:"S3_KEY_ID"`
	Secret   string `env:"S3_SECRET"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type DBConfig struct {
	Host     string `env:"DB_HOST" envDefault:"127.0.0.1"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"neuralpulse"`
	Password string `env:"DB_PASSWORD" envDefault:"neuralpulse"`
	Name     string `env:"DB_NAME" envDefault:"neuralpulse"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type AuthConfig struct {
	PasswordHasher   string `env:"PASSWORD_HASHER" envDefault:"plaintext"`
	JWTSecret        string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	AccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"60"`
}

// AdminConfig optionally bootstraps an extra admin account on start.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
	Name     string `env:"ADMIN_NAME"`
	Email    string `env:"ADMIN_EMAIL"`
}

type HTTPConfig struct {
	CORSOrigins        []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxBodyBytes       int64    `env:"MAX_BODY_BYTES" envDefault:"10485760"`
	LoginRateLimit     int      `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindowSec int      `env:"LOGIN_RATE_WINDOW_SECONDS" envDefault:"60"`
	RegisterRateLimit  int      `env:"REGISTER_RATE_LIMIT" envDefault:"5"`
	// proxy IPs/CIDRs allowed to set X-Forwarded-For; empty trusts none
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

type BlogConfig struct {
	CacheTTLSeconds int `env:"BLOG_CACHE_TTL_SECONDS" envDefault:"30"`
}

type ArticlesConfig struct {
	DeletePolicy string `env:"ARTICLE_DELETE_POLICY" envDefault:"owner"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Persist.Backend {
	case "memory", "file", "s3", "redis", "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown PERSIST_BACKEND %q", c.Persist.Backend)
	}
	if c.Persist.Backend == "s3" && strings.TrimSpace(c.S3.Bucket) == "" {
		return fmt.Errorf("S3_BUCKET is required for the s3 backend")
	}
	if c.Env != "dev" && c.Auth.JWTSecret == "dev-secret-change-me" {
		return fmt.Errorf("JWT_SECRET must be set outside dev")
	}
	return nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.Auth.AccessTTLMinutes) * time.Minute
}

func (c Config) LoginRateWindow() time.Duration {
	return time.Duration(c.HTTP.LoginRateWindowSec) * time.Second
}

func (c Config) BlogCacheTTL() time.Duration {
	return time.Duration(c.Blog.CacheTTLSeconds) * time.Second
}

// DBURL builds the postgres connection string for the slot backend.
func (c Config) DBURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}
	return u.String()
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
