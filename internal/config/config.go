package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultAccessTTL          = "30m"
	defaultRefreshTTL         = "72h"
	defaultSweepInterval      = "30m"
	defaultBlacklistGrace     = "24h"
	defaultJWTAlgorithm       = "HS256"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultCookieSecure       = "false"
	defaultCookiePath         = "/"
	defaultStorageBackend     = "local"
	defaultUploadDir          = "./uploads"
	defaultStaticBase         = "/static/uploads"
	defaultUsernameLength     = 12
)

// Config carries every runtime knob the process needs. It is loaded once at
// startup and handed to the components that use it; business logic never
// reads the environment directly.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	JWTSecret    string
	JWTAlgorithm string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration

	SweepInterval time.Duration
	// BlacklistRetention is how long a blacklist entry is kept before the
	// sweep may purge it. Defaults to RefreshTTL plus a grace period so an
	// entry always outlives any token it could shadow.
	BlacklistRetention time.Duration

	CookieSecure bool
	CookiePath   string

	// CORSAllowedOrigins is the extra origin allowlist on top of the local
	// development defaults.
	CORSAllowedOrigins []string

	StorageBackend string // "local" or "s3"
	UploadDir      string
	StaticBase     string

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKeyID   string
	S3SecretKey     string
	S3PublicBaseURL string

	UsernameLength int
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", ":8080")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "photoshare.db")

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.JWTAlgorithm = strings.TrimSpace(getEnv("JWT_ALGORITHM", defaultJWTAlgorithm))

	var err error
	cfg.AccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval, err = parseDurationEnv("SWEEP_INTERVAL", defaultSweepInterval)
	if err != nil {
		return nil, err
	}

	grace, err := parseDurationEnv("BLACKLIST_GRACE", defaultBlacklistGrace)
	if err != nil {
		return nil, err
	}
	cfg.BlacklistRetention = cfg.RefreshTTL + grace
	if v := os.Getenv("BLACKLIST_RETENTION"); v != "" {
		cfg.BlacklistRetention, err = parseDurationEnv("BLACKLIST_RETENTION", v)
		if err != nil {
			return nil, err
		}
	}

	cfg.CookieSecure = parseBoolEnv("COOKIE_SECURE", defaultCookieSecure)
	cfg.CookiePath = strings.TrimSpace(getEnv("COOKIE_PATH", defaultCookiePath))
	cfg.CORSAllowedOrigins = parseListEnv("CORS_ALLOWED_ORIGINS")

	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", defaultStorageBackend))
	cfg.UploadDir = getEnv("UPLOAD_DIR", defaultUploadDir)
	cfg.StaticBase = getEnv("STATIC_BASE", defaultStaticBase)

	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	cfg.S3PublicBaseURL = os.Getenv("S3_PUBLIC_BASE_URL")

	cfg.UsernameLength = defaultUsernameLength

	if err := validate(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s storage=%s access_ttl=%s refresh_ttl=%s sweep=%s",
		cfg.AppEnv, cfg.StorageBackend, cfg.AccessTTL, cfg.RefreshTTL, cfg.SweepInterval)

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("JWT_REFRESH_TTL must be > 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be > 0")
	}
	if cfg.BlacklistRetention < cfg.RefreshTTL {
		return fmt.Errorf("BLACKLIST_RETENTION must not be shorter than JWT_REFRESH_TTL")
	}
	if cfg.CookiePath == "" {
		return fmt.Errorf("COOKIE_PATH must not be empty")
	}
	switch cfg.StorageBackend {
	case "local":
	case "s3":
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND=s3")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: local, s3")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func parseListEnv(name string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
