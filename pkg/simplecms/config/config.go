// Package config loads server configuration from defaults, an optional
// YAML file and the environment, and builds the repository it describes.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaults() Config {
	return Config{
		Port:               "8080",
		Environment:        "development",
		StorageURL:         "memory://",
		DefaultLanguage:    "eng-GB",
		AnonymousLogin:     "anonymous",
		Install:            true,
		EnableEventLogging: true,
		JWTSecret:          "dev-secret-change-me",
		TokenTTL:           24 * time.Hour,
		ServiceName:        "simple-cms",
		S3: S3Config{
			Region:          "us-east-1",
			PresignDuration: 3600,
		},
	}
}

// Config is the server configuration. Fields carry the environment
// variables and YAML keys they are read from.
type Config struct {
	Port        string `yaml:"port" env:"PORT"`
	Environment string `yaml:"environment" env:"ENVIRONMENT"` // development, production, testing

	// DatabaseURL selects Postgres when it is a postgres:// or
	// postgresql:// URL. Empty or "memory" keeps everything in memory.
	DatabaseURL string `yaml:"database_url" env:"DATABASE_URL"`
	DBSchema    string `yaml:"db_schema" env:"DB_SCHEMA"`
	// SearchEngine is "sql" or "predicate". The default is sql on Postgres
	// and predicate otherwise.
	SearchEngine string `yaml:"search_engine" env:"SEARCH_ENGINE"`

	// StorageURL is the binary file store: memory://, file:///path or
	// s3://bucket?region=...&endpoint=...&path_style=true&prefix=...
	StorageURL string   `yaml:"storage_url" env:"STORAGE_URL"`
	S3         S3Config `yaml:"s3"`

	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE"`
	AnonymousLogin  string `yaml:"anonymous_login" env:"ANONYMOUS_LOGIN"`
	// Install applies the built in install seed on startup. SeedFile is
	// applied after it.
	Install  bool   `yaml:"install" env:"INSTALL"`
	SeedFile string `yaml:"seed_file" env:"SEED_FILE"`

	EnableEventLogging bool `yaml:"event_logging" env:"EVENT_LOGGING"`

	JWTSecret    string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"TOKEN_TTL"`
	APIKeySHA256 string        `yaml:"api_key_sha256" env:"API_KEY_SHA256"`

	OTLPEndpoint string `yaml:"otlp_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
}

// S3Config holds credentials and tuning for s3:// storage URLs.
type S3Config struct {
	AccessKeyID     string `yaml:"access_key_id" env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"AWS_SECRET_ACCESS_KEY"`
	Region          string `yaml:"region" env:"AWS_REGION"`
	PresignDuration int    `yaml:"presign_duration" env:"AWS_S3_PRESIGN_DURATION"`
	CreateBucket    bool   `yaml:"create_bucket" env:"AWS_S3_CREATE_BUCKET"`
}

// DatabaseType returns "postgres" or "memory".
func (c *Config) DatabaseType() string {
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return "postgres"
	}
	return "memory"
}

// searchEngine resolves the default engine for the database.
func (c *Config) searchEngine() string {
	if c.SearchEngine != "" {
		return c.SearchEngine
	}
	if c.DatabaseType() == "postgres" {
		return "sql"
	}
	return "predicate"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.DatabaseURL != "" && c.DatabaseURL != "memory" && c.DatabaseType() != "postgres" {
		return fmt.Errorf("unsupported database_url %q (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}
	switch c.SearchEngine {
	case "", "predicate":
	case "sql":
		if c.DatabaseType() != "postgres" {
			return errors.New("search_engine 'sql' requires a postgres database")
		}
	default:
		return fmt.Errorf("search_engine must be 'sql' or 'predicate', got %q", c.SearchEngine)
	}
	if _, err := c.storage(); err != nil {
		return err
	}
	if c.TokenTTL <= 0 {
		return errors.New("token_ttl must be positive")
	}
	if c.JWTSecret == "" {
		return errors.New("jwt_secret is required")
	}
	if c.Environment == "production" && c.JWTSecret == defaults().JWTSecret {
		return errors.New("jwt_secret must be changed in production")
	}
	return nil
}

// storageTarget is a parsed storage URL.
type storageTarget struct {
	Type      string // memory, fs, s3
	Path      string
	Bucket    string
	Region    string
	Endpoint  string
	PathStyle bool
	Prefix    string
}

func (c *Config) storage() (storageTarget, error) {
	raw := c.StorageURL
	if raw == "" || raw == "memory" || raw == "memory://" {
		return storageTarget{Type: "memory"}, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return storageTarget{}, fmt.Errorf("invalid storage_url: %w", err)
	}
	switch u.Scheme {
	case "file":
		// file:///abs/path and file://relative/path
		path := u.Host + u.Path
		if path == "" {
			return storageTarget{}, errors.New("filesystem path cannot be empty in storage_url")
		}
		return storageTarget{Type: "fs", Path: path}, nil
	case "s3":
		if u.Host == "" {
			return storageTarget{}, errors.New("S3 bucket name cannot be empty in storage_url")
		}
		q := u.Query()
		target := storageTarget{
			Type:      "s3",
			Bucket:    u.Host,
			Region:    q.Get("region"),
			Endpoint:  q.Get("endpoint"),
			PathStyle: q.Get("path_style") == "true",
			Prefix:    q.Get("prefix"),
		}
		if target.Region == "" {
			target.Region = c.S3.Region
		}
		return target, nil
	default:
		return storageTarget{}, fmt.Errorf("unsupported storage_url %q (use 'memory://', 'file://...', or 's3://...')", raw)
	}
}
