package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// WithEnv overrides settings with the environment variables named in the
// env tags of Config. Unset variables leave the current value.
func WithEnv() Option {
	return func(c *Config) error {
		if err := cleanenv.ReadEnv(c); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
		return nil
	}
}

// WithFile reads a YAML config file, then the environment on top of it.
func WithFile(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return nil
		}
		if err := cleanenv.ReadConfig(path, c); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
		return nil
	}
}

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *Config) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithDatabase sets the database URL. "memory" keeps data in memory.
func WithDatabase(url string) Option {
	return func(c *Config) error {
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseSchema sets the Postgres search_path schema.
func WithDatabaseSchema(schema string) Option {
	return func(c *Config) error {
		c.DBSchema = schema
		return nil
	}
}

// WithStorageURL sets the binary file store.
func WithStorageURL(url string) Option {
	return func(c *Config) error {
		c.StorageURL = url
		return nil
	}
}

// WithSeedFile applies a seed file on startup.
func WithSeedFile(path string) Option {
	return func(c *Config) error {
		c.SeedFile = path
		return nil
	}
}

// WithInstall toggles the built in install seed.
func WithInstall(enabled bool) Option {
	return func(c *Config) error {
		c.Install = enabled
		return nil
	}
}

// WithEventLogging toggles logging of repository events.
func WithEventLogging(enabled bool) Option {
	return func(c *Config) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// WithJWTSecret sets the token signing secret.
func WithJWTSecret(secret string) Option {
	return func(c *Config) error {
		if secret == "" {
			return fmt.Errorf("jwt secret cannot be empty")
		}
		c.JWTSecret = secret
		return nil
	}
}
