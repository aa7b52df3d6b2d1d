package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment variables before they are mapped to keys,
// e.g. STOREFRONT_SERVER_PORT -> server.port
const EnvPrefix = "STOREFRONT_"

// Config holds all configuration for both binaries
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Catalog    CatalogConfig    `koanf:"catalog"`
	Storefront StorefrontConfig `koanf:"storefront"`
	Log        LogConfig        `koanf:"log"`
}

type ServerConfig struct {
	Port    string `koanf:"port" validate:"required,numeric"`
	Host    string `koanf:"host"`
	Timeout struct {
		Read     time.Duration `koanf:"read" validate:"gt=0"`
		Write    time.Duration `koanf:"write" validate:"gt=0"`
		Shutdown time.Duration `koanf:"shutdown" validate:"gt=0"`
	} `koanf:"timeout"`
}

// Addr returns host:port for net/http
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type CatalogConfig struct {
	Path        string `koanf:"path" validate:"required"`
	ServePublic bool   `koanf:"servepublic"`
}

type StorefrontConfig struct {
	API struct {
		URL string `koanf:"url" validate:"required,url"`
	} `koanf:"api"`
	Fetch struct {
		// Zero disables the timeout
		Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
	} `koanf:"fetch"`
	Quantity struct {
		Policy string `koanf:"policy" validate:"oneof=unbounded floor remove"`
	} `koanf:"quantity"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
}

// Defaults returns the built-in values every other source overrides
func Defaults() map[string]any {
	return map[string]any{
		"server.port":                "8080",
		"server.host":                "0.0.0.0",
		"server.timeout.read":        "15s",
		"server.timeout.write":       "15s",
		"server.timeout.shutdown":    "30s",
		"catalog.path":               "public/products.json",
		"catalog.servepublic":        true,
		"storefront.api.url":         "http://localhost:8080",
		"storefront.fetch.timeout":   "10s",
		"storefront.quantity.policy": "unbounded",
		"log.level":                  "info",
	}
}

// Options selects the files Load reads; missing files are skipped
type Options struct {
	ConfigFile string
	EnvFile    string
}

// DefaultOptions reads config.yaml and .env from the working directory
func DefaultOptions() Options {
	return Options{
		ConfigFile: "config.yaml",
		EnvFile:    ".env",
	}
}

// Load layers defaults, the YAML file, the .env file and the process environment,
// in increasing priority, then validates the result.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if opts.ConfigFile != "" {
		if err := k.Load(file.Provider(opts.ConfigFile), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file %s: %w", opts.ConfigFile, err)
		}
	}

	if opts.EnvFile != "" {
		envFileMap, err := godotenv.Read(opts.EnvFile)
		switch {
		case err == nil:
			envMap := make(map[string]any, len(envFileMap))
			for key, value := range envFileMap {
				if strings.HasPrefix(key, EnvPrefix) {
					envMap[envKey(key)] = value
				}
			}
			if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
				return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read env file %s: %w", opts.EnvFile, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func envKey(key string) string {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "_", ".")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	c.Log.Level = strings.ToLower(c.Log.Level)
	c.Storefront.Quantity.Policy = strings.ToLower(c.Storefront.Quantity.Policy)

	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}
