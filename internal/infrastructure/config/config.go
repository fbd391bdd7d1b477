// Package config loads the application configuration from configs/config.yaml,
// an optional .env file and TRACKR_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/trackr-io/trackr/internal/shared/config"
	"github.com/trackr-io/trackr/internal/shared/constants"
)

const envPrefix = "TRACKR"

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Ticket    sharedConfig.TicketConfig    `mapstructure:"ticket"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads the configuration. path may name a config file explicitly;
// otherwise config.yaml is searched in ./configs and ../configs. A missing
// file is not an error: defaults and environment variables still apply.
func Load(path, env string) (*Config, error) {
	v := viper.New()
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()
	return &cfg, nil
}

// Get returns the last loaded configuration.
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Ticket.Numbering.Scheme {
	case constants.NumberingSchemeGlobal, constants.NumberingSchemeProject:
	default:
		return fmt.Errorf("unknown ticket numbering scheme %q", c.Ticket.Numbering.Scheme)
	}
	switch c.Ticket.Numbering.Backend {
	case constants.NumberingBackendDB:
	case constants.NumberingBackendRedis:
		if !c.Redis.Enabled {
			return fmt.Errorf("ticket numbering backend redis requires redis.enabled")
		}
	default:
		return fmt.Errorf("unknown ticket numbering backend %q", c.Ticket.Numbering.Backend)
	}
	if c.Server.Mode == "release" && c.Auth.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("auth.jwt.secret must be set in release mode")
	}
	return nil
}

// loadDotEnv never overrides variables already set in the environment.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

const defaultJWTSecret = "change-me-in-production"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "trackr_dev")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", defaultJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 15)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "noreply@trackr.local")
	v.SetDefault("email.from_name", "Trackr")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("ticket.numbering.scheme", constants.NumberingSchemeGlobal)
	v.SetDefault("ticket.numbering.backend", constants.NumberingBackendDB)
	v.SetDefault("ticket.numbering.global_prefix", constants.DefaultTicketPrefix)

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.per_minute", 10)
	v.SetDefault("ratelimit.per_hour", 100)
}
