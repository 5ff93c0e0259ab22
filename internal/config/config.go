package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/klinikdev/klinik-api/internal/email"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/service/auth"
)

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type PersistenceConfig struct {
	// Backend selects the adapter: "file" or "postgres".
	Backend  string                     `mapstructure:"backend"`
	DataDir  string                     `mapstructure:"data_dir"`
	Database persistence.DatabaseConfig `mapstructure:"database"`
}

type RedisConfig struct {
	// Addr empty means the in-process slot locker is used instead.
	Addr    string        `mapstructure:"addr"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
}

type SMTPConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	email.SMTPConfig `mapstructure:",squash"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type BookingConfig struct {
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Auth        auth.Config       `mapstructure:"auth"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
	Redis       RedisConfig       `mapstructure:"redis"`
	SMTP        SMTPConfig        `mapstructure:"smtp"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Booking     BookingConfig     `mapstructure:"booking"`
}

// envOverrides are process-level settings that trump the config file.
type envOverrides struct {
	Port      int    `envconfig:"PORT"`
	DataDir   string `envconfig:"DATA_DIR"`
	RedisAddr string `envconfig:"REDIS_ADDR"`
	JWTSecret string `envconfig:"JWT_SECRET"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("klinik", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Port != 0 {
		cfg.Server.Port = env.Port
	}
	if env.DataDir != "" {
		cfg.Persistence.DataDir = env.DataDir
	}
	if env.RedisAddr != "" {
		cfg.Redis.Addr = env.RedisAddr
	}
	if env.JWTSecret != "" {
		cfg.Auth.JWTSecret = env.JWTSecret
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("auth.username", "admin")
	viper.SetDefault("auth.password", "admin123")
	viper.SetDefault("auth.jwt_secret", "change-me")
	viper.SetDefault("auth.token_expiry", "12h")
	viper.SetDefault("persistence.backend", "file")
	viper.SetDefault("persistence.data_dir", "./data")
	viper.SetDefault("persistence.database.sslmode", "disable")
	viper.SetDefault("redis.lock_ttl", "10s")
	viper.SetDefault("rate_limit.requests_per_second", 50)
	viper.SetDefault("rate_limit.burst", 100)
	viper.SetDefault("booking.session_ttl", "30m")
}
