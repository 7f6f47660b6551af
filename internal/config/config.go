// Package config loads lectern settings from an optional YAML file and
// LECTERN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DB      string        `mapstructure:"db"`
	Log     LogConfig     `mapstructure:"log"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Server  ServerConfig  `mapstructure:"server"`
	Tutor   TutorConfig   `mapstructure:"tutor"`
}

type LogConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

type SessionConfig struct {
	// Backend is "sqlite", "redis" or "memory".
	Backend string `mapstructure:"backend"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type TutorConfig struct {
	DefaultUser      string `mapstructure:"default_user"`
	RepeatAdaptation bool   `mapstructure:"repeat_adaptation"`
}

const envPrefix = "LECTERN"

// Load reads configuration. An explicit path must exist; otherwise
// config.yaml is looked up in the lectern config directories and is
// optional. Environment variables override file values, with "." in keys
// replaced by "_" (LECTERN_REDIS_ADDR, LECTERN_TUTOR_DEFAULT_USER).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("log.mode", "development")
	v.SetDefault("log.level", "warn")
	v.SetDefault("session.backend", "sqlite")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.ttl", 7*24*time.Hour)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("tutor.default_user", "default_user")
	v.SetDefault("tutor.repeat_adaptation", false)
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "lectern"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "lectern"))
	}
	return dirs
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Session.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("session.backend must be sqlite, redis or memory, got %q", c.Session.Backend)
	}
	if c.Session.Backend == "redis" && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when session.backend is redis")
	}
	if c.Tutor.DefaultUser == "" {
		return errors.New("tutor.default_user must not be empty")
	}
	return nil
}
