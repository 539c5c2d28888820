// Package config loads server configuration from an optional YAML file and
// OMOK_-prefixed environment variables, with defaults suitable for local
// development.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Game      GameConfig      `mapstructure:"game"`
	Directory DirectoryConfig `mapstructure:"directory"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type GameConfig struct {
	// StartDelay is how long the deferred game-start broadcast waits after
	// both players ready up
	StartDelay time.Duration `mapstructure:"start_delay"`
	// TurnLimit is the per-turn time budget
	TurnLimit time.Duration `mapstructure:"turn_limit"`
}

type DirectoryConfig struct {
	// Backend selects the room listing backend ("memory" or "redis")
	Backend string `mapstructure:"backend"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	RoomTTL      time.Duration `mapstructure:"room_ttl"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the given file path (optional, pass "" to
// skip) layered over environment variables and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("OMOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("game.start_delay", 500*time.Millisecond)
	v.SetDefault("game.turn_limit", 30*time.Second)

	v.SetDefault("directory.backend", "memory")

	v.SetDefault("redis.url", "redis://localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.room_ttl", 24*time.Hour)

	v.SetDefault("logging.level", "info")
}

// LogLevel maps the configured level name to a slog level, defaulting to
// info for unrecognized values
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Logging.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
