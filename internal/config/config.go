package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode             string        `mapstructure:"mode"`
	Port             int           `mapstructure:"port"`
	ConferenceDomain string        `mapstructure:"conference_domain"`
	AutoOwner        bool          `mapstructure:"auto_owner"`
	ReadLimit        int64         `mapstructure:"read_limit"`
	PingPeriod       time.Duration `mapstructure:"ping_period"`
	FeedBuffer       int           `mapstructure:"feed_buffer"`
	FeedOverflow     string        `mapstructure:"feed_overflow"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("MUC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("conference_domain", "conference.localhost")
	v.SetDefault("auto_owner", false)
	v.SetDefault("read_limit", 4096)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("feed_buffer", 32)
	v.SetDefault("feed_overflow", "disconnect")

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ConferenceDomain == "" {
		return nil, fmt.Errorf("conference_domain must not be empty")
	}
	if cfg.FeedBuffer <= 0 {
		return nil, fmt.Errorf("feed_buffer must be positive, got %d", cfg.FeedBuffer)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("domain", cfg.ConferenceDomain).Msg("config ready")
	return &cfg, nil
}
