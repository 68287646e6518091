package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// BackendConfig points the portal at the remote booking API. The portal
// holds no state of its own; everything flows through this base URL.
type BackendConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type UIConfig struct {
	PageSize     int           `mapstructure:"page_size"`
	SearchSettle time.Duration `mapstructure:"search_settle"`
	NoticeTTL    time.Duration `mapstructure:"notice_ttl"`
	FormReset    time.Duration `mapstructure:"form_reset"`
}

// envOverrides are the deploy-time knobs that may arrive without a config
// file at all.
type envOverrides struct {
	Port           int    `envconfig:"PORT"`
	BackendBaseURL string `envconfig:"BACKEND_BASE_URL"`
	LogLevel       string `envconfig:"LOG_LEVEL"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 3000)
	viper.SetDefault("server.read_timeout", 10*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("backend.timeout", 15*time.Second)
	viper.SetDefault("backend.cache_ttl", 30*time.Second)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("ui.page_size", 5)
	viper.SetDefault("ui.search_settle", 500*time.Millisecond)
	viper.SetDefault("ui.notice_ttl", 4*time.Second)
	viper.SetDefault("ui.form_reset", 3*time.Second)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var env envOverrides
	if err := envconfig.Process("portal", &env); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	if env.Port != 0 {
		config.Server.Port = env.Port
	}
	if env.BackendBaseURL != "" {
		config.Backend.BaseURL = env.BackendBaseURL
	}
	if env.LogLevel != "" {
		config.Log.Level = env.LogLevel
	}

	if config.Backend.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	return &config, nil
}
