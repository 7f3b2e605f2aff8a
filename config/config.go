package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort        string        `mapstructure:"HTTPPort"`
		Timeout         time.Duration `mapstructure:"HTTPTimeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	} `mapstructure:"server"`
	// Weather is the OpenWeatherMap-compatible API used to validate city names.
	Weather struct {
		BaseURL  string        `mapstructure:"baseURL"`
		APIKey   string        `mapstructure:"apiKey"`
		Units    string        `mapstructure:"units"`
		Timeout  time.Duration `mapstructure:"timeout"`
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"weather"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rateLimit"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// WEATHER_APIKEY overrides weather.apiKey, and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyDefaults(&config)
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// applyDefaults fills values the yml may leave out.
func applyDefaults(c *Config) {
	if c.Mode == "" {
		c.Mode = "development"
	}
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Handlers.Prometheus.Port == "" {
		c.Handlers.Prometheus.Port = "9090"
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = "https://api.openweathermap.org"
	}
	if c.Weather.Units == "" {
		c.Weather.Units = "metric"
	}
	if c.Weather.Timeout <= 0 {
		c.Weather.Timeout = 5 * time.Second
	}
	if c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
}
