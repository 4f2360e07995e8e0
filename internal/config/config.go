package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env  string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP struct {
		Host         string  `yaml:"host" env:"HTTP_HOST" env-default:"127.0.0.1"`
		Port         string  `yaml:"port" env:"PORT" env-default:"8080"`
		GinMode      string  `yaml:"gin_mode" env:"GIN_MODE" env-default:"release"`
		RateLimit    float64 `yaml:"rate_limit" env:"HTTP_RATE_LIMIT" env-default:"20" env-description:"requests per second per client"`
		Burst        int     `yaml:"burst" env:"HTTP_RATE_BURST" env-default:"40"`
		MaxBodyBytes int64   `yaml:"max_body_bytes" env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		Pretty bool   `yaml:"pretty" env:"LOG_PRETTY" env-default:"false"`
	} `yaml:"log"`
	Dataset struct {
		Dir string `yaml:"dir" env:"DATASET_DIR" env-description:"directory of tenant fixtures, bundled ones when empty"`
	} `yaml:"dataset"`
	Dashboard struct {
		FeedLimit int    `yaml:"feed_limit" env:"DASHBOARD_FEED_LIMIT" env-default:"10"`
		Now       string `yaml:"now" env:"DASHBOARD_NOW" env-description:"RFC 3339 reference time, wall clock when empty"`
	} `yaml:"dashboard"`
}

// Load reads .env if present, then the yaml file at path (env vars override
// it), or the environment alone when path is empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to read .env: %w", err)
	}
	cfg := &Config{}
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, cfg)
	} else {
		err = cleanenv.ReadEnv(cfg)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("%w; %s", err, desc)
	}
	if _, err := cfg.ReferenceTime(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return c.HTTP.Host + ":" + c.HTTP.Port
}

// ReferenceTime is the configured "now", zero when the wall clock is used.
func (c *Config) ReferenceTime() (time.Time, error) {
	if c.Dashboard.Now == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, c.Dashboard.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("DASHBOARD_NOW: %w", err)
	}
	return t, nil
}

// Clock returns a fixed clock at the reference time, or time.Now.
func (c *Config) Clock() func() time.Time {
	t, err := c.ReferenceTime()
	if err != nil || t.IsZero() {
		return time.Now
	}
	return func() time.Time { return t }
}
