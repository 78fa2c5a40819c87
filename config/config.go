// Package config loads the service configuration from YAML with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/priyanshu-naveen/Coffee-Shop-Prediction/logging"
)

type Config struct {
	Http struct {
		Port           int           `yaml:"port"`
		Timeout        time.Duration `yaml:"timeout"`
		MaxBodyBytes   int64         `yaml:"max_body_bytes"`
		AllowedOrigins []string      `yaml:"allowed_origins"`
	} `yaml:"http"`
	Log logging.Config `yaml:"log"`
	ML  struct {
		ModelPath string `yaml:"model_path"`
		CacheSize int    `yaml:"cache_size"`
		Preload   bool   `yaml:"preload"`
		Watch     bool   `yaml:"watch"`
	} `yaml:"ml"`
}

// Load reads path; a missing file yields defaults. Environment variables
// COFFEE_HTTP_PORT, COFFEE_MODEL_PATH and COFFEE_LOG_LEVEL win over the file.
func Load(path string) (*Config, error) {
	var config Config

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, err
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Http.Port == 0 {
		c.Http.Port = 8080
	}
	if c.Http.Timeout <= 0 {
		c.Http.Timeout = 30 * time.Second
	}
	if c.Http.MaxBodyBytes <= 0 {
		c.Http.MaxBodyBytes = 1 << 16
	}
	if len(c.Http.AllowedOrigins) == 0 {
		c.Http.AllowedOrigins = []string{"*"}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.ML.ModelPath == "" {
		c.ML.ModelPath = "model.json"
	}
	if c.ML.CacheSize == 0 {
		c.ML.CacheSize = 256
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("COFFEE_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid COFFEE_HTTP_PORT=%q: %w", v, err)
		}
		c.Http.Port = port
	}
	if v := os.Getenv("COFFEE_MODEL_PATH"); v != "" {
		c.ML.ModelPath = v
	}
	if v := os.Getenv("COFFEE_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}
