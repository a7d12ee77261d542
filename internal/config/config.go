// Package config loads the fieldlayout.yaml configuration and applies environment overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "fieldlayout.yaml"

// Config is the application configuration.
type Config struct {
	// Dir is the form definitions directory. Empty means built-in forms.
	Dir      string      `yaml:"dir" json:"dir"`
	LogLevel string      `yaml:"log_level" json:"log_level"`
	HTTP     HTTPConfig  `yaml:"http" json:"http"`
	MCP      MCPConfig   `yaml:"mcp" json:"mcp"`
	Redis    RedisConfig `yaml:"redis" json:"redis"`
	// Pairs overrides the default pair rules, each as "a,b".
	Pairs []string `yaml:"pairs" json:"pairs"`
}

type HTTPConfig struct {
	Port string `yaml:"port" json:"port"`
}

type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// RedisConfig enables the Redis layout cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr" json:"addr"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// UnmarshalJSON accepts ttl as a duration string ("10m") or as nanoseconds,
// matching what the YAML decoder accepts.
func (r *RedisConfig) UnmarshalJSON(data []byte) error {
	type plain RedisConfig
	aux := struct {
		*plain
		TTL any `json:"ttl"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch v := aux.TTL.(type) {
	case nil:
	case string:
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid redis ttl: %w", err)
		}
		r.TTL = ttl
	case float64:
		r.TTL = time.Duration(v)
	default:
		return fmt.Errorf("invalid redis ttl: unexpected %T", v)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP:     HTTPConfig{Port: "8080"},
		MCP:      MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults and then
// applies environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(path, data, &cfg); err != nil {
				return Config{}, err
			}
		case os.IsNotExist(err):
			// Defaults only
		default:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("FIELDLAYOUT_DIR"); ok {
		cfg.Dir = v
	}
	if v, ok := lookup("FIELDLAYOUT_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := lookup("FIELDLAYOUT_PORT"); ok {
		cfg.HTTP.Port = v
	}
	if v, ok := lookup("FIELDLAYOUT_REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := lookup("FIELDLAYOUT_REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
	if v, ok := lookup("FIELDLAYOUT_REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid FIELDLAYOUT_REDIS_TTL: %w", err)
		}
		cfg.Redis.TTL = ttl
	}
	if v, ok := lookup("FIELDLAYOUT_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FIELDLAYOUT_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	return nil
}
