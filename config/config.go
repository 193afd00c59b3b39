// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/poiesic/rightsdesk/ai"
)

// Environment variables that override file settings.
const (
	EnvAPIKey   = "LLM_API_KEY"
	EnvBaseURL  = "LLM_BASE_URL"
	EnvModel    = "LLM_MODEL"
	EnvDatabase = "RIGHTSDESK_DB"
	EnvPort     = "PORT"
)

const (
	DefaultDatabasePath    = "rightsdesk.db"
	DefaultPort            = 8080
	DefaultBatchSize       = 50
	DefaultSessionPoolSize = 1
)

type LLMConfig struct {
	Enabled     bool    `toml:"enabled"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

type StorageConfig struct {
	Path     string `toml:"path"`
	InMemory bool   `toml:"in_memory"`
}

type ServerConfig struct {
	Port int `toml:"port"`
}

type SearchConfig struct {
	SessionPoolSize int `toml:"session_pool_size"`
}

type CatalogConfig struct {
	BatchSize int `toml:"batch_size"`
}

// Config is the application configuration.
type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
	Search  SearchConfig  `toml:"search"`
	Catalog CatalogConfig `toml:"catalog"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	llm := ai.DefaultConfig()
	return &Config{
		LLM: LLMConfig{
			Enabled:     true,
			BaseURL:     llm.Host,
			Model:       llm.Model,
			MaxTokens:   llm.MaxTokens,
			Temperature: llm.Temperature,
		},
		Storage: StorageConfig{Path: DefaultDatabasePath},
		Server:  ServerConfig{Port: DefaultPort},
		Search:  SearchConfig{SessionPoolSize: DefaultSessionPoolSize},
		Catalog: CatalogConfig{BatchSize: DefaultBatchSize},
	}
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		}
		if err := decode(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: failed to parse TOML: %w", ErrInvalidConfig, err)
	}
	return nil
}

// LoadDotEnv loads .env style files into the process environment.
// Variables already set win. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvPort, v)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if !c.Storage.InMemory && c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is required", ErrInvalidConfig)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Search.SessionPoolSize < 1 {
		return fmt.Errorf("%w: search.session_pool_size must be positive", ErrInvalidConfig)
	}
	if c.Catalog.BatchSize < 1 {
		return fmt.Errorf("%w: catalog.batch_size must be positive", ErrInvalidConfig)
	}
	if c.LLM.Enabled {
		if err := c.AIConfig().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// AIConfig converts the [llm] section into an ai.Config.
func (c *Config) AIConfig() *ai.Config {
	return ai.NewConfig(
		ai.WithHost(c.LLM.BaseURL),
		ai.WithModel(c.LLM.Model),
		ai.WithAPIKey(c.LLM.APIKey),
		ai.WithMaxTokens(c.LLM.MaxTokens),
		ai.WithTemperature(c.LLM.Temperature),
	)
}
