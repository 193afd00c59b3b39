package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.Host)
	assert.Equal(t, "google/gemini-2.0-flash-001", cfg.Model)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 1000, cfg.MaxTokens)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
}

func TestNewConfig(t *testing.T) {
	t.Run("with no options", func(t *testing.T) {
		cfg := NewConfig()

		assert.Equal(t, DefaultHost, cfg.Host)
		assert.Equal(t, DefaultModel, cfg.Model)
	})

	t.Run("with local host and model", func(t *testing.T) {
		cfg := NewConfig(
			WithHost("http://localhost:11434/v1"),
			WithModel("qwen2.5:3b"),
		)

		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
		assert.Equal(t, "qwen2.5:3b", cfg.Model)
	})

	t.Run("with multiple options", func(t *testing.T) {
		cfg := NewConfig(
			WithAPIKey("sk-test"),
			WithMaxTokens(400),
			WithTemperature(0.2),
		)

		assert.Equal(t, "sk-test", cfg.APIKey)
		assert.Equal(t, 400, cfg.MaxTokens)
		assert.InDelta(t, 0.2, cfg.Temperature, 1e-9)
		assert.Equal(t, DefaultHost, cfg.Host)
	})
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		expected string
	}{
		{name: "already has /v1", host: "http://localhost:11434/v1", expected: "http://localhost:11434/v1"},
		{name: "openrouter", host: "https://openrouter.ai/api/v1", expected: "https://openrouter.ai/api/v1"},
		{name: "missing /v1", host: "http://localhost:11434", expected: "http://localhost:11434/v1"},
		{name: "has trailing slash", host: "http://localhost:11434/", expected: "http://localhost:11434/v1"},
		{name: "empty host", host: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.expected, cfg.Host)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Host:        "http://localhost:11434",
			Model:       "qwen2.5:3b",
			MaxTokens:   1000,
			Temperature: 0.7,
		}
	}

	t.Run("valid config", func(t *testing.T) {
		cfg := valid()
		require.NoError(t, cfg.Validate())

		// Should also normalize
		assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	})

	t.Run("missing host", func(t *testing.T) {
		cfg := valid()
		cfg.Host = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Host")
	})

	t.Run("missing model", func(t *testing.T) {
		cfg := valid()
		cfg.Model = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Model")
	})

	t.Run("zero max tokens", func(t *testing.T) {
		cfg := valid()
		cfg.MaxTokens = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MaxTokens")
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 2.5
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Temperature")

		cfg.Temperature = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature at boundaries", func(t *testing.T) {
		cfg := valid()
		cfg.Temperature = 0
		assert.NoError(t, cfg.Validate())
		cfg.Temperature = 2
		assert.NoError(t, cfg.Validate())
	})

	t.Run("empty API key is allowed", func(t *testing.T) {
		cfg := valid()
		cfg.APIKey = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfigValidate_Integration(t *testing.T) {
	require.NoError(t, NewConfig().Validate())
	require.NoError(t, DefaultConfig().Validate())
}
