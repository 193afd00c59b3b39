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

package openai

import (
	"log/slog"

	"github.com/poiesic/rightsdesk/ai"
)

// Provider implements ai.AIProvider over a single OpenAI-compatible chat endpoint.
type Provider struct {
	generator *Generator
	logger    *slog.Logger
}

// NewProvider validates config and builds the advisory generator.
//
// Returns ai.AIProvider so callers depend on the interface, not on langchaingo.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	generator, err := newGenerator(config)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("component", "openai-provider", "host", config.Host, "model", config.Model)
	logger.Debug("advisor configured", "authenticated", config.APIKey != "")

	return &Provider{
		generator: generator,
		logger:    logger,
	}, nil
}

func (p *Provider) TextGenerator() ai.TextGenerator {
	return p.generator
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (p *Provider) Close() error {
	p.logger.Debug("closing advisor")
	return nil
}
