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

// Package openai generates advisories through OpenAI-compatible chat APIs.
//
// Requests go through langchaingo's openai client, so any service speaking the
// chat completions protocol works: OpenRouter (the default), Ollama, LocalAI or
// vLLM. Every request carries ai.SystemPrompt ahead of the user prompt.
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("LLM_API_KEY")))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	advisory, err := provider.TextGenerator().Generate(ctx, prompt)
package openai
