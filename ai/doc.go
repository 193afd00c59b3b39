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

// Package ai provides abstractions for the AI services used by rightsdesk.
//
// The only AI capability the application needs is plain text generation: a
// search may ask a model for a short educational explanation of the user's
// situation (the "advisory"). Everything else in the application is
// deterministic.
//
// # Interfaces
//
//   - TextGenerator: one prompt in, one response out
//   - AIProvider: owns a TextGenerator and its lifecycle
//
// # Implementation Packages
//
//   - ai/openai: production implementation over OpenAI-compatible chat APIs
//     (OpenRouter by default) using langchaingo
//   - ai/mock: test doubles with call counts and injectable behavior
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewGenerator) return
// INTERFACE types. Test utility constructors (mock.NewMockGenerator) return
// CONCRETE types so tests can inject behavior and assert on call counts.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithAPIKey(os.Getenv("LLM_API_KEY")))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	text, err := provider.TextGenerator().Generate(ctx, "Explain security deposit rules")
package ai
