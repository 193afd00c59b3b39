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

// Package storage provides the storage abstraction layer for rightsdesk.
//
// This package defines repository interfaces that decouple storage implementation
// from business logic. Search only depends on ContentProvider, so any source of
// rights and template collections (a database, a YAML catalog held in memory,
// a test fixture) can feed it.
//
// # Constructor Return Type Pattern
//
// Public factories in the rightsdesk package return the interfaces defined here.
// Internal package constructors (badger.NewContentRepository and friends) return
// concrete types since they're only used to assemble those factories.
//
// # Architecture
//
//   - ContentProvider: read-only access to the full rights and template collections
//   - ContentRepository: catalog maintenance (add, replace, delete)
//   - LibraryRepository: saved items
//   - UnlockRepository: premium template receipts
//   - ProgressRepository: scenario checklist state
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repos.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context. Pass context.Background()
// for operations without specific timeout requirements.
package storage
