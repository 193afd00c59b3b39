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

package badger

import "github.com/poiesic/rightsdesk/storage"

// Repositories bundles every repository sharing one backend.
type Repositories struct {
	Content  storage.ContentRepository
	Library  storage.LibraryRepository
	Unlocks  storage.UnlockRepository
	Progress storage.ProgressRepository
	Backend  *Backend
}

// Close closes the repositories and then the backend.
func (r *Repositories) Close() error {
	var firstErr error
	for _, c := range []interface{ Close() error }{r.Progress, r.Unlocks, r.Library, r.Content} {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := r.Backend.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// OpenRepositories opens the backend at path and creates every repository on it.
// Caller must Close the result when done.
func OpenRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	content, err := NewContentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	library, err := NewLibraryRepository(backend)
	if err != nil {
		content.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Content:  content,
		Library:  library,
		Unlocks:  NewUnlockRepository(backend),
		Progress: NewProgressRepository(backend),
		Backend:  backend,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories for testing.
// Caller must Close the result when done.
func NewMemoryRepositories() (*Repositories, error) {
	return OpenRepositories("", true)
}
