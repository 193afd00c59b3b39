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

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/rightsdesk/core"
	"github.com/poiesic/rightsdesk/storage"
)

// ProgressRepository implements storage.ProgressRepository for BadgerDB.
type ProgressRepository struct {
	backend *Backend
}

var _ storage.ProgressRepository = (*ProgressRepository)(nil)

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(backend *Backend) *ProgressRepository {
	return &ProgressRepository{
		backend: backend,
	}
}

// Close releases resources. ProgressRepository has no resources to release.
func (r *ProgressRepository) Close() error {
	return nil
}

// SaveProgress persists checklist progress for a scenario.
func (r *ProgressRepository) SaveProgress(ctx context.Context, progress *core.ChecklistProgress) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		progress.UpdatedAt = time.Now().UTC()
		if err := writeValue(tx, core.ChecklistProgressMUS, makeProgressKey(progress.Scenario), progress); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadProgress retrieves the checklist progress for a scenario.
// Returns nil, nil if no progress exists.
func (r *ProgressRepository) LoadProgress(ctx context.Context, scenario string) (*core.ChecklistProgress, error) {
	var progress *core.ChecklistProgress
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		progress, err = readValue(tx, core.ChecklistProgressMUS, makeProgressKey(scenario))
		return err
	}, false)

	return progress, err
}
