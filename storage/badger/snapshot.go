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
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/wikiscope/core"
	"github.com/poiesic/wikiscope/storage"
)

// SnapshotRepository implements storage.SnapshotRepository for BadgerDB.
type SnapshotRepository struct {
	backend *Backend
}

var _ storage.SnapshotRepository = (*SnapshotRepository)(nil)

// NewSnapshotRepository creates a new SnapshotRepository.
func NewSnapshotRepository(backend *Backend) *SnapshotRepository {
	return &SnapshotRepository{
		backend: backend,
	}
}

// SaveSnapshot replaces the stored snapshot.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot *core.AnalysisSnapshot) error {
	value, err := storage.MarshalSnapshot(snapshot)
	if err != nil {
		return err
	}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(latestSnapshotKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// LoadSnapshot retrieves the stored snapshot.
// Returns nil, nil if no snapshot exists or it cannot be decoded.
func (r *SnapshotRepository) LoadSnapshot(ctx context.Context) (*core.AnalysisSnapshot, error) {
	var snapshot *core.AnalysisSnapshot
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(latestSnapshotKey))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}

		return item.Value(func(val []byte) error {
			var unmarshalErr error
			snapshot, unmarshalErr = storage.UnmarshalSnapshot(val)
			if unmarshalErr != nil {
				r.backend.logger.Warn("ignoring unreadable snapshot", "err", unmarshalErr)
				snapshot = nil
			}
			return nil
		})
	}, false)

	return snapshot, err
}
