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

import "github.com/poiesic/wikiscope/storage"

// NewMemoryRepositories creates in-memory history and snapshot repositories for testing.
// Returns historyRepo, snapshotRepo, backend, and error.
// Caller must close the backend when done.
func NewMemoryRepositories() (storage.HistoryRepository, storage.SnapshotRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}
	return NewHistoryRepository(backend), NewSnapshotRepository(backend), backend, nil
}
