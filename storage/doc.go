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

// Package storage provides the storage abstraction layer for wikiscope.
//
// This package defines repository interfaces that decouple persistence from
// the query and analysis code, plus the binary encodings shared by backends.
//
// # Architecture
//
//   - HistoryRepository: past queries with favorites, rename and a bounded size
//   - SnapshotRepository: the single most recent analysis snapshot
//
// # History bounds
//
// At most MaxHistoryEntries non-favorite entries are kept. Adding an entry
// beyond that drops the oldest non-favorite one. Favorites are never
// dropped by the bound; only DeleteEntry and ClearEntries remove them.
// Entries are keyed by a hash of their primary URL, so recording the same
// search twice refreshes the existing entry instead of adding a second one.
//
// # Encoding
//
// History entries are encoded with mus-go in a versioned, length-prefixed
// layout. The query field set inside an entry is stored in its URL query
// form, the same form used to reload a query into the CLI. Snapshots are
// stored as JSON, byte-identical to the export format.
//
// # Corruption
//
// Reads never fail because of one bad record. Unreadable history entries
// are logged and skipped; an unreadable snapshot reads as absent.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	history := badger.NewHistoryRepository(backend)
//	entry, err := history.AddEntry(ctx, core.NewHistoryEntry(name, url, "de", fields, time.Now()))
package storage
