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

package storage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/wikiscope/core"
)

// historyEntryVersion prefixes every encoded history entry.
const historyEntryVersion uint64 = 1

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalHistoryEntry serializes a HistoryEntry to bytes. The field set is
// stored in its URL query form.
func MarshalHistoryEntry(entry *core.HistoryEntry) []byte {
	state := entry.State.Values().Encode()
	ts := entry.Timestamp.UnixMicro()

	size := varint.Uint64.Size(historyEntryVersion) +
		varint.Uint64.Size(uint64(entry.ID)) +
		ord.String.Size(entry.Name) +
		ord.String.Size(entry.PrimaryURL) +
		ord.String.Size(state) +
		ord.String.Size(entry.Lang) +
		varint.Int64.Size(ts) +
		ord.Bool.Size(entry.Favorite)

	buf := make([]byte, size)
	n := varint.Uint64.Marshal(historyEntryVersion, buf)
	n += varint.Uint64.Marshal(uint64(entry.ID), buf[n:])
	n += ord.String.Marshal(entry.Name, buf[n:])
	n += ord.String.Marshal(entry.PrimaryURL, buf[n:])
	n += ord.String.Marshal(state, buf[n:])
	n += ord.String.Marshal(entry.Lang, buf[n:])
	n += varint.Int64.Marshal(ts, buf[n:])
	ord.Bool.Marshal(entry.Favorite, buf[n:])
	return buf
}

// UnmarshalHistoryEntry deserializes a HistoryEntry from bytes.
func UnmarshalHistoryEntry(data []byte) (*core.HistoryEntry, error) {
	var (
		entry core.HistoryEntry
		off   int
	)
	fail := func(field string, err error) (*core.HistoryEntry, error) {
		return nil, fmt.Errorf("%w: history entry %s: %w", ErrSerializationFailed, field, err)
	}

	if len(data) == 0 {
		return fail("version", ErrTruncatedData)
	}
	version, n, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return fail("version", err)
	}
	if version != historyEntryVersion {
		return fail("version", fmt.Errorf("%w: %d", ErrUnsupportedVersion, version))
	}
	off += n

	id, n, err := varint.Uint64.Unmarshal(data[off:])
	if err != nil {
		return fail("id", err)
	}
	entry.ID = core.ID(id)
	off += n

	if entry.Name, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return fail("name", err)
	}
	off += n
	if entry.PrimaryURL, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return fail("url", err)
	}
	off += n

	state, n, err := ord.String.Unmarshal(data[off:])
	if err != nil {
		return fail("state", err)
	}
	off += n
	values, err := url.ParseQuery(state)
	if err != nil {
		return fail("state", err)
	}
	if entry.State, err = core.ParseFieldSet(values); err != nil {
		return fail("state", err)
	}

	if entry.Lang, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return fail("lang", err)
	}
	off += n

	ts, n, err := varint.Int64.Unmarshal(data[off:])
	if err != nil {
		return fail("timestamp", err)
	}
	entry.Timestamp = time.UnixMicro(ts).UTC()
	off += n

	if entry.Favorite, n, err = ord.Bool.Unmarshal(data[off:]); err != nil {
		return fail("favorite", err)
	}
	off += n

	if off != len(data) {
		return fail("length", fmt.Errorf("%d unexpected trailing bytes", len(data)-off))
	}
	return &entry, nil
}

// MarshalSnapshot serializes an AnalysisSnapshot to bytes.
func MarshalSnapshot(snapshot *core.AnalysisSnapshot) ([]byte, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalSnapshot deserializes an AnalysisSnapshot from bytes.
func UnmarshalSnapshot(data []byte) (*core.AnalysisSnapshot, error) {
	var snapshot core.AnalysisSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &snapshot, nil
}
