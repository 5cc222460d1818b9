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

package graph

import "errors"

var (
	// ErrCategoryServiceRequired is returned when a category service is not provided.
	ErrCategoryServiceRequired = errors.New("category service required")

	// ErrBuilderRequired is returned when an analyzer is created without a builder.
	ErrBuilderRequired = errors.New("graph builder required")

	// ErrSnapshotRepositoryRequired is returned when an analyzer is created without storage.
	ErrSnapshotRepositoryRequired = errors.New("snapshot repository required")

	// ErrMetadataFetch wraps a failed category batch. The analysis is aborted.
	ErrMetadataFetch = errors.New("metadata fetch failed")

	// ErrSuperseded is returned by a run that a newer run replaced.
	ErrSuperseded = errors.New("analysis superseded by a newer run")
)
