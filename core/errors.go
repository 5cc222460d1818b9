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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidFieldSet indicates a FieldSet failed validation.
	ErrInvalidFieldSet = errors.New("invalid field set")

	// ErrInvalidHistoryEntry indicates a HistoryEntry failed validation.
	ErrInvalidHistoryEntry = errors.New("invalid history entry")

	// ErrNegativeFileSize indicates a negative file size bound.
	ErrNegativeFileSize = errors.New("file size cannot be negative")

	// ErrFileSizeRange indicates the minimum file size exceeds the maximum.
	ErrFileSizeRange = errors.New("minimum file size exceeds maximum")

	// ErrDateRange indicates the lower date bound is after the upper one.
	ErrDateRange = errors.New("date after is later than date before")

	// ErrInvalidNamespace indicates a negative namespace id.
	ErrInvalidNamespace = errors.New("invalid namespace")

	// ErrUnknownFileType indicates a file type tag outside the known set.
	ErrUnknownFileType = errors.New("unknown file type")

	// ErrEmptyName indicates the history entry Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyURL indicates the history entry PrimaryURL field is empty.
	ErrEmptyURL = errors.New("primary url cannot be empty")
)
