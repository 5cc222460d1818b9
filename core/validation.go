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

import (
	"fmt"
	"strings"
)

// ValidateFieldSet validates a FieldSet according to domain rules.
//
// Validation rules:
//   - File size bounds must not be negative
//   - FileSizeMin must not exceed FileSizeMax when both are set
//   - DateAfter must not be later than DateBefore when both are set
//   - Namespace ids must not be negative
//   - File types must be known tags
//
// Compilation never calls this; an invalid FieldSet still compiles.
func ValidateFieldSet(fs *FieldSet) error {
	if fs == nil {
		return fmt.Errorf("%w: field set is nil", ErrInvalidFieldSet)
	}

	if fs.FileSizeMin < 0 || fs.FileSizeMax < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFieldSet, ErrNegativeFileSize)
	}

	if fs.FileSizeMin > 0 && fs.FileSizeMax > 0 && fs.FileSizeMin > fs.FileSizeMax {
		return fmt.Errorf("%w: %w", ErrInvalidFieldSet, ErrFileSizeRange)
	}

	if !fs.DateAfter.IsZero() && !fs.DateBefore.IsZero() && fs.DateAfter.After(fs.DateBefore) {
		return fmt.Errorf("%w: %w", ErrInvalidFieldSet, ErrDateRange)
	}

	for _, ns := range fs.Namespaces {
		if ns < 0 {
			return fmt.Errorf("%w: %w: %d", ErrInvalidFieldSet, ErrInvalidNamespace, ns)
		}
	}

	for _, ft := range fs.FileTypes {
		if !ft.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidFieldSet, ErrUnknownFileType, ft)
		}
	}

	return nil
}

// ValidateHistoryEntry validates a HistoryEntry according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//   - PrimaryURL must not be blank
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if strings.TrimSpace(entry.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyName)
	}

	if strings.TrimSpace(entry.PrimaryURL) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyURL)
	}

	return nil
}
