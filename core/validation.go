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

// ValidateRightsEntry validates a RightsEntry according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//
// NOT validated:
//   - ID (0 is replaced by a content-based ID on import)
//   - Summary, Tags, DetailedContent (all optional for matching)
func ValidateRightsEntry(entry *RightsEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: rights entry is nil", ErrInvalidEntry)
	}

	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTitle)
	}

	return nil
}

// ValidateTemplateEntry validates a TemplateEntry according to domain rules.
//
// Validation rules:
//   - Title must not be blank
//   - Price must not be negative
func ValidateTemplateEntry(entry *TemplateEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: template entry is nil", ErrInvalidEntry)
	}

	if strings.TrimSpace(entry.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrEmptyTitle)
	}

	if entry.Price < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, ErrNegativePrice)
	}

	return nil
}

// ValidateKind validates that a Kind has a known value.
func ValidateKind(kind Kind) error {
	if kind != KindRights && kind != KindTemplate {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return nil
}

// ParseKind converts user input ("rights", "template", "templates") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rights", "right":
		return KindRights, nil
	case "template", "templates":
		return KindTemplate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
}
