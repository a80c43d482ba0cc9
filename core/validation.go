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

// ValidateWellName validates a well name according to domain rules.
//
// Validation rules:
//   - Name must not be empty or whitespace-only
func ValidateWellName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyWellName
	}
	return nil
}

// ValidateDocumentInput validates the inputs for a new document.
//
// Validation rules:
//   - Filename must not be empty
//   - Modality must be a known value
func ValidateDocumentInput(filename string, modality Modality) error {
	if filename == "" {
		return ErrEmptyFilename
	}
	return ValidateModality(modality)
}

// ValidateChunk validates a chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - Vector must not be empty
//   - Offsets must satisfy Start <= End, both non-negative
//   - Modality must be a known value
//
// NOT validated:
//   - Vector dimensionality (enforced by the index against its configured dimension)
//   - DocumentId and Ordinal (assigned by the index)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if len(chunk.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyVector)
	}

	if chunk.Offsets.Start < 0 || chunk.Offsets.End < chunk.Offsets.Start {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrInvalidOffsets)
	}

	if err := ValidateModality(chunk.Modality); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	return nil
}

// ValidateModality validates that a Modality has a known value.
func ValidateModality(m Modality) error {
	if m != ModalityText && m != ModalityTable && m != ModalityImage {
		return fmt.Errorf("%w: value %d", ErrInvalidModality, m)
	}
	return nil
}

// ParseModality converts a modality name ("text", "table", "image") to a
// Modality value.
func ParseModality(name string) (Modality, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text":
		return ModalityText, nil
	case "table":
		return ModalityTable, nil
	case "image":
		return ModalityImage, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidModality, name)
	}
}
