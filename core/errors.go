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

// Structural errors. These indicate programming errors from the caller
// and are surfaced immediately, never retried.
var (
	// ErrDuplicateWell indicates a well name is already present (case-insensitive).
	ErrDuplicateWell = errors.New("duplicate well name")

	// ErrUnknownWell indicates the referenced well does not exist.
	ErrUnknownWell = errors.New("unknown well")

	// ErrUnknownDocument indicates the referenced document does not exist.
	ErrUnknownDocument = errors.New("unknown document")

	// ErrDimensionMismatch indicates a vector's length disagrees with the
	// index's configured embedding dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Domain validation errors
var (
	// ErrInvalidChunk indicates a chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrEmptyWellName indicates a well name is empty.
	ErrEmptyWellName = errors.New("well name cannot be empty")

	// ErrEmptyFilename indicates a document filename is empty.
	ErrEmptyFilename = errors.New("filename cannot be empty")

	// ErrEmptyText indicates a chunk's text is empty.
	ErrEmptyText = errors.New("chunk text cannot be empty")

	// ErrEmptyVector indicates a chunk's embedding vector is empty.
	ErrEmptyVector = errors.New("embedding vector cannot be empty")

	// ErrInvalidModality indicates an invalid Modality value.
	ErrInvalidModality = errors.New("invalid modality")

	// ErrInvalidOffsets indicates an offset range with End before Start.
	ErrInvalidOffsets = errors.New("invalid offset range")
)
