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


// Package storage persists the hierarchy index as a flat, ordered
// record set.
//
// The index itself lives in memory; what gets persisted is one
// ChunkRecord per chunk, carrying the well name, document identity,
// filename, modality, text, embedding vector and offsets. Replaying
// the records in their stored order rebuilds the hierarchy exactly,
// including the insertion ordinals that similarity search uses for
// deterministic tie-breaks.
//
// Constructors in backend packages return the SnapshotRepository
// interface so consumers never couple to a particular store; the
// shipped implementation is BadgerDB (storage/badger), with an
// in-memory mode for tests.
package storage
