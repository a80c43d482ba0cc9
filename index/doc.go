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


// Package index holds the hierarchical Well -> Document -> Chunk structure
// that backs similarity search.
//
// The index is append-only and read-mostly. Concurrent reads never block
// each other; insertion is serialized. Iteration via AllChunks works on a
// snapshot of the entry list, so long-running scans are never invalidated
// by concurrent ingestion. Chunk insertion order is stable and is the
// deterministic tie-break key for equal similarity scores.
package index
