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


// Package search provides brute-force cosine similarity search over the
// hierarchy index.
//
// The scan is linear in corpus size, which is sufficient for the corpus
// sizes this system targets (hundreds to low thousands of chunks per well).
// Scoring is sharded across a worker pool; ranking is fully deterministic:
// strictly descending by score, with equal scores resolved by chunk
// insertion order. Callers depend on the Corpus interface, so an
// approximate-nearest-neighbor index can replace the linear scan without
// changing them.
package search
