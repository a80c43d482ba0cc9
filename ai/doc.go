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


// Package ai abstracts the embedding provider the retrieval core
// consumes.
//
// The core treats embedding vectors as opaque fixed-length numeric
// arrays of a configured dimensionality; how they are produced is
// entirely behind the Embedder interface. Two implementations ship
// with the module:
//
//   - ai/openai: production implementation for OpenAI-compatible
//     embedding APIs (Ollama, LocalAI, vLLM, OpenAI itself)
//   - ai/mock: deterministic test double with no external dependency
//
// Public constructors in the implementation packages return the
// ai.Embedder interface so callers never couple to a concrete
// provider; the mock constructor returns its concrete type to allow
// behavior injection in tests.
package ai
