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


// Package retrieval composes similarity search, borehole classification
// and priority resolution into the end-to-end query operation.
//
// Each Retrieve call is a pure function of the current index snapshot
// and the query vector: search ranks the top-K chunks, every hit is
// classified by borehole identity, the resolver keeps only the
// highest-priority borehole, and each surviving chunk is annotated with
// provenance (well name, filename, offsets) so a downstream answer
// generator can cite its sources. A result that is empty because
// nothing was ever ingested is reported distinctly from one that was
// filtered down to zero.
package retrieval
