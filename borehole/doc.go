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


// Package borehole classifies retrieved chunks by borehole identity and
// collapses scored result sets down to the single authoritative borehole.
//
// A well may be re-drilled several times; each re-drill (sidetrack) is
// numbered chronologically and supersedes the holes before it, so a
// report about Sidetrack 2 is the current truth even when Main Hole
// documents score higher. The classifier infers borehole identity from
// filename and chunk text alone, the resolver keeps only the
// highest-priority borehole present in a result set.
//
// Classification is a pure function of its inputs: the same
// (filename, text) pair always yields the same tag, and ambiguous
// chunks mentioning several sidetracks resolve to the leftmost marker.
package borehole
