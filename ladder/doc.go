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

// Package ladder turns a leveling query into a benchmark-backed job ladder.
//
// The Engine runs a fixed pipeline over an immutable retrieval index:
//   - every corpus record is scored for lexical retrieval
//   - each score is blended with categorical attribute matches (ScorePeer)
//   - the top peers are selected, optionally narrowed by an allow-list
//   - one LevelEntry is synthesized per selected peer, up to MaxLevels
//   - confidence, coverage, insights and provenance are aggregated
//
// Generation is deterministic: identical queries over the same index yield
// identical results. An optional refine.Refiner may append to the executive
// summary after the core result is built.
package ladder
