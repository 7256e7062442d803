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

// Package retrieval scores a query against every record of a benchmark corpus.
//
// An Index featurizes each corpus record once, in parallel, and keeps the
// vectors for the lifetime of the corpus. Scoring is exhaustive: every call
// returns one cosine similarity per record, aligned with corpus order.
//
// Two interchangeable Ranker backends are provided:
//   - BruteForce computes a dense dot product against every record vector
//   - Inverted walks per-dimension posting lists, touching only the
//     dimensions present in the query
//
// Both accumulate in float64 in ascending dimension order, so they return
// bit-identical scores for the same corpus. The Index selects one by
// Strategy; StrategyAuto switches to the inverted backend once the corpus
// reaches a size threshold.
package retrieval
