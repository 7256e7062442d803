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

package main

import (
	"fmt"
	"io"

	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/ladder"
)

// traceTopN bounds how many ranked peers the trace prints.
const traceTopN = 10

// traceMonitor prints each generation stage for --explain.
type traceMonitor struct {
	w io.Writer
}

var _ ladder.Monitor = (*traceMonitor)(nil)

func newTraceMonitor(w io.Writer) *traceMonitor {
	return &traceMonitor{w: w}
}

func (m *traceMonitor) Start(q *core.Query) {
	fmt.Fprintf(m.w, "Query: %s\n\n", q.ComparisonText())
}

func (m *traceMonitor) AfterRetrieval(scores []float64) {
	nonZero := 0
	for _, s := range scores {
		if s != 0 {
			nonZero++
		}
	}
	fmt.Fprintf(m.w, "Retrieval: %d records scored, %d with term overlap\n", len(scores), nonZero)
}

func (m *traceMonitor) AfterScoring(ranked []core.ScoredPeer) {
	fmt.Fprintf(m.w, "Ranking (top %d of %d):\n", min(traceTopN, len(ranked)), len(ranked))
	for i, peer := range ranked[:min(traceTopN, len(ranked))] {
		fmt.Fprintf(m.w, "  %2d. #%-3d %-20s %-6s sim=%.3f ret=%.3f  %s\n",
			i+1, peer.Position, peer.Record.Company, peer.Record.LevelCode, peer.Similarity, peer.Retrieval, peer.Record.Title)
	}
}

func (m *traceMonitor) AfterSelection(selected []core.ScoredPeer, filtered bool) {
	if filtered {
		fmt.Fprintf(m.w, "Selected %d peers (comparator allow-list applied)\n", len(selected))
	} else {
		fmt.Fprintf(m.w, "Selected %d peers\n", len(selected))
	}
}

func (m *traceMonitor) Finish(result *core.Result) {
	fmt.Fprintf(m.w, "Levels: %d  confidence=%.3f  similarity=%.3f  coverage=%.3f\n\n",
		len(result.Levels), result.BenchmarkConfidence, result.SimilarityScore, result.DataCoverage)
}
