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

package ladder

import (
	"context"
	"log/slog"

	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/refine"
	"github.com/poiesic/leveler/retrieval"
)

// Engine generates leveling ladders against an immutable retrieval index.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	index   *retrieval.Index
	weights Weights
	refiner refine.Refiner
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithRefiner sets the summary post-processor. A nil refiner disables
// refinement, which is the default.
func WithRefiner(refiner refine.Refiner) Option {
	return func(e *Engine) error {
		e.refiner = refiner
		return nil
	}
}

// WithWeights overrides the peer scoring table.
// Default is DefaultWeights.
func WithWeights(weights Weights) Option {
	return func(e *Engine) error {
		e.weights = weights
		return nil
	}
}

// NewEngine creates a new ladder engine over index.
func NewEngine(index *retrieval.Index, opts ...Option) (*Engine, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}

	e := &Engine{
		index:   index,
		weights: DefaultWeights,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "ladder-engine")

	return e, nil
}

// Generate builds a ladder for q.
func (e *Engine) Generate(ctx context.Context, q *core.Query) (*core.Result, error) {
	return e.GenerateWithMonitor(ctx, q, nil)
}

// GenerateWithMonitor builds a ladder for q, reporting each stage to monitor.
// The query is assumed to be validated by the caller; unknown growth
// stages fall back to the default narrative rather than failing.
func (e *Engine) GenerateWithMonitor(ctx context.Context, q *core.Query, monitor Monitor) (*core.Result, error) {
	if q == nil {
		return nil, ErrQueryRequired
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(q)

	// 1. Retrieval over the whole corpus
	scores, err := e.index.Score(q.ComparisonText())
	if err != nil {
		e.logger.Error("error scoring query", "err", err)
		return nil, err
	}
	monitor.AfterRetrieval(scores)

	// 2. Composite similarity per record, ranked
	corpus := e.index.Corpus()
	peers := make([]core.ScoredPeer, 0, corpus.Len())
	for i, record := range corpus.All() {
		peers = append(peers, core.ScoredPeer{
			Record:     record,
			Position:   i,
			Retrieval:  scores[i],
			Similarity: ScorePeer(e.weights, q, record, scores[i]),
		})
	}
	RankPeers(peers)
	monitor.AfterScoring(peers)

	// 3. Selection
	selected, filtered := SelectPeers(peers, q.ComparatorCompanies)
	monitor.AfterSelection(selected, filtered)

	// 4. Synthesis and aggregation
	stage := LookupStage(q.BusinessContext.GrowthStage)
	levels := BuildLevels(q, selected, stage)
	result := Aggregate(q, selected, levels, stage, corpus.Len())

	// 5. Optional post-processing
	e.refine(ctx, result)

	e.logger.Debug("generated ladder",
		"corpus", corpus.Len(),
		"selected", len(selected),
		"filtered", filtered,
		"levels", len(levels),
		"confidence", result.BenchmarkConfidence)

	monitor.Finish(result)
	return result, nil
}

// refine appends the refiner's suffix to the summary. Refiner failures
// are logged; whatever suffix was produced is still appended.
func (e *Engine) refine(ctx context.Context, result *core.Result) {
	if e.refiner == nil {
		return
	}
	suffix, err := e.refiner.Refine(ctx, result.ExecutiveSummary)
	if err != nil {
		e.logger.Warn("summary refinement failed", "err", err, "partial", suffix != "")
	}
	result.AppendSummary(suffix)
}
