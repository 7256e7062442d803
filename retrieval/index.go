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

package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/leveler/featurize"
	"github.com/poiesic/leveler/storage"
)

// Index holds precomputed vectors for every record of a corpus.
// An Index is immutable after construction and safe for concurrent use.
type Index struct {
	corpus     *storage.Corpus
	featurizer featurize.Featurizer
	ranker     Ranker

	strategy  Strategy
	threshold int
	poolSize  int
	logger    *slog.Logger
}

// Option configures an Index.
type Option func(*Index) error

// WithStrategy selects the ranking backend.
// Default is StrategyAuto.
func WithStrategy(strategy Strategy) Option {
	return func(idx *Index) error {
		parsed, err := ParseStrategy(string(strategy))
		if err != nil {
			return err
		}
		idx.strategy = parsed
		return nil
	}
}

// WithInvertedThreshold sets the corpus size at which StrategyAuto uses Inverted.
// Default is DefaultInvertedThreshold.
func WithInvertedThreshold(records int) Option {
	return func(idx *Index) error {
		if records < 0 {
			records = 0
		}
		idx.threshold = records
		return nil
	}
}

// WithPoolSize sets the worker pool size used to featurize the corpus.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(idx *Index) error {
		if size < 1 {
			size = 1
		}
		idx.poolSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) error {
		if logger == nil {
			logger = slog.Default()
		}
		idx.logger = logger
		return nil
	}
}

// NewIndex featurizes every record in corpus and builds the configured ranker.
func NewIndex(ctx context.Context, corpus *storage.Corpus, featurizer featurize.Featurizer, opts ...Option) (*Index, error) {
	if corpus == nil {
		return nil, ErrCorpusRequired
	}
	if featurizer == nil {
		return nil, ErrFeaturizerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	idx := &Index{
		corpus:     corpus,
		featurizer: featurizer,
		strategy:   StrategyAuto,
		threshold:  DefaultInvertedThreshold,
		poolSize:   poolSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(idx); err != nil {
			return nil, err
		}
	}
	idx.logger = idx.logger.With("component", "retrieval-index")

	start := time.Now()
	vectors, err := idx.featurizeCorpus(ctx)
	if err != nil {
		return nil, err
	}

	switch idx.resolveStrategy() {
	case StrategyInverted:
		idx.ranker = NewInverted(vectors, featurizer.Dimensions())
	default:
		idx.ranker = NewBruteForce(vectors)
	}

	idx.logger.Debug("built index",
		"records", corpus.Len(),
		"dimensions", featurizer.Dimensions(),
		"strategy", idx.ranker.Strategy(),
		"elapsed", time.Since(start))
	return idx, nil
}

func (idx *Index) resolveStrategy() Strategy {
	if idx.strategy != StrategyAuto {
		return idx.strategy
	}
	if idx.corpus.Len() >= idx.threshold {
		return StrategyInverted
	}
	return StrategyBruteForce
}

// featurizeCorpus computes one vector per record on an ants worker pool.
// Each worker writes only its own slot, so no locking is needed for results.
func (idx *Index) featurizeCorpus(ctx context.Context) ([][]float32, error) {
	vectors := make([][]float32, idx.corpus.Len())
	if len(vectors) == 0 {
		return vectors, nil
	}

	pool, err := ants.NewPool(idx.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	dims := idx.featurizer.Dimensions()

	for i := range vectors {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			vector, err := idx.featurizer.Featurize(idx.corpus.Text(i))
			if err == nil && len(vector) != dims {
				err = fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, dims, len(vector))
			}
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("record %d: %w", i, err))
				mu.Unlock()
				return
			}
			vectors[i] = vector
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, submitErr
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		idx.logger.Error("error featurizing corpus", "err", err)
		return nil, err
	}
	return vectors, nil
}

// Score featurizes text and returns one retrieval score per corpus record,
// aligned with corpus order.
func (idx *Index) Score(text string) ([]float64, error) {
	query, err := idx.featurizer.Featurize(text)
	if err != nil {
		return nil, err
	}
	return idx.ScoreVector(query)
}

// ScoreVector scores a precomputed query vector.
func (idx *Index) ScoreVector(query []float32) ([]float64, error) {
	if len(query) != idx.featurizer.Dimensions() {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDimensionMismatch, idx.featurizer.Dimensions(), len(query))
	}
	return idx.ranker.Rank(query), nil
}

// Corpus returns the indexed corpus.
func (idx *Index) Corpus() *storage.Corpus {
	return idx.corpus
}

// Strategy returns the backend actually in use.
func (idx *Index) Strategy() Strategy {
	return idx.ranker.Strategy()
}
