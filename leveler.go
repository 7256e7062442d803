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

// Package leveler assembles the benchmark store, retrieval index and
// ladder engine into a single Service.
//
// The corpus is read from the store once when the Service opens and is
// never reloaded; records imported afterwards are visible to the next
// Service opened on the same path.
package leveler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/featurize"
	"github.com/poiesic/leveler/ladder"
	"github.com/poiesic/leveler/refine"
	"github.com/poiesic/leveler/refine/openai"
	"github.com/poiesic/leveler/retrieval"
	"github.com/poiesic/leveler/storage"
	"github.com/poiesic/leveler/storage/badger"
)

var (
	// ErrInvalidConfig indicates a Config failed validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrServiceClosed is returned by operations on a closed Service.
	ErrServiceClosed = errors.New("service closed")
)

type Service struct {
	backend *badger.Backend
	repo    *badger.BenchmarkRepository
	corpus  *storage.Corpus
	index   *retrieval.Index
	engine  *ladder.Engine
	config  *Config
	logger  *slog.Logger
}

// Open opens the benchmark store at path, loads the corpus and builds the
// index and engine. A nil cfg uses DefaultConfig.
func Open(ctx context.Context, path string, cfg *Config) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default().With("component", "leveler")

	backend, err := badger.OpenBackend(path, cfg.InMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewBenchmarkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	svc := &Service{
		backend: backend,
		repo:    repo,
		config:  cfg,
		logger:  logger,
	}
	if err := svc.build(ctx); err != nil {
		svc.Close()
		return nil, err
	}
	return svc, nil
}

func (s *Service) build(ctx context.Context) error {
	corpus, err := storage.LoadCorpus(ctx, s.repo)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	if corpus.Len() == 0 {
		s.logger.Warn("benchmark corpus is empty; every ladder will use the fallback level")
	}

	featurizer, err := featurize.NewHashing(s.config.Dimensions)
	if err != nil {
		return err
	}

	strategy, err := retrieval.ParseStrategy(string(s.config.Strategy))
	if err != nil {
		return err
	}
	index, err := retrieval.NewIndex(ctx, corpus, featurizer,
		retrieval.WithStrategy(strategy),
		retrieval.WithInvertedThreshold(s.config.InvertedThreshold),
		retrieval.WithPoolSize(s.config.PoolSize),
	)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}

	var opts []ladder.Option
	refiner, err := s.refiner()
	if err != nil {
		return err
	}
	if refiner != nil {
		opts = append(opts, ladder.WithRefiner(refiner))
	}
	engine, err := ladder.NewEngine(index, opts...)
	if err != nil {
		return err
	}

	s.corpus = corpus
	s.index = index
	s.engine = engine
	s.logger.Info("service ready",
		"records", corpus.Len(),
		"strategy", index.Strategy(),
		"refinement", refiner != nil)
	return nil
}

// refiner composes the configured post-processors. The policy suffix runs
// before the model so the model sees the full summary.
func (s *Service) refiner() (refine.Refiner, error) {
	var chain refine.Chain
	if policy := refine.FromCredentials(s.config.RefinePolicy); policy != nil {
		chain = append(chain, policy)
	}
	if s.config.LLM != nil {
		llm, err := openai.NewRefiner(s.config.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create refiner: %w", err)
		}
		chain = append(chain, llm)
	}

	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return chain[0], nil
	default:
		return chain, nil
	}
}

// Generate builds a ladder for q. The query is not validated here.
func (s *Service) Generate(ctx context.Context, q *core.Query) (*core.Result, error) {
	return s.GenerateWithMonitor(ctx, q, nil)
}

// GenerateWithMonitor builds a ladder for q, reporting each stage to monitor.
func (s *Service) GenerateWithMonitor(ctx context.Context, q *core.Query, monitor ladder.Monitor) (*core.Result, error) {
	if s.backend.IsClosed() {
		return nil, ErrServiceClosed
	}
	return s.engine.GenerateWithMonitor(ctx, q, monitor)
}

// Corpus returns the corpus loaded at open.
func (s *Service) Corpus() *storage.Corpus {
	return s.corpus
}

// Strategy reports the retrieval backend in use.
func (s *Service) Strategy() retrieval.Strategy {
	return s.index.Strategy()
}

func (s *Service) Repository() storage.BenchmarkRepository {
	return s.repo
}

func (s *Service) Close() error {
	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing benchmark repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// importChunkSize is how many records Import hands the repository at once.
const importChunkSize = 500

// Import decodes a JSON benchmark dataset from r and stores it at path.
// The store must not be open elsewhere. Records already present keep
// their position. Rows identical in every field are stored once. Progress is written to progress when it is
// non-nil. It returns the number of distinct records stored.
func Import(ctx context.Context, path string, r io.Reader, progress io.Writer) (int, error) {
	decoded, err := storage.DecodeBenchmarks(r)
	if err != nil {
		return 0, err
	}
	records := distinctRecords(decoded)
	if dropped := len(decoded) - len(records); dropped > 0 {
		slog.Default().With("component", "leveler-import").Warn("skipping duplicate rows",
			"rows", len(decoded), "duplicates", dropped)
	}

	backend, err := badger.OpenBackend(path, false)
	if err != nil {
		return 0, err
	}
	defer backend.Close()

	repo, err := badger.NewBenchmarkRepository(backend)
	if err != nil {
		return 0, err
	}
	defer repo.Close()

	var tracker *progressTracker
	if progress != nil {
		tracker = newProgressTracker(progress, len(records), importChunkSize)
	}

	stored := 0
	for start := 0; start < len(records); start += importChunkSize {
		end := min(start+importChunkSize, len(records))
		added, err := repo.AddBenchmarks(ctx, records[start:end]...)
		if err != nil {
			return stored, err
		}
		stored += len(added)
		tracker.Add(len(added))
	}
	tracker.Finish()
	return stored, nil
}

// distinctRecords keeps the first row for each record ID.
func distinctRecords(records []*core.BenchmarkRecord) []*core.BenchmarkRecord {
	seen := make(map[core.ID]struct{}, len(records))
	distinct := make([]*core.BenchmarkRecord, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.Id]; ok {
			continue
		}
		seen[record.Id] = struct{}{}
		distinct = append(distinct, record)
	}
	return distinct
}
