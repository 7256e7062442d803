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

package storage

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/poiesic/leveler/core"
)

// Corpus is an immutable, ordered sequence of benchmark records.
// Records returned by its methods are shared and must not be modified.
type Corpus struct {
	records []*core.BenchmarkRecord
}

// NewCorpus validates and copies records into a new Corpus.
// Record order is preserved; it is the tie-break order for ranking.
func NewCorpus(records []*core.BenchmarkRecord) (*Corpus, error) {
	copied := make([]*core.BenchmarkRecord, 0, len(records))
	for i, record := range records {
		if err := core.ValidateBenchmarkRecord(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		clone := *record
		clone.Competencies = slices.Clone(record.Competencies)
		clone.Tools = slices.Clone(record.Tools)
		if clone.Id == 0 {
			clone.Id = core.IDFromContent(clone.Key())
		}
		copied = append(copied, &clone)
	}
	return &Corpus{records: copied}, nil
}

// LoadCorpus reads every record from repo, in insertion order, into a Corpus.
func LoadCorpus(ctx context.Context, repo BenchmarkRepository) (*Corpus, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	records, err := repo.ListBenchmarks(ctx)
	if err != nil {
		return nil, err
	}
	return NewCorpus(records)
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	return len(c.records)
}

// Record returns the record at position i.
func (c *Corpus) Record(i int) *core.BenchmarkRecord {
	return c.records[i]
}

// Text returns the comparison text for the record at position i.
func (c *Corpus) Text(i int) string {
	return c.records[i].ComparisonText()
}

// All iterates over records in corpus order.
func (c *Corpus) All() iter.Seq2[int, *core.BenchmarkRecord] {
	return func(yield func(int, *core.BenchmarkRecord) bool) {
		for i, record := range c.records {
			if !yield(i, record) {
				return
			}
		}
	}
}

// Companies returns the distinct company names in first-seen order.
func (c *Corpus) Companies() []string {
	seen := make(map[string]bool, len(c.records))
	companies := make([]string, 0, len(c.records))
	for _, record := range c.records {
		if seen[record.Company] {
			continue
		}
		seen[record.Company] = true
		companies = append(companies, record.Company)
	}
	return companies
}
