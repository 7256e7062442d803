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
	"fmt"
	"strings"

	"github.com/poiesic/leveler/featurize"
)

// Strategy names a Ranker backend.
type Strategy string

const (
	// StrategyAuto picks BruteForce below the inverted threshold and Inverted at or above it.
	StrategyAuto Strategy = "auto"
	// StrategyBruteForce always uses BruteForce.
	StrategyBruteForce Strategy = "brute"
	// StrategyInverted always uses Inverted.
	StrategyInverted Strategy = "inverted"
)

// DefaultInvertedThreshold is the corpus size at which StrategyAuto switches to Inverted.
const DefaultInvertedThreshold = 512

// ParseStrategy converts a case-insensitive name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(strings.ToLower(strings.TrimSpace(name))); s {
	case StrategyAuto, StrategyBruteForce, StrategyInverted:
		return s, nil
	case "":
		return StrategyAuto, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Ranker scores a query vector against a fixed set of record vectors.
// Implementations must be safe for concurrent use.
type Ranker interface {
	// Rank returns one score per record, aligned with record order.
	Rank(query []float32) []float64

	// Strategy identifies the backend.
	Strategy() Strategy
}

// BruteForce scores by dense dot product against every record vector.
type BruteForce struct {
	vectors [][]float32
}

var _ Ranker = (*BruteForce)(nil)

// NewBruteForce creates a brute-force ranker over vectors. The slice is retained, not copied.
func NewBruteForce(vectors [][]float32) *BruteForce {
	return &BruteForce{vectors: vectors}
}

// Rank implements Ranker.
func (b *BruteForce) Rank(query []float32) []float64 {
	scores := make([]float64, len(b.vectors))
	for i, vector := range b.vectors {
		scores[i] = featurize.Dot(query, vector)
	}
	return scores
}

// Strategy implements Ranker.
func (b *BruteForce) Strategy() Strategy {
	return StrategyBruteForce
}

type posting struct {
	record int32
	weight float32
}

// Inverted scores through per-dimension posting lists of non-zero weights.
type Inverted struct {
	postings [][]posting
	records  int
}

var _ Ranker = (*Inverted)(nil)

// NewInverted builds posting lists for vectors of the given dimensionality.
func NewInverted(vectors [][]float32, dims int) *Inverted {
	postings := make([][]posting, dims)
	for record, vector := range vectors {
		for dim, weight := range vector[:min(len(vector), dims)] {
			if weight != 0 {
				postings[dim] = append(postings[dim], posting{record: int32(record), weight: weight})
			}
		}
	}
	return &Inverted{postings: postings, records: len(vectors)}
}

// Rank implements Ranker.
// Dimensions are visited in ascending order so each record's sum is
// accumulated in the same order as featurize.Dot.
func (iv *Inverted) Rank(query []float32) []float64 {
	scores := make([]float64, iv.records)
	for dim, q := range query[:min(len(query), len(iv.postings))] {
		if q == 0 {
			continue
		}
		for _, p := range iv.postings[dim] {
			scores[p.record] += float64(float64(q) * float64(p.weight))
		}
	}
	return scores
}

// Strategy implements Ranker.
func (iv *Inverted) Strategy() Strategy {
	return StrategyInverted
}
