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

package featurize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// DefaultDimensions is the vector length used when none is configured.
const DefaultDimensions = 2048

// minTokenRunes drops single-character tokens, matching word-pattern
// tokenizers that require two or more word characters.
const minTokenRunes = 2

// Hashing is a term-frequency featurizer that hashes tokens into buckets.
type Hashing struct {
	dims int
}

var _ Featurizer = (*Hashing)(nil)

// NewHashing creates a hashing featurizer with the given number of buckets.
func NewHashing(dims int) (*Hashing, error) {
	if dims <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Hashing{dims: dims}, nil
}

// Dimensions returns the number of hash buckets.
func (h *Hashing) Dimensions() int {
	return h.dims
}

// Featurize counts token occurrences per bucket and L2-normalizes the counts.
func (h *Hashing) Featurize(text string) ([]float32, error) {
	vector := make([]float32, h.dims)
	for _, token := range Tokenize(text) {
		bucket := xxhash.Sum64String(token) % uint64(h.dims)
		vector[bucket]++
	}
	NormalizeInPlace(vector)
	return vector, nil
}

// Tokenize splits text into case-folded word tokens of at least two runes.
// Word characters are letters, digits and underscore.
func Tokenize(text string) []string {
	// cases.Caser is stateful, so one is created per call.
	folded := cases.Fold().String(norm.NFKC.String(text))

	fields := strings.FieldsFunc(folded, func(r rune) bool {
		return !isWordRune(r)
	})

	tokens := fields[:0]
	for _, field := range fields {
		if utf8.RuneCountInString(field) >= minTokenRunes {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
