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

// Package refine post-processes a generated ladder's executive summary.
//
// A Refiner never rewrites the summary it is given. It returns text to be
// appended, which keeps every number and phrase produced by the ladder
// engine intact. The engine applies a Refiner only when one is injected.
package refine

import (
	"context"
	"errors"
	"strings"
)

// Refiner produces text to append to an executive summary.
// Implementations must be safe for concurrent use.
type Refiner interface {
	// Refine returns the suffix to append to summary, including any
	// leading separator. An empty string leaves the summary unchanged.
	// A non-nil error may come with a partial suffix that callers still
	// append.
	Refine(ctx context.Context, summary string) (string, error)
}

// PolicySuffix is appended by Policy.
const PolicySuffix = " AI refinement active via configured LLM policy controls."

// Policy appends a fixed notice that LLM refinement is enabled.
type Policy struct{}

var _ Refiner = Policy{}

// Refine implements Refiner.
func (Policy) Refine(_ context.Context, _ string) (string, error) {
	return PolicySuffix, nil
}

// Chain runs refiners in order. Each sees the summary with the previous
// suffixes applied. A failing refiner contributes nothing; the others
// still run, and their suffixes are returned with the joined errors.
type Chain []Refiner

var _ Refiner = Chain(nil)

// Refine implements Refiner.
func (c Chain) Refine(ctx context.Context, summary string) (string, error) {
	var suffix strings.Builder
	var errs []error
	for _, r := range c {
		if r == nil {
			continue
		}
		s, err := r.Refine(ctx, summary+suffix.String())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		suffix.WriteString(s)
	}
	return suffix.String(), errors.Join(errs...)
}

// FromCredentials returns the Policy refiner when an LLM provider credential
// is configured, and nil otherwise. Callers resolve credential presence at
// the process boundary and pass the result in.
func FromCredentials(hasCredential bool) Refiner {
	if !hasCredential {
		return nil
	}
	return Policy{}
}
