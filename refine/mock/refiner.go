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

// Package mock provides a test double for refine.Refiner.
package mock

import (
	"context"
	"sync"

	"github.com/poiesic/leveler/refine"
)

// MockRefiner is a test double for refine.Refiner.
// It allows custom behavior injection via function fields.
type MockRefiner struct {
	// RefineFunc is called by Refine if set.
	// If nil, Refine returns Suffix.
	RefineFunc func(ctx context.Context, summary string) (string, error)

	// Suffix is returned by the default behavior.
	Suffix string

	mu        sync.Mutex
	summaries []string
}

var _ refine.Refiner = (*MockRefiner)(nil)

// NewMockRefiner creates a mock refiner that appends suffix.
func NewMockRefiner(suffix string) *MockRefiner {
	return &MockRefiner{Suffix: suffix}
}

// Refine records summary and returns the configured suffix.
func (m *MockRefiner) Refine(ctx context.Context, summary string) (string, error) {
	m.mu.Lock()
	m.summaries = append(m.summaries, summary)
	m.mu.Unlock()

	if m.RefineFunc != nil {
		return m.RefineFunc(ctx, summary)
	}
	return m.Suffix, nil
}

// CallCount returns the number of times Refine was called.
func (m *MockRefiner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.summaries)
}

// Summaries returns every summary passed to Refine, in call order.
func (m *MockRefiner) Summaries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.summaries...)
}
