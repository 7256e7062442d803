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

import "github.com/poiesic/leveler/core"

// Monitor provides hooks to observe ladder generation.
// Implement this interface to trace intermediate rankings.
// Hooks receive engine-owned data and must not modify it.
type Monitor interface {
	Start(query *core.Query)
	AfterRetrieval(scores []float64)
	AfterScoring(ranked []core.ScoredPeer)
	AfterSelection(selected []core.ScoredPeer, filtered bool)
	Finish(result *core.Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Query)                        {}
func (n *noopMonitor) AfterRetrieval(_ []float64)                 {}
func (n *noopMonitor) AfterScoring(_ []core.ScoredPeer)           {}
func (n *noopMonitor) AfterSelection(_ []core.ScoredPeer, _ bool) {}
func (n *noopMonitor) Finish(_ *core.Result)                      {}
