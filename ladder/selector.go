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
	"cmp"
	"slices"
	"strings"

	"github.com/poiesic/leveler/core"
)

// MaxPeers is the number of top-ranked peers considered for a ladder.
const MaxPeers = 5

// RankPeers sorts peers by descending composite similarity. The sort is
// stable, so ties keep corpus order.
func RankPeers(peers []core.ScoredPeer) {
	slices.SortStableFunc(peers, func(a, b core.ScoredPeer) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})
}

// SelectPeers takes the top MaxPeers of already-ranked peers and, when
// allowList is non-empty, keeps only those whose company is on it
// (case-insensitive). The allow-list is advisory: if it removes every peer
// the unfiltered top list is returned. Filtering happens after truncation,
// so an allowed company ranked below MaxPeers is never surfaced.
//
// The returned slice is a copy; filtered reports whether the allow-list
// narrowed the selection.
func SelectPeers(ranked []core.ScoredPeer, allowList []string) (selected []core.ScoredPeer, filtered bool) {
	top := slices.Clone(ranked[:min(MaxPeers, len(ranked))])
	if len(allowList) == 0 {
		return top, false
	}

	allowed := make(map[string]struct{}, len(allowList))
	for _, company := range allowList {
		allowed[strings.ToLower(company)] = struct{}{}
	}

	matches := make([]core.ScoredPeer, 0, len(top))
	for _, peer := range top {
		if _, ok := allowed[strings.ToLower(peer.Record.Company)]; ok {
			matches = append(matches, peer)
		}
	}
	if len(matches) == 0 {
		return top, false
	}
	return matches, true
}
