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
	"strings"

	"github.com/poiesic/leveler/core"
)

// Weights is the additive rule table for composite peer similarity.
// Changing any value changes generated output; bump Version when you do.
type Weights struct {
	Version       string
	Industry      float64 // record industry contains query primary industry
	GrowthStage   float64 // exact, case-insensitive
	BusinessModel float64 // exact, case-insensitive
	Function      float64 // exact, case-insensitive
	RoleFamily    float64 // substring in either direction
	Geography     float64 // first query geography token within record geography
	Retrieval     float64 // multiplier on the raw retrieval score
	Cap           float64 // upper bound on the total
}

// DefaultWeights is the production weight table.
var DefaultWeights = Weights{
	Version:       "v1",
	Industry:      0.25,
	GrowthStage:   0.15,
	BusinessModel: 0.10,
	Function:      0.20,
	RoleFamily:    0.20,
	Geography:     0.05,
	Retrieval:     0.05,
	Cap:           1.0,
}

// ScorePeer blends a retrieval score with categorical matches between the
// query and record. The result is capped at w.Cap but has no floor.
func ScorePeer(w Weights, q *core.Query, r *core.BenchmarkRecord, retrieval float64) float64 {
	bc := q.BusinessContext
	fr := q.FunctionRole

	score := 0.0
	if strings.Contains(strings.ToLower(r.Industry), strings.ToLower(bc.IndustryPrimary)) {
		score += w.Industry
	}
	if strings.EqualFold(bc.GrowthStage, r.GrowthStage) {
		score += w.GrowthStage
	}
	if strings.EqualFold(bc.BusinessModel, r.BusinessModel) {
		score += w.BusinessModel
	}
	if strings.EqualFold(fr.Function, r.Function) {
		score += w.Function
	}
	if roleFamilyMatches(fr.RoleFamily, r.RoleFamily) {
		score += w.RoleFamily
	}
	if geographyMatches(bc.MarketGeography, r.Geography) {
		score += w.Geography
	}
	score += retrieval * w.Retrieval
	return min(score, w.Cap)
}

func roleFamilyMatches(query, record string) bool {
	q := strings.ToLower(query)
	r := strings.ToLower(record)
	return strings.Contains(r, q) || strings.Contains(q, r)
}

// geographyMatches reports whether the first whitespace-delimited token of
// the query geography appears in the record geography. A blank query
// geography never matches.
func geographyMatches(query, record string) bool {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(record), strings.ToLower(tokens[0]))
}
