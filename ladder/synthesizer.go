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
	"slices"
	"strconv"

	"github.com/poiesic/leveler/core"
)

// MaxLevels caps the number of synthesized ladder entries. A fifth selected
// peer still counts toward confidence and provenance.
const MaxLevels = 4

var supplementalCompetencies = []string{
	"Benchmark interpretation",
	"Data-informed role calibration",
}

// BuildLevels synthesizes one LevelEntry per selected peer, up to MaxLevels.
// With no peers it returns the single fallback level.
func BuildLevels(q *core.Query, selected []core.ScoredPeer, stage StageProfile) []core.LevelEntry {
	if len(selected) == 0 {
		return []core.LevelEntry{fallbackLevel(q)}
	}

	levels := make([]core.LevelEntry, 0, min(MaxLevels, len(selected)))
	for i, peer := range selected[:min(MaxLevels, len(selected))] {
		levels = append(levels, buildLevel(q, i, peer, stage))
	}
	return levels
}

func buildLevel(q *core.Query, i int, peer core.ScoredPeer, stage StageProfile) core.LevelEntry {
	record := peer.Record
	order := i + 1

	levelCode := record.LevelCode
	if levelCode == "" {
		levelCode = "L" + strconv.Itoa(order)
	}

	// Overrides are keyed by the peer's own code, not the synthesized one.
	title := q.JobArchitecture.CustomLevelNaming[record.LevelCode]
	if title == "" {
		title = record.Title
	}

	function := q.FunctionRole.Function
	return core.LevelEntry{
		LevelOrder:         order,
		LevelCode:          levelCode,
		MarketAlignedTitle: title,
		RoleScopeVsMedian: fmt.Sprintf("%s. Stage-adjusted for %s: %s.",
			record.Scope, q.BusinessContext.GrowthStage, stage.Note),
		Responsibilities: []string{
			fmt.Sprintf("Deliver scope expected at %s with measurable output quality", levelCode),
			fmt.Sprintf("Coordinate cross-functional partners for %s outcomes", function),
			"Own execution rhythm and risk management across quarterly plans",
		},
		FunctionalCompetencies: append(slices.Clone(record.Competencies), supplementalCompetencies...),
		LeadershipBehavioralSkills: []string{
			"Structured decision-making",
			"Stakeholder influence",
			"Coaching and feedback",
		},
		BusinessImpact: fmt.Sprintf("Impacts %s KPIs at ~%dth percentile vs peer median.",
			function, Percentile(peer.Similarity)),
		DecisionAuthority: "Autonomous within defined guardrails; escalates cross-org trade-offs.",
		TechnologyTools:   nonNil(slices.Clone(record.Tools)),
		PromotionBenchmarks: []string{
			"Consistent top-quartile performance for 2+ review cycles",
			"Demonstrated readiness in next-level competencies",
			"Evidence of org-level impact beyond direct scope",
		},
		ExperienceRangeYears:        record.Experience,
		InternalExternalCompetitive: "Externally competitive at median-plus for high-demand markets.",
		DeviationNotes:              "Current proposal leans +1 scope dimension in systems ownership compared to peer median.",
		RiskFlags: []string{
			"Potential over-leveling if span-of-control remains low",
			"Compression risk between adjacent levels if promotion criteria are not enforced",
		},
	}
}

// Percentile estimates a peer-relative percentile from composite similarity.
// Similarity in [0,1] maps to [50,100].
func Percentile(similarity float64) int {
	return int(math.Round(50 + similarity*50))
}

func fallbackLevel(q *core.Query) core.LevelEntry {
	return core.LevelEntry{
		LevelOrder:                  1,
		LevelCode:                   "L1",
		MarketAlignedTitle:          q.FunctionRole.RoleFamily,
		RoleScopeVsMedian:           "Baseline scope aligned with target market.",
		Responsibilities:            []string{"Execute core role outcomes"},
		FunctionalCompetencies:      []string{"Role fundamentals"},
		LeadershipBehavioralSkills:  []string{"Collaboration"},
		BusinessImpact:              "Baseline impact on function metrics.",
		DecisionAuthority:           "Guided autonomy.",
		TechnologyTools:             []string{"Role-specific toolkit"},
		PromotionBenchmarks:         []string{"Sustained high performance"},
		ExperienceRangeYears:        "2-4 years",
		InternalExternalCompetitive: "Market aligned",
		DeviationNotes:              "Limited data coverage.",
		RiskFlags:                   []string{"Low confidence due to sparse benchmarks"},
	}
}

func nonNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
