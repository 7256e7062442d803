package ladder

import (
	"testing"

	"github.com/poiesic/leveler/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(records []*core.BenchmarkRecord, sims ...float64) []core.ScoredPeer {
	peers := make([]core.ScoredPeer, len(sims))
	for i, sim := range sims {
		peers[i] = core.ScoredPeer{Record: records[i], Position: i, Similarity: sim}
	}
	return peers
}

func TestBuildLevels_CappedAtFour(t *testing.T) {
	q := sampleQuery()
	peers := scored(sampleRecords(), 0.9, 0.8, 0.7, 0.6, 0.5)

	levels := BuildLevels(q, peers, LookupStage("Series"))
	require.Len(t, levels, MaxLevels)
	for i, level := range levels {
		assert.Equal(t, i+1, level.LevelOrder)
	}
}

func TestBuildLevels_Entry(t *testing.T) {
	q := sampleQuery()
	records := sampleRecords()
	peers := scored(records, 0.873)

	levels := BuildLevels(q, peers, LookupStage("Series"))
	require.Len(t, levels, 1)
	level := levels[0]

	assert.Equal(t, "L2", level.LevelCode)
	assert.Equal(t, "Software Engineer II", level.MarketAlignedTitle)
	assert.Equal(t, "Owns Backend systems. Stage-adjusted for Series: rapid scope expansion.", level.RoleScopeVsMedian)
	assert.Equal(t, []string{
		"Deliver scope expected at L2 with measurable output quality",
		"Coordinate cross-functional partners for Engineering outcomes",
		"Own execution rhythm and risk management across quarterly plans",
	}, level.Responsibilities)
	assert.Equal(t, []string{"System design", "Benchmark interpretation", "Data-informed role calibration"}, level.FunctionalCompetencies)
	assert.Equal(t, []string{"Go"}, level.TechnologyTools)
	assert.Equal(t, "Impacts Engineering KPIs at ~94th percentile vs peer median.", level.BusinessImpact)
	assert.Equal(t, "3-5 years", level.ExperienceRangeYears)
	assert.Len(t, level.LeadershipBehavioralSkills, 3)
	assert.Len(t, level.PromotionBenchmarks, 3)
	assert.Len(t, level.RiskFlags, 2)

	// The record is shared corpus state and must not be modified.
	assert.Equal(t, []string{"System design"}, records[0].Competencies)
}

func TestBuildLevels_SynthesizedLevelCode(t *testing.T) {
	q := sampleQuery()
	records := sampleRecords()
	// Delta has no level code and sits at rank 2 here.
	peers := []core.ScoredPeer{
		{Record: records[0], Similarity: 0.9},
		{Record: records[3], Similarity: 0.8},
	}

	levels := BuildLevels(q, peers, DefaultStageProfile)
	assert.Equal(t, "L2", levels[1].LevelCode)
	assert.Equal(t, "Deliver scope expected at L2 with measurable output quality", levels[1].Responsibilities[0])
}

func TestBuildLevels_CustomLevelNaming(t *testing.T) {
	q := sampleQuery()
	q.JobArchitecture.CustomLevelNaming = map[string]string{
		"L3": "Backend Engineer III",
		"":   "Unnamed",
		"L2": "",
	}
	records := sampleRecords()
	peers := []core.ScoredPeer{
		{Record: records[1], Similarity: 0.9}, // L3
		{Record: records[3], Similarity: 0.8}, // no code
		{Record: records[0], Similarity: 0.7}, // L2 with empty override
	}

	levels := BuildLevels(q, peers, DefaultStageProfile)
	assert.Equal(t, "Backend Engineer III", levels[0].MarketAlignedTitle)
	// Lookup uses the record's own empty code, not the synthesized "L2".
	assert.Equal(t, "Unnamed", levels[1].MarketAlignedTitle)
	assert.Equal(t, "Software Engineer II", levels[2].MarketAlignedTitle)
}

func TestBuildLevels_NilToolsBecomeEmpty(t *testing.T) {
	q := sampleQuery()
	r := record("Acme", "Software", "Series", "Engineering", "Backend", "L1", "Engineer")
	r.Tools = nil
	r.Competencies = nil

	levels := BuildLevels(q, []core.ScoredPeer{{Record: r, Similarity: 0.5}}, DefaultStageProfile)
	assert.NotNil(t, levels[0].TechnologyTools)
	assert.Empty(t, levels[0].TechnologyTools)
	assert.Equal(t, []string{"Benchmark interpretation", "Data-informed role calibration"}, levels[0].FunctionalCompetencies)
}

func TestBuildLevels_Fallback(t *testing.T) {
	q := sampleQuery()

	levels := BuildLevels(q, nil, DefaultStageProfile)
	require.Len(t, levels, 1)
	level := levels[0]

	assert.Equal(t, 1, level.LevelOrder)
	assert.Equal(t, "L1", level.LevelCode)
	assert.Equal(t, "Backend", level.MarketAlignedTitle)
	assert.Equal(t, "Baseline scope aligned with target market.", level.RoleScopeVsMedian)
	assert.Equal(t, []string{"Low confidence due to sparse benchmarks"}, level.RiskFlags)
	assert.Equal(t, "2-4 years", level.ExperienceRangeYears)
}

func TestPercentile(t *testing.T) {
	assert.Equal(t, 50, Percentile(0))
	assert.Equal(t, 100, Percentile(1))
	assert.Equal(t, 94, Percentile(0.873))
	assert.Equal(t, 75, Percentile(0.5))
	assert.Equal(t, 93, Percentile(0.86))
}
