package ladder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/refine"
	"github.com/poiesic/leveler/refine/mock"
	"github.com/poiesic/leveler/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngine(t *testing.T) {
	idx := newIndex(t, sampleRecords())

	t.Run("valid configuration", func(t *testing.T) {
		engine, err := NewEngine(idx)
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		engine, err := NewEngine(idx, WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, engine)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.Equal(t, ErrIndexRequired, err)
	})
}

func TestGenerate_NilQuery(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	_, err = engine.Generate(context.Background(), nil)
	assert.Equal(t, ErrQueryRequired, err)
}

func TestGenerate_RanksBestMatchesFirst(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	result, err := engine.Generate(context.Background(), sampleQuery())
	require.NoError(t, err)

	require.Len(t, result.Provenance, MaxPeers)
	require.Len(t, result.Levels, MaxLevels)
	assert.ElementsMatch(t, []string{"Acme", "Beta"}, []string{result.Provenance[0].SourceName, result.Provenance[1].SourceName})
	for i := 1; i < len(result.Provenance); i++ {
		assert.GreaterOrEqual(t, result.Provenance[i-1].RelevanceScore, result.Provenance[i].RelevanceScore)
	}
	assert.Equal(t, []string{"Leadership depth below public-company median by ~1 level"}, result.Insights.CompetitivenessGaps)
	assert.Contains(t, result.ExecutiveSummary, "Generated 4 levels for Backend using 5 peer benchmarks.")
}

func TestGenerate_EmptyCorpus(t *testing.T) {
	engine, err := NewEngine(newIndex(t, nil))
	require.NoError(t, err)

	result, err := engine.Generate(context.Background(), sampleQuery())
	require.NoError(t, err)

	require.Len(t, result.Levels, 1)
	assert.Equal(t, "L1", result.Levels[0].LevelCode)
	assert.Equal(t, 0.1, result.DataCoverage)
	assert.Equal(t, 0.38, result.BenchmarkConfidence)
	assert.Empty(t, result.Provenance)
}

func TestGenerate_UnknownStage(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	q := sampleQuery()
	q.BusinessContext.GrowthStage = "Unknown-Stage"
	result, err := engine.Generate(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "Expected velocity: medium", result.Insights.CareerVelocity)
	assert.Contains(t, result.Levels[0].RoleScopeVsMedian, "Stage-adjusted for Unknown-Stage: balanced scope.")
}

func TestGenerate_Idempotent(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	first, err := engine.Generate(context.Background(), sampleQuery())
	require.NoError(t, err)
	second, err := engine.Generate(context.Background(), sampleQuery())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestGenerate_BackendsAgree(t *testing.T) {
	records := sampleRecords()
	for i := 0; i < 40; i++ {
		records = append(records, record(fmt.Sprintf("Filler%02d", i), "Logistics", "Scale", "Operations", "Planner", "P1", fmt.Sprintf("Planner %d", i)))
	}

	brute, err := NewEngine(newIndex(t, records, retrieval.WithStrategy(retrieval.StrategyBruteForce)))
	require.NoError(t, err)
	inverted, err := NewEngine(newIndex(t, records, retrieval.WithStrategy(retrieval.StrategyInverted)))
	require.NoError(t, err)

	q := sampleQuery()
	q.ComparatorCompanies = []string{"Gamma", "Epsilon"}
	want, err := brute.Generate(context.Background(), q)
	require.NoError(t, err)
	got, err := inverted.Generate(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGenerate_AllowList(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	t.Run("intersecting allow-list restricts peers", func(t *testing.T) {
		q := sampleQuery()
		q.ComparatorCompanies = []string{"beta", "Gamma", "NotInCorpus"}
		result, err := engine.Generate(context.Background(), q)
		require.NoError(t, err)

		require.NotEmpty(t, result.Provenance)
		for _, p := range result.Provenance {
			assert.Contains(t, []string{"Beta", "Gamma"}, p.SourceName)
		}
		assert.Len(t, result.Levels, len(result.Provenance))
	})

	t.Run("disjoint allow-list equals unfiltered", func(t *testing.T) {
		unfiltered, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)

		q := sampleQuery()
		q.ComparatorCompanies = []string{"NotInCorpus"}
		result, err := engine.Generate(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, unfiltered, result)
	})
}

func TestGenerate_Bounds(t *testing.T) {
	engine, err := NewEngine(newIndex(t, sampleRecords()))
	require.NoError(t, err)

	stages := []string{"Seed", "Series", "Scale", "Public", "Enterprise", "Other"}
	functions := []string{"Engineering", "Finance", "Sales", "Design"}
	for _, stage := range stages {
		for _, function := range functions {
			q := sampleQuery()
			q.BusinessContext.GrowthStage = stage
			q.FunctionRole.Function = function

			result, err := engine.Generate(context.Background(), q)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, result.BenchmarkConfidence, 0.1)
			assert.LessOrEqual(t, result.BenchmarkConfidence, 0.99)
			assert.GreaterOrEqual(t, result.SimilarityScore, 0.1)
			assert.LessOrEqual(t, result.SimilarityScore, 0.99)
			assert.GreaterOrEqual(t, result.DataCoverage, 0.1)
			assert.LessOrEqual(t, result.DataCoverage, 1.0)
			assert.LessOrEqual(t, len(result.Provenance), MaxPeers)
			assert.Len(t, result.Levels, min(MaxLevels, len(result.Provenance)))
		}
	}
}

func TestGenerate_Refiner(t *testing.T) {
	idx := newIndex(t, sampleRecords())

	t.Run("policy suffix is appended", func(t *testing.T) {
		engine, err := NewEngine(idx, WithRefiner(refine.FromCredentials(true)))
		require.NoError(t, err)

		result, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)
		assert.Contains(t, result.ExecutiveSummary, "evidence-linked promotion criteria. AI refinement active via configured LLM policy controls.")
	})

	t.Run("no refiner without credentials", func(t *testing.T) {
		engine, err := NewEngine(idx, WithRefiner(refine.FromCredentials(false)))
		require.NoError(t, err)

		result, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)
		assert.NotContains(t, result.ExecutiveSummary, "AI refinement")
	})

	t.Run("refiner sees the core summary", func(t *testing.T) {
		refiner := mock.NewMockRefiner(" Extra.")
		engine, err := NewEngine(idx, WithRefiner(refiner))
		require.NoError(t, err)

		result, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)
		require.Equal(t, 1, refiner.CallCount())
		assert.Equal(t, refiner.Summaries()[0]+" Extra.", result.ExecutiveSummary)
	})

	t.Run("refiner failure keeps summary", func(t *testing.T) {
		refiner := mock.NewMockRefiner("")
		refiner.RefineFunc = func(_ context.Context, _ string) (string, error) {
			return "", assert.AnError
		}
		engine, err := NewEngine(idx, WithRefiner(refiner), WithLogger(slog.Default()))
		require.NoError(t, err)

		result, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)
		assert.Equal(t, refiner.Summaries()[0], result.ExecutiveSummary)
	})

	t.Run("policy suffix survives a failing model refiner", func(t *testing.T) {
		failing := mock.NewMockRefiner("")
		failing.RefineFunc = func(_ context.Context, _ string) (string, error) {
			return "", assert.AnError
		}
		engine, err := NewEngine(idx, WithRefiner(refine.Chain{refine.Policy{}, failing}))
		require.NoError(t, err)

		result, err := engine.Generate(context.Background(), sampleQuery())
		require.NoError(t, err)
		require.Equal(t, 1, failing.CallCount())
		assert.True(t, strings.HasSuffix(result.ExecutiveSummary, "promotion criteria."+refine.PolicySuffix))
	})
}

type recordingMonitor struct {
	events   []string
	scores   int
	ranked   int
	selected int
	filtered bool
}

func (m *recordingMonitor) Start(_ *core.Query) { m.events = append(m.events, "start") }
func (m *recordingMonitor) AfterRetrieval(scores []float64) {
	m.events = append(m.events, "retrieval")
	m.scores = len(scores)
}
func (m *recordingMonitor) AfterScoring(ranked []core.ScoredPeer) {
	m.events = append(m.events, "scoring")
	m.ranked = len(ranked)
}
func (m *recordingMonitor) AfterSelection(selected []core.ScoredPeer, filtered bool) {
	m.events = append(m.events, "selection")
	m.selected = len(selected)
	m.filtered = filtered
}
func (m *recordingMonitor) Finish(_ *core.Result) { m.events = append(m.events, "finish") }

func TestGenerateWithMonitor(t *testing.T) {
	records := sampleRecords()
	engine, err := NewEngine(newIndex(t, records))
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	q := sampleQuery()
	q.ComparatorCompanies = []string{"Acme"}
	_, err = engine.GenerateWithMonitor(context.Background(), q, monitor)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "retrieval", "scoring", "selection", "finish"}, monitor.events)
	assert.Equal(t, len(records), monitor.scores)
	assert.Equal(t, len(records), monitor.ranked)
	assert.Equal(t, 1, monitor.selected)
	assert.True(t, monitor.filtered)
}
