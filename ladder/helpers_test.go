package ladder

import (
	"context"
	"testing"

	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/featurize"
	"github.com/poiesic/leveler/retrieval"
	"github.com/poiesic/leveler/storage"
	"github.com/stretchr/testify/require"
)

func sampleQuery() *core.Query {
	return &core.Query{
		OrganizationID: "org-1",
		CreatedByID:    "user-1",
		BusinessContext: core.BusinessContext{
			IndustryPrimary: "Software",
			RevenueBand:     "$50M-$100M",
			GrowthStage:     "Series",
			EmployeeSize:    400,
			MarketGeography: "North America",
			BusinessModel:   "SaaS",
		},
		FunctionRole: core.FunctionRole{
			Function:   "Engineering",
			RoleFamily: "Backend",
		},
		JobArchitecture: core.JobArchitecture{
			ICStructure:              "IC1-IC6",
			ManagementStructure:      "M1-M4",
			DirectorMapping:          "D1",
			HeadOfFunctionDefinition: "VP Engineering",
			TrackType:                "Dual Track",
		},
	}
}

func record(company, industry, stage, function, family, level, title string) *core.BenchmarkRecord {
	return &core.BenchmarkRecord{
		Company:       company,
		Industry:      industry,
		GrowthStage:   stage,
		Geography:     "North America",
		BusinessModel: "SaaS",
		Function:      function,
		RoleFamily:    family,
		LevelCode:     level,
		Title:         title,
		Scope:         "Owns " + family + " systems",
		Competencies:  []string{"System design"},
		Tools:         []string{"Go"},
		Experience:    "3-5 years",
		Source:        company + " careers page",
	}
}

// sampleRecords returns a corpus where the first records match the sample
// query best and later ones progressively worse.
func sampleRecords() []*core.BenchmarkRecord {
	return []*core.BenchmarkRecord{
		record("Acme", "Software", "Series", "Engineering", "Backend", "L2", "Software Engineer II"),
		record("Beta", "Software", "Series", "Engineering", "Backend", "L3", "Senior Software Engineer"),
		record("Gamma", "Software", "Scale", "Engineering", "Backend", "L4", "Staff Engineer"),
		record("Delta", "Software", "Public", "Engineering", "Platform", "", "Platform Engineer"),
		record("Epsilon", "Fintech", "Series", "Engineering", "Backend", "L3", "Backend Engineer"),
		record("Zeta", "Retail", "Public", "Finance", "Controller", "M1", "Controller"),
		record("Eta", "Healthcare", "Enterprise", "Sales", "Account Executive", "S2", "Account Executive"),
	}
}

func newIndex(t *testing.T, records []*core.BenchmarkRecord, opts ...retrieval.Option) *retrieval.Index {
	t.Helper()
	corpus, err := storage.NewCorpus(records)
	require.NoError(t, err)
	h, err := featurize.NewHashing(featurize.DefaultDimensions)
	require.NoError(t, err)
	idx, err := retrieval.NewIndex(context.Background(), corpus, h, opts...)
	require.NoError(t, err)
	return idx
}

func peersOf(companies ...string) []core.ScoredPeer {
	peers := make([]core.ScoredPeer, len(companies))
	for i, company := range companies {
		peers[i] = core.ScoredPeer{
			Record:     &core.BenchmarkRecord{Company: company, Title: "Title " + company},
			Position:   i,
			Similarity: 1 - float64(i)*0.1,
		}
	}
	return peers
}
