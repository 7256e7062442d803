package core

import (
	"errors"
	"testing"
)

func validQuery() *Query {
	return &Query{
		OrganizationID: "demo-org",
		CreatedByID:    "demo-user",
		BusinessContext: BusinessContext{
			IndustryPrimary: "Software",
			RevenueBand:     "$100M-$500M",
			GrowthStage:     "Scale",
			EmployeeSize:    1800,
			MarketGeography: "North America",
			BusinessModel:   "SaaS",
		},
		FunctionRole: FunctionRole{
			Function:   "Engineering",
			RoleFamily: "Backend Engineer",
		},
		JobArchitecture: JobArchitecture{
			ICStructure:              "IC1-IC6",
			ManagementStructure:      "M1-M4",
			DirectorMapping:          "Director -> VP -> CTO",
			HeadOfFunctionDefinition: "Owns functional strategy",
			TrackType:                "Dual Track",
		},
	}
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(q *Query)
		nilQ    bool
		wantErr error
	}{
		{
			name:    "valid query",
			mutate:  func(q *Query) {},
			wantErr: nil,
		},
		{
			name: "valid query with optional fields empty",
			mutate: func(q *Query) {
				q.BusinessContext.IndustrySecondary = ""
				q.FunctionRole.Specialization = ""
				q.JobArchitecture.CustomLevelNaming = nil
			},
			wantErr: nil,
		},
		{
			name:    "nil query",
			nilQ:    true,
			wantErr: ErrInvalidQuery,
		},
		{
			name:    "missing organization",
			mutate:  func(q *Query) { q.OrganizationID = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing role family",
			mutate:  func(q *Query) { q.FunctionRole.RoleFamily = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing head of function definition",
			mutate:  func(q *Query) { q.JobArchitecture.HeadOfFunctionDefinition = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "unknown growth stage",
			mutate:  func(q *Query) { q.BusinessContext.GrowthStage = "Series A" },
			wantErr: ErrInvalidGrowthStage,
		},
		{
			name:    "unknown business model",
			mutate:  func(q *Query) { q.BusinessContext.BusinessModel = "Marketplace" },
			wantErr: ErrInvalidBusinessModel,
		},
		{
			name:    "unknown track type",
			mutate:  func(q *Query) { q.JobArchitecture.TrackType = "Triple Track" },
			wantErr: ErrInvalidTrackType,
		},
		{
			name:    "zero employees",
			mutate:  func(q *Query) { q.BusinessContext.EmployeeSize = 0 },
			wantErr: ErrInvalidEmployeeSize,
		},
		{
			name:    "negative employees",
			mutate:  func(q *Query) { q.BusinessContext.EmployeeSize = -5 },
			wantErr: ErrInvalidEmployeeSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q *Query
			if !tt.nilQ {
				q = validQuery()
				tt.mutate(q)
			}

			err := ValidateQuery(q)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuery() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Errorf("ValidateQuery() error = nil, want %v", tt.wantErr)
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuery() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("ValidateQuery() error = %v, should wrap %v", err, ErrInvalidQuery)
			}
		})
	}
}

func TestValidateBenchmarkRecord(t *testing.T) {
	valid := func() *BenchmarkRecord {
		return &BenchmarkRecord{
			Company:     "Acme",
			Industry:    "Software",
			GrowthStage: "Series",
			Function:    "Engineering",
			RoleFamily:  "Backend",
			Title:       "Software Engineer II",
		}
	}

	tests := []struct {
		name    string
		record  *BenchmarkRecord
		wantErr error
	}{
		{name: "valid record", record: valid(), wantErr: nil},
		{
			name: "valid record without level code",
			record: func() *BenchmarkRecord {
				r := valid()
				r.LevelCode = ""
				return r
			}(),
			wantErr: nil,
		},
		{name: "nil record", record: nil, wantErr: ErrInvalidBenchmark},
		{
			name: "missing company",
			record: func() *BenchmarkRecord {
				r := valid()
				r.Company = ""
				return r
			}(),
			wantErr: ErrMissingField,
		},
		{
			name: "missing title",
			record: func() *BenchmarkRecord {
				r := valid()
				r.Title = ""
				return r
			}(),
			wantErr: ErrMissingField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBenchmarkRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateBenchmarkRecord() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBenchmarkRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
