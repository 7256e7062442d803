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

package core

import (
	"fmt"
	"slices"
)

// Known categorical values accepted at the request boundary.
var (
	GrowthStages   = []string{"Seed", "Series", "Scale", "Public", "Enterprise"}
	BusinessModels = []string{"B2B", "B2C", "SaaS", "Platform", "Services"}
	TrackTypes     = []string{"Dual Track", "Single Track"}
)

// ValidateQuery validates a Query before it reaches the engine.
//
// Validation rules:
//   - Identity, business context, function/role and job architecture
//     strings must not be empty
//   - GrowthStage, BusinessModel and TrackType must be known values
//   - EmployeeSize must be positive
//
// NOT validated:
//   - IndustrySecondary, Specialization (optional)
//   - CustomLevelNaming (may be empty)
//   - ComparatorCompanies (advisory, may name unknown companies)
func ValidateQuery(q *Query) error {
	if q == nil {
		return fmt.Errorf("%w: query is nil", ErrInvalidQuery)
	}

	required := []struct {
		name  string
		value string
	}{
		{"organizationId", q.OrganizationID},
		{"createdById", q.CreatedByID},
		{"businessContext.industryPrimary", q.BusinessContext.IndustryPrimary},
		{"businessContext.revenueBand", q.BusinessContext.RevenueBand},
		{"businessContext.marketGeography", q.BusinessContext.MarketGeography},
		{"functionRole.function", q.FunctionRole.Function},
		{"functionRole.roleFamily", q.FunctionRole.RoleFamily},
		{"jobArchitecture.icStructure", q.JobArchitecture.ICStructure},
		{"jobArchitecture.managementStructure", q.JobArchitecture.ManagementStructure},
		{"jobArchitecture.directorMapping", q.JobArchitecture.DirectorMapping},
		{"jobArchitecture.headOfFunctionDefinition", q.JobArchitecture.HeadOfFunctionDefinition},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidQuery, ErrMissingField, field.name)
		}
	}

	if !slices.Contains(GrowthStages, q.BusinessContext.GrowthStage) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ErrInvalidGrowthStage, q.BusinessContext.GrowthStage)
	}
	if !slices.Contains(BusinessModels, q.BusinessContext.BusinessModel) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ErrInvalidBusinessModel, q.BusinessContext.BusinessModel)
	}
	if !slices.Contains(TrackTypes, q.JobArchitecture.TrackType) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidQuery, ErrInvalidTrackType, q.JobArchitecture.TrackType)
	}
	if q.BusinessContext.EmployeeSize <= 0 {
		return fmt.Errorf("%w: %w: %d", ErrInvalidQuery, ErrInvalidEmployeeSize, q.BusinessContext.EmployeeSize)
	}

	return nil
}

// ValidateBenchmarkRecord validates a dataset row.
//
// Validation rules:
//   - Company, Industry, GrowthStage, Function, RoleFamily and Title must not be empty
//
// NOT validated:
//   - LevelCode (synthesized from ladder position when empty)
//   - Competencies, Tools (may be empty)
func ValidateBenchmarkRecord(r *BenchmarkRecord) error {
	if r == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidBenchmark)
	}

	required := []struct {
		name  string
		value string
	}{
		{"company", r.Company},
		{"industry", r.Industry},
		{"growthStage", r.GrowthStage},
		{"function", r.Function},
		{"roleFamily", r.RoleFamily},
		{"title", r.Title},
	}
	for _, field := range required {
		if field.value == "" {
			return fmt.Errorf("%w: %w: %s", ErrInvalidBenchmark, ErrMissingField, field.name)
		}
	}
	return nil
}
