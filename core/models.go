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
	"encoding/binary"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for benchmark records.
// It is derived from record content so re-importing a dataset is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// BenchmarkRecord is one peer company's role/level data point.
// Records are loaded once and shared read-only across requests.
type BenchmarkRecord struct {
	Id            ID       `json:"-"`
	Company       string   `json:"company"`
	Industry      string   `json:"industry"`
	RevenueBand   string   `json:"revenueBand"`
	EmployeeRange string   `json:"employeeRange"`
	GrowthStage   string   `json:"growthStage"`
	Geography     string   `json:"geography"`
	BusinessModel string   `json:"businessModel"`
	Function      string   `json:"function"`
	RoleFamily    string   `json:"roleFamily"`
	LevelCode     string   `json:"levelCode"` // may be empty
	Title         string   `json:"title"`
	Scope         string   `json:"scope"`
	Competencies  []string `json:"competencies"`
	Tools         []string `json:"tools"`
	Experience    string   `json:"experience"`
	Source        string   `json:"source"`
}

// Key returns the identity tuple used to derive the record ID. Every field
// is quoted, so two records share a key only when all fields are equal.
func (r *BenchmarkRecord) Key() string {
	fields := []string{
		strconv.Quote(r.Company),
		strconv.Quote(r.Industry),
		strconv.Quote(r.RevenueBand),
		strconv.Quote(r.EmployeeRange),
		strconv.Quote(r.GrowthStage),
		strconv.Quote(r.Geography),
		strconv.Quote(r.BusinessModel),
		strconv.Quote(r.Function),
		strconv.Quote(r.RoleFamily),
		strconv.Quote(r.LevelCode),
		strconv.Quote(r.Title),
		strconv.Quote(r.Scope),
		quoteList(r.Competencies),
		quoteList(r.Tools),
		strconv.Quote(r.Experience),
		strconv.Quote(r.Source),
	}
	return "(" + strings.Join(fields, ",") + ")"
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = strconv.Quote(item)
	}
	return "[" + strings.Join(quoted, ",") + "]"
}

// ComparisonText concatenates the record's fields into the text that is
// featurized for retrieval. Field boundaries are not preserved.
func (r *BenchmarkRecord) ComparisonText() string {
	return strings.Join([]string{
		r.Company,
		r.Industry,
		r.RevenueBand,
		r.EmployeeRange,
		r.GrowthStage,
		r.Geography,
		r.BusinessModel,
		r.Function,
		r.RoleFamily,
		r.LevelCode,
		r.Title,
		r.Scope,
		strings.Join(r.Competencies, " "),
		strings.Join(r.Tools, " "),
		r.Experience,
	}, " ")
}

// BusinessContext describes the company the ladder is generated for.
type BusinessContext struct {
	IndustryPrimary   string `json:"industryPrimary"`
	IndustrySecondary string `json:"industrySecondary,omitempty"`
	RevenueBand       string `json:"revenueBand"`
	GrowthStage       string `json:"growthStage"`
	EmployeeSize      int    `json:"employeeSize"`
	MarketGeography   string `json:"marketGeography"`
	BusinessModel     string `json:"businessModel"`
}

// FunctionRole identifies the function and role family being leveled.
type FunctionRole struct {
	Function       string `json:"function"`
	RoleFamily     string `json:"roleFamily"`
	Specialization string `json:"specialization,omitempty"`
}

// JobArchitecture captures the caller's existing leveling structure.
type JobArchitecture struct {
	ICStructure              string            `json:"icStructure"`
	ManagementStructure      string            `json:"managementStructure"`
	DirectorMapping          string            `json:"directorMapping"`
	HeadOfFunctionDefinition string            `json:"headOfFunctionDefinition"`
	TrackType                string            `json:"trackType"`
	CustomLevelNaming        map[string]string `json:"customLevelNaming"` // level code -> title override
}

// Query is a single ladder generation request.
type Query struct {
	OrganizationID      string          `json:"organizationId"`
	CreatedByID         string          `json:"createdById"`
	BusinessContext     BusinessContext `json:"businessContext"`
	FunctionRole        FunctionRole    `json:"functionRole"`
	JobArchitecture     JobArchitecture `json:"jobArchitecture"`
	ComparatorGroupIDs  []string        `json:"comparatorGroupIds,omitempty"`
	ComparatorCompanies []string        `json:"comparatorCompanies,omitempty"` // advisory allow-list
}

// ComparisonText concatenates the query attributes that take part in retrieval.
func (q *Query) ComparisonText() string {
	return strings.Join([]string{
		q.BusinessContext.IndustryPrimary,
		q.BusinessContext.IndustrySecondary,
		q.BusinessContext.RevenueBand,
		q.BusinessContext.GrowthStage,
		q.BusinessContext.MarketGeography,
		q.BusinessContext.BusinessModel,
		q.FunctionRole.Function,
		q.FunctionRole.RoleFamily,
		q.FunctionRole.Specialization,
		q.JobArchitecture.ICStructure,
		q.JobArchitecture.ManagementStructure,
		q.JobArchitecture.TrackType,
	}, " ")
}

// ScoredPeer pairs a benchmark record with its retrieval and composite scores.
type ScoredPeer struct {
	Record     *BenchmarkRecord
	Position   int     // index of the record in corpus order
	Retrieval  float64 // raw cosine similarity
	Similarity float64 // composite similarity, at most 1.0
}

// LevelEntry is one rung of a generated leveling ladder.
type LevelEntry struct {
	LevelOrder                  int      `json:"levelOrder"`
	LevelCode                   string   `json:"levelCode"`
	MarketAlignedTitle          string   `json:"marketAlignedTitle"`
	RoleScopeVsMedian           string   `json:"roleScopeVsMedian"`
	Responsibilities            []string `json:"responsibilities"`
	FunctionalCompetencies      []string `json:"functionalCompetencies"`
	LeadershipBehavioralSkills  []string `json:"leadershipBehavioralSkills"`
	BusinessImpact              string   `json:"businessImpact"`
	DecisionAuthority           string   `json:"decisionAuthority"`
	TechnologyTools             []string `json:"technologyTools"`
	PromotionBenchmarks         []string `json:"promotionBenchmarks"`
	ExperienceRangeYears        string   `json:"experienceRangeYears"`
	InternalExternalCompetitive string   `json:"internalExternalCompetitive"`
	DeviationNotes              string   `json:"deviationNotes"`
	RiskFlags                   []string `json:"riskFlags"`
}

// Insights holds ladder-wide narrative observations.
type Insights struct {
	LevelCompressionRisk  string   `json:"levelCompressionRisk"`
	LeadershipDensity     string   `json:"leadershipDensity"`
	ICManagerRatio        string   `json:"icManagerRatio"`
	CompetitivenessGaps   []string `json:"competitivenessGaps"`
	CompanyVsMarketMedian string   `json:"companyVsMarketMedian"`
	CareerVelocity        string   `json:"careerVelocity"`
}

// Provenance attributes a generated ladder to one selected peer.
type Provenance struct {
	SourceType     string  `json:"sourceType"`
	SourceName     string  `json:"sourceName"`
	SourceURL      *string `json:"sourceUrl"`
	RelevanceScore float64 `json:"relevanceScore"`
	Excerpt        string  `json:"excerpt"`
}

// Result is the complete output of a ladder generation request.
type Result struct {
	BenchmarkConfidence float64      `json:"benchmarkConfidence"`
	SimilarityScore     float64      `json:"similarityScore"`
	DataCoverage        float64      `json:"dataCoverage"`
	ExecutiveSummary    string       `json:"executiveSummary"`
	Levels              []LevelEntry `json:"levels"`
	Insights            Insights     `json:"insights"`
	Provenance          []Provenance `json:"provenance"`
}

// AppendSummary appends text to the executive summary.
// It is the only mutation post-processors are allowed to make.
func (r *Result) AppendSummary(suffix string) {
	r.ExecutiveSummary += suffix
}
