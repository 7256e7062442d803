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

// StageProfile is the narrative adjustment for a growth stage.
type StageProfile struct {
	Note     string // scope-adjustment phrase
	Velocity string // expected career velocity label
}

var stageProfiles = map[string]StageProfile{
	"Seed":       {Note: "broader remit", Velocity: "high"},
	"Series":     {Note: "rapid scope expansion", Velocity: "medium-high"},
	"Scale":      {Note: "balanced depth and leadership", Velocity: "medium"},
	"Public":     {Note: "specialized ownership and compliance", Velocity: "medium"},
	"Enterprise": {Note: "complex multi-business governance", Velocity: "medium-high"},
}

// DefaultStageProfile applies to any stage not in the lookup table.
var DefaultStageProfile = StageProfile{Note: "balanced scope", Velocity: "medium"}

// LookupStage returns the profile for stage. Matching is exact and
// case-sensitive: "Series A" gets the default profile, not "Series".
func LookupStage(stage string) StageProfile {
	if profile, ok := stageProfiles[stage]; ok {
		return profile
	}
	return DefaultStageProfile
}

// earlyStage reports whether stage is one where leadership depth
// typically lags public-company peers.
func earlyStage(stage string) bool {
	return stage == "Seed" || stage == "Series"
}
