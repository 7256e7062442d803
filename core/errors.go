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

import "errors"

// Domain validation errors
var (
	// ErrInvalidQuery indicates a Query failed validation.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidBenchmark indicates a BenchmarkRecord failed validation.
	ErrInvalidBenchmark = errors.New("invalid benchmark record")

	// ErrMissingField indicates a required field is empty.
	ErrMissingField = errors.New("required field is empty")

	// ErrInvalidGrowthStage indicates a growth stage outside the known set.
	ErrInvalidGrowthStage = errors.New("invalid growth stage")

	// ErrInvalidBusinessModel indicates a business model outside the known set.
	ErrInvalidBusinessModel = errors.New("invalid business model")

	// ErrInvalidTrackType indicates a track type outside the known set.
	ErrInvalidTrackType = errors.New("invalid track type")

	// ErrInvalidEmployeeSize indicates a non-positive employee size.
	ErrInvalidEmployeeSize = errors.New("employee size must be positive")
)
