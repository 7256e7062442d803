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

package featurize

// Featurizer maps text to a fixed-dimensional vector.
// Implementations must be pure and safe for concurrent use.
type Featurizer interface {
	// Featurize returns the vector for text. The vector has exactly
	// Dimensions() entries. Empty or whitespace-only text yields the zero vector.
	Featurize(text string) ([]float32, error)

	// Dimensions returns the fixed vector length.
	Dimensions() int
}
