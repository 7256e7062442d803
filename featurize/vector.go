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

import "math"

// NormalizeInPlace scales v to unit length. Zero vectors are left unchanged.
func NormalizeInPlace(v []float32) {
	var sumSquares float64
	for _, val := range v {
		sumSquares += float64(val) * float64(val)
	}
	if sumSquares == 0 {
		return
	}

	magnitude := math.Sqrt(sumSquares)
	for i, val := range v {
		v[i] = float32(float64(val) / magnitude)
	}
}

// Dot returns the dot product of two vectors, accumulated in float64 in
// ascending index order. For unit vectors this is the cosine similarity.
func Dot(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	var sum float64
	for i := 0; i < minLen; i++ {
		// The outer conversion forces rounding and prevents fused multiply-add.
		sum += float64(float64(a[i]) * float64(b[i]))
	}
	return sum
}
