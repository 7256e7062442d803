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

// Package featurize turns free text into fixed-length numeric vectors.
//
// The Hashing featurizer is stateless: there is no vocabulary and no training
// step. Every token is hashed into one of a fixed number of buckets, so unseen
// tokens never fail. Vectors are non-negative and L2-normalized, which makes
// the dot product of two vectors their cosine similarity.
//
// Basic usage:
//
//	f, err := featurize.NewHashing(featurize.DefaultDimensions)
//	if err != nil {
//	    return err
//	}
//	vec, err := f.Featurize("Software Series Engineering Backend")
package featurize
