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

package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/leveler/core"
)

// Key prefixes for different data types
const (
	benchmarkPrefix      = "bench"
	benchmarkOrderPrefix = "benchord"
	benchmarkSeq         = "benchseq"
)

// makeBenchmarkKey generates a key for a benchmark record by ID.
func makeBenchmarkKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", benchmarkPrefix, id))
}

// makeBenchmarkOrderKey generates a key for the insertion order index.
// Format: prefix:position
func makeBenchmarkOrderKey(position uint64) []byte {
	prefixBytes := []byte(benchmarkOrderPrefix + ":")
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort matches insertion order
	binary.BigEndian.PutUint64(buf[offset:], position)
	return buf
}

// benchmarkOrderScanPrefix is the iteration prefix for the order index.
func benchmarkOrderScanPrefix() []byte {
	return []byte(benchmarkOrderPrefix + ":")
}
