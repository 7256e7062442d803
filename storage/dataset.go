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

package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/poiesic/leveler/core"
)

// DecodeBenchmarks decodes a JSON array of benchmark rows.
// Every row is validated and assigned its content ID; the first invalid row
// fails the whole dataset.
func DecodeBenchmarks(r io.Reader) ([]*core.BenchmarkRecord, error) {
	var records []*core.BenchmarkRecord
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	for i, record := range records {
		if err := core.ValidateBenchmarkRecord(record); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidDataset, i, err)
		}
		record.Id = core.IDFromContent(record.Key())
	}
	return records, nil
}
