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
	"context"

	"github.com/poiesic/leveler/core"
)

// BenchmarkRepository provides operations for managing benchmark records.
// Implementations must be thread-safe and support concurrent access.
type BenchmarkRepository interface {
	// AddBenchmarks adds one or more benchmark records to storage.
	// IDs are derived from record content (IDFromContent of the record key).
	// The key covers every field, so re-adding an identical record keeps
	// its original position and any changed field makes a new record.
	// Returns the records with IDs populated.
	AddBenchmarks(ctx context.Context, records ...*core.BenchmarkRecord) ([]*core.BenchmarkRecord, error)

	// GetBenchmark retrieves a single benchmark record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetBenchmark(ctx context.Context, id core.ID) (*core.BenchmarkRecord, error)

	// ListBenchmarks returns every record in insertion order.
	ListBenchmarks(ctx context.Context) ([]*core.BenchmarkRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
