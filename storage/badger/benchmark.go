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
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/leveler/core"
	"github.com/poiesic/leveler/storage"
)

// writeBatchSize bounds the number of records written per transaction so
// large imports stay under badger's transaction size limit.
const writeBatchSize = 500

// BenchmarkRepository implements storage.BenchmarkRepository for BadgerDB.
type BenchmarkRepository struct {
	backend *Backend
	posSeq  *badger.Sequence
}

var _ storage.BenchmarkRepository = (*BenchmarkRepository)(nil)

// NewBenchmarkRepository creates a new BenchmarkRepository.
func NewBenchmarkRepository(backend *Backend) (*BenchmarkRepository, error) {
	if backend == nil {
		return nil, storage.ErrRepositoryRequired
	}
	posSeq, err := backend.GetSequence(benchmarkSeq)
	if err != nil {
		return nil, err
	}

	return &BenchmarkRepository{
		backend: backend,
		posSeq:  posSeq,
	}, nil
}

// Close releases the position sequence.
func (r *BenchmarkRepository) Close() error {
	return r.posSeq.Release()
}

// AddBenchmarks adds one or more benchmark records to storage.
func (r *BenchmarkRepository) AddBenchmarks(ctx context.Context, records ...*core.BenchmarkRecord) ([]*core.BenchmarkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	for start := 0; start < len(records); start += writeBatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+writeBatchSize, len(records))
		if err := r.addBatch(records[start:end]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (r *BenchmarkRepository) addBatch(records []*core.BenchmarkRecord) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if err := core.ValidateBenchmarkRecord(record); err != nil {
				return err
			}
			record.Id = core.IDFromContent(record.Key())

			key := makeBenchmarkKey(record.Id)
			_, err := tx.Get(key)
			switch {
			case errors.Is(err, badger.ErrKeyNotFound):
				// First time this key is seen: append to the order index
				pos, err := r.posSeq.Next()
				if err != nil {
					return err
				}
				if err := tx.Set(makeBenchmarkOrderKey(pos), storage.MarshalID(record.Id)); err != nil {
					return err
				}
			case err != nil:
				return err
			}

			if err := tx.Set(key, storage.MarshalBenchmark(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetBenchmark retrieves a single benchmark record by ID.
func (r *BenchmarkRepository) GetBenchmark(ctx context.Context, id core.ID) (*core.BenchmarkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var result *core.BenchmarkRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readBenchmark(tx, makeBenchmarkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListBenchmarks returns every record in insertion order.
func (r *BenchmarkRepository) ListBenchmarks(ctx context.Context) ([]*core.BenchmarkRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	results := []*core.BenchmarkRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := benchmarkOrderScanPrefix()
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			// Read the ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readBenchmark(tx, makeBenchmarkKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Count returns the number of stored records.
func (r *BenchmarkRepository) Count(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := benchmarkOrderScanPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// readBenchmark reads a benchmark record from the transaction.
// Returns nil without error when the key is absent.
func (r *BenchmarkRepository) readBenchmark(tx *badger.Txn, key []byte) (*core.BenchmarkRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.BenchmarkRecord
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		record, unmarshalErr = storage.UnmarshalBenchmark(val)
		return unmarshalErr
	})
	return record, err
}
