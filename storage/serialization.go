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
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/leveler/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return core.ID(id), nil
}

// MarshalBenchmark serializes a BenchmarkRecord to bytes.
func MarshalBenchmark(record *core.BenchmarkRecord) []byte {
	buf := make([]byte, benchmarkSize(record))
	marshalBenchmark(record, buf)
	return buf
}

// UnmarshalBenchmark deserializes a BenchmarkRecord from bytes.
func UnmarshalBenchmark(data []byte) (*core.BenchmarkRecord, error) {
	record, n, err := unmarshalBenchmark(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return record, nil
}

// benchmarkStrings lists the scalar string fields in wire order.
func benchmarkStrings(r *core.BenchmarkRecord) []*string {
	return []*string{
		&r.Company,
		&r.Industry,
		&r.RevenueBand,
		&r.EmployeeRange,
		&r.GrowthStage,
		&r.Geography,
		&r.BusinessModel,
		&r.Function,
		&r.RoleFamily,
		&r.LevelCode,
		&r.Title,
		&r.Scope,
		&r.Experience,
		&r.Source,
	}
}

func benchmarkSize(r *core.BenchmarkRecord) (size int) {
	size = varint.Uint64.Size(uint64(r.Id))
	for _, field := range benchmarkStrings(r) {
		size += ord.String.Size(*field)
	}
	return size + stringSliceSize(r.Competencies) + stringSliceSize(r.Tools)
}

func marshalBenchmark(r *core.BenchmarkRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(r.Id), bs)
	for _, field := range benchmarkStrings(r) {
		n += ord.String.Marshal(*field, bs[n:])
	}
	n += marshalStringSlice(r.Competencies, bs[n:])
	n += marshalStringSlice(r.Tools, bs[n:])
	return n
}

func unmarshalBenchmark(bs []byte) (*core.BenchmarkRecord, int, error) {
	record := &core.BenchmarkRecord{}

	id, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	record.Id = core.ID(id)

	var m int
	for _, field := range benchmarkStrings(record) {
		*field, m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}

	record.Competencies, m, err = unmarshalStringSlice(bs[n:])
	n += m
	if err != nil {
		return nil, n, err
	}
	record.Tools, m, err = unmarshalStringSlice(bs[n:])
	n += m
	if err != nil {
		return nil, n, err
	}
	return record, n, nil
}

func stringSliceSize(ss []string) int {
	size := varint.Int.Size(len(ss))
	for _, s := range ss {
		size += ord.String.Size(s)
	}
	return size
}

func marshalStringSlice(ss []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(ss), bs)
	for _, s := range ss {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func unmarshalStringSlice(bs []byte) ([]string, int, error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	// Every element needs at least one length byte.
	if length < 0 || length > len(bs)-n {
		return nil, n, ErrTruncatedData
	}

	ss := make([]string, length)
	var m int
	for i := range ss {
		ss[i], m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return ss, n, nil
}
