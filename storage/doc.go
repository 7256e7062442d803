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

// Package storage holds the benchmark corpus and the repository abstraction
// it is loaded from.
//
// # Corpus
//
// A Corpus is an immutable, ordered sequence of benchmark records. It is
// built once at startup and passed explicitly to the retrieval index and the
// ladder engine; nothing in this module keeps a package-level corpus.
//
//	records, err := storage.DecodeBenchmarks(f)
//	if err != nil {
//	    return err
//	}
//	corpus, err := storage.NewCorpus(records)
//
// # Repositories
//
// BenchmarkRepository decouples where the dataset lives from the engine.
// The badger subpackage provides a persistent implementation:
//
//	repo, err := badger.NewMemoryRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//	corpus, err := storage.LoadCorpus(ctx, repo)
//
// # Thread Safety
//
// Repository implementations must be safe for concurrent use. A Corpus is
// never mutated after construction and may be shared freely.
package storage
