// Copyright 2025 go-highway Authors
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

// Package montecarlo estimates π by throwing darts at the unit square and
// counting how many land inside the quarter circle.
//
// The estimator exists to compare memory and vectorization strategies under
// a parallel workload. Four variants are provided:
//
//	Variant               Workers  Counter storage  Kernel
//	Sequential            1        stack            scalar
//	HeapBacked            W        heap (new)       scalar
//	PoolBacked            W        arena            scalar
//	PoolBackedVectorized  W        arena            batch of B lanes + scalar tail
//
// # Partitioning
//
// Each of the W workers receives floor(T/W) trials. By default the T mod W
// remainder is dropped and never sampled, so Result.Trials may be smaller
// than the request. WithPartition(PartitionSpread) hands the remainder out
// one trial at a time instead.
//
// # Concurrency
//
// Every worker runs on its own goroutine with an exclusively owned
// WorkerContext (random stream, arena, result slot). There is no shared
// mutable state, no locking and no cancellation: once started, a worker
// runs to completion and the dispatcher waits for all of them before
// summing the result slots in worker order.
//
// # Example
//
//	hits, err := montecarlo.Estimate(montecarlo.PoolBackedVectorized, 1_000_000, 4)
//	if err != nil {
//	    return err
//	}
//	pi := 4 * float64(hits) / 1_000_000
package montecarlo
