// Copyright 2025 netsort Authors
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

// Package network searches for small comparator networks that sort
// every binary input of a given width.
//
// A comparator network is a fixed schedule of two-wire operations, each
// taking wires (i,j) with i<j and replacing their values with (min, max).
// By the zero-one principle, a network sorts every input of width N iff
// it sorts every binary 0/1 input of width N, so the search only ever
// has to reason about N-bit words.
//
// PatternCluster factors a partial network's reachable pattern set into
// independent clusters to keep that reasoning tractable past N=16.
// BitParallelBank and BitParallelOracle turn the surviving patterns into
// a packed test bank and evaluate a candidate network against all of it
// in batches of 64 using ordinary 64-bit bitwise arithmetic. Evolver
// drives an evolutionary search over that oracle, and FrontierTracker
// records the Pareto-optimal (size, depth) pairs discovered along the
// way.
package network
