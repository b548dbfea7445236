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

package network

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvolverN2FindsSingleComparatorSorter(t *testing.T) {
	ev, err := New(EvolverConfig{
		N:            2,
		PrefixType:   PrefixNone,
		RandomSeed:   1,
		MaxMutations: 1,
	})
	require.NoError(t, err)
	require.NoError(t, ev.Bootstrap())

	for i := 0; i < 1000; i++ {
		if _, err := ev.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		entries := ev.Frontier().Entries()
		for _, e := range entries {
			if e.Size == 1 && e.Depth == 1 {
				return
			}
		}
	}
	t.Fatalf("evolver did not reach the known (1,1) optimum for N=2; frontier=%s", ev.Frontier().String())
}

func TestEvolverBootstrapProducesValidSorter(t *testing.T) {
	ev, err := New(EvolverConfig{
		N:          5,
		PrefixType: PrefixNone,
		RandomSeed: 42,
	})
	require.NoError(t, err)
	require.NoError(t, ev.Bootstrap())

	full := ev.Full()
	reachable := bruteForceReachable(5, full)
	for _, w := range reachable {
		require.True(t, isSorted(5, w), "pattern %b not sorted by bootstrapped network", w)
	}
}
