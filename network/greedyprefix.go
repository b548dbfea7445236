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

import "math/rand/v2"

// BuildGreedyPrefix grows a comparator prefix for n wires one comparator
// at a time, always appending the alphabet entry that shrinks the
// PatternCluster's output count the most, stopping once size comparators
// have been placed or no candidate strictly improves on the current
// output count. Each round considers the alphabet in a freshly shuffled
// order so that ties in output count are broken randomly rather than by
// wire index.
//
// When symmetric is true, candidates are drawn from the canonical
// (mirror-reduced) alphabet and every accepted comparator that is not its
// own mirror is immediately followed by its mirror, so the returned
// prefix is itself symmetric.
func BuildGreedyPrefix(n, size int, symmetric bool, rng *rand.Rand) Network {
	alphabet := Alphabet(n, symmetric)
	pc := NewPatternCluster(n)

	var prefix Network
	for len(prefix) < size {
		if rng != nil {
			rng.Shuffle(len(alphabet), func(i, j int) { alphabet[i], alphabet[j] = alphabet[j], alphabet[i] })
		}
		current := pc.OutputCount()
		bestIdx := -1
		var bestCount uint64

		for i, c := range alphabet {
			trial := pc.Clone()
			trial.Ingest(c)
			if symmetric && !IsSelfMirror(n, c) {
				trial.Ingest(Mirror(n, c))
			}
			count := trial.OutputCount()
			if bestIdx == -1 || count < bestCount {
				bestIdx = i
				bestCount = count
			}
		}

		if bestIdx == -1 || bestCount >= current {
			break
		}

		chosen := alphabet[bestIdx]
		pc.Ingest(chosen)
		prefix = append(prefix, chosen)
		if symmetric && !IsSelfMirror(n, chosen) {
			mir := Mirror(n, chosen)
			pc.Ingest(mir)
			prefix = append(prefix, mir)
		}
	}

	return prefix
}
