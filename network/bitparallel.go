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

// BitParallelBank is a prefix's surviving test patterns, packed so that
// up to ParWordSize of them can be evaluated against a candidate
// postfix network in one pass of plain uint64 bitwise arithmetic.
//
// Each Group holds exactly N words (one per wire): bit k of Group[w] is
// wire w's value for the k-th pattern assigned to that group. A
// postfix's compare-exchange truth table is applied directly to a
// Group's N words, sorting all ParWordSize packed patterns at once.
type BitParallelBank struct {
	N        int
	Groups   [][]uint64
	NumReal  []int // patterns actually meaningful in each group; the rest are padding
	NumTotal int   // surviving patterns before padding
}

// BuildBank packs outputs (the patterns surviving a prefix, as returned
// by PatternCluster.Outputs) into a BitParallelBank for n wires.
//
// Two filters are applied before packing, matching the original
// prefix-output reduction: patterns that are already sorted never need
// to be tested (a sorting network cannot un-sort them), and when
// symmetric is true and n is even only one of each pair {w, r} is kept,
// where r is the bit-reversal of w's complement (the numerically smaller
// one survives), since a symmetric postfix handles both together.
//
// outputs is packed in the order given, not sorted: callers that want
// the early-rejection benefit of a shuffled test order should shuffle
// outputs themselves before calling BuildBank.
func BuildBank(n int, outputs []uint64, symmetric bool) *BitParallelBank {
	filtered := make([]uint64, 0, len(outputs))
	for _, w := range outputs {
		w &= maskN(n)
		if isSorted(n, w) {
			continue
		}
		if symmetric && n%2 == 0 {
			rw := mirrorValue(n, ^w&maskN(n))
			if w > rw {
				continue
			}
		}
		filtered = append(filtered, w)
	}

	bank := &BitParallelBank{N: n, NumTotal: len(filtered)}
	for start := 0; start < len(filtered); start += ParWordSize {
		end := start + ParWordSize
		if end > len(filtered) {
			end = len(filtered)
		}
		chunk := filtered[start:end]

		group := make([]uint64, n)
		for k, w := range chunk {
			for wire := 0; wire < n; wire++ {
				if w&(uint64(1)<<uint(wire)) != 0 {
					group[wire] |= uint64(1) << uint(k)
				}
			}
		}
		// Pad unused lanes with an already-sorted pattern (all zero) so
		// they can never register as a failure.
		bank.Groups = append(bank.Groups, group)
		bank.NumReal = append(bank.NumReal, len(chunk))

		if len(chunk) < ParWordSize {
			break
		}
	}
	return bank
}

// isSorted reports whether the n-bit pattern w is already in sorted
// order (zeros occupying the low wires, ones the high wires).
func isSorted(n int, w uint64) bool {
	w &= maskN(n)
	z := 0
	for z < n && w&(uint64(1)<<uint(z)) == 0 {
		z++
	}
	want := maskN(n) &^ ((uint64(1) << uint(z)) - 1)
	return w == want
}

// mirrorValue reverses the n-wire bit order of w: bit i of the result is
// bit (n-1-i) of w.
func mirrorValue(n int, w uint64) uint64 {
	var out uint64
	for i := 0; i < n; i++ {
		if w&(uint64(1)<<uint(i)) != 0 {
			out |= uint64(1) << uint(n-1-i)
		}
	}
	return out
}
