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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBitParallelSortIdempotent(t *testing.T) {
	nw := Network{NewComparator(0, 1), NewComparator(1, 2), NewComparator(0, 1)}
	group := []uint64{0xF0F0, 0x0FF0, 0xAAAA}

	once := append([]uint64(nil), group...)
	applyBitParallelSort(once, nw)

	twice := append([]uint64(nil), once...)
	applyBitParallelSort(twice, nw)

	assert.Equal(t, once, twice)
}

func TestOracleAcceptsKnownN2Sorter(t *testing.T) {
	n := 2
	pc := NewPatternCluster(n)
	bank := BuildBank(n, pc.Outputs(), false)
	oracle := NewOracle(bank)

	assert.False(t, oracle.TestInitial(Network{}).Sorted)
	assert.True(t, oracle.TestInitial(Network{NewComparator(0, 1)}).Sorted)
}

func TestOracleRejectsNonSorter(t *testing.T) {
	n := 3
	pc := NewPatternCluster(n)
	bank := BuildBank(n, pc.Outputs(), false)
	oracle := NewOracle(bank)

	res := oracle.TestInitial(Network{NewComparator(0, 1)})
	require.False(t, res.Sorted)
}

// TestOracleBumpGroupSwapDecreasesIndex covers the g>1 branch of bump:
// a failure far from the front jumps to group g-ceil(g/8) via a whole
// group swap.
func TestOracleBumpGroupSwapDecreasesIndex(t *testing.T) {
	bank := &BitParallelBank{N: 1}
	for i := 0; i < 10; i++ {
		bank.Groups = append(bank.Groups, []uint64{uint64(i)})
		bank.NumReal = append(bank.NumReal, i)
	}
	oracle := NewOracle(bank)

	g, bit := 9, 50
	before := g*ParWordSize + bit
	oracle.bump(g, bit)

	target := g - (g+7)/8
	require.Equal(t, 7, target)
	after := target*ParWordSize + bit
	assert.Less(t, after, before)

	assert.Equal(t, uint64(7), bank.Groups[9][0], "group 9 should now hold what was at group 7")
	assert.Equal(t, uint64(9), bank.Groups[7][0], "group 7 should now hold what was at group 9")
	assert.Equal(t, 7, bank.NumReal[9])
	assert.Equal(t, 9, bank.NumReal[7])
}

// TestOracleBumpGroupOnePromotionDecreasesIndex covers the g==1 branch of
// bump, replaying spec.md's own f=100 example: a failure in group 1,
// lane 36 (index 100) is promoted into group 0's last column (index 63).
func TestOracleBumpGroupOnePromotionDecreasesIndex(t *testing.T) {
	bank := &BitParallelBank{
		N:       1,
		Groups:  [][]uint64{{0}, {uint64(1) << 36}},
		NumReal: []int{1, 1},
	}
	oracle := NewOracle(bank)

	g, bit := 1, 36
	before := g*ParWordSize + bit
	require.Equal(t, 100, before)

	oracle.bump(g, bit)

	after := 0*ParWordSize + (ParWordSize - 1)
	assert.Equal(t, 63, after)
	assert.Less(t, after, before)

	assert.Equal(t, uint64(0), patternAtLane(1, bank.Groups[1], bit), "failing lane must be cleared out of group 1")
	assert.Equal(t, uint64(1), patternAtLane(1, bank.Groups[0], ParWordSize-1), "failing pattern must now occupy group 0's last lane")
}

// TestOracleBumpGroupZeroLadderDecreasesIndex covers the g==0 branch of
// bump: a failure inside group 0 itself bubbles one column toward the
// front.
func TestOracleBumpGroupZeroLadderDecreasesIndex(t *testing.T) {
	bank := &BitParallelBank{
		N:       1,
		Groups:  [][]uint64{{uint64(1) << 5}},
		NumReal: []int{1},
	}
	oracle := NewOracle(bank)

	bit := 5
	before := bit
	oracle.bump(0, bit)
	after := bit - 1
	assert.Less(t, after, before)

	assert.Equal(t, uint64(0), patternAtLane(1, bank.Groups[0], bit), "failing lane must be cleared out of its old column")
	assert.Equal(t, uint64(1), patternAtLane(1, bank.Groups[0], bit-1), "failing pattern must now occupy the next column down")
}

// TestOracleBumpGroupZeroLadderNoOpAtFront confirms bump is a no-op once
// a failure already occupies group 0's front column.
func TestOracleBumpGroupZeroLadderNoOpAtFront(t *testing.T) {
	bank := &BitParallelBank{
		N:       1,
		Groups:  [][]uint64{{1}},
		NumReal: []int{1},
	}
	oracle := NewOracle(bank)
	oracle.bump(0, 0)
	assert.Equal(t, uint64(1), bank.Groups[0][0])
}

func TestOracleMatchesBruteForceForN4(t *testing.T) {
	n := 4
	pc := NewPatternCluster(n)
	bank := BuildBank(n, pc.Outputs(), false)
	oracle := NewOracle(bank)

	knownSorter := Network{
		NewComparator(0, 1), NewComparator(2, 3),
		NewComparator(0, 2), NewComparator(1, 3),
		NewComparator(1, 2),
	}
	assert.True(t, oracle.TestInitial(knownSorter).Sorted)

	reachable := bruteForceReachable(n, knownSorter)
	for _, w := range reachable {
		assert.True(t, isSorted(n, w))
	}
}
