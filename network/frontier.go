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
	"fmt"
	"sort"
	"strings"
)

// FrontierEntry records one Pareto-optimal network: no other recorded
// network has both size <= Size and depth <= Depth with at least one
// strictly smaller.
type FrontierEntry struct {
	Size    int
	Depth   int
	Network Network
}

// FrontierTracker maintains the orthogonal convex hull (Pareto frontier)
// of (size, depth) pairs seen so far, keyed by the best network found at
// each depth.
type FrontierTracker struct {
	entries []FrontierEntry
}

// NewFrontierTracker returns an empty tracker.
func NewFrontierTracker() *FrontierTracker {
	return &FrontierTracker{}
}

// Improved considers candidate for admission to the frontier. It is
// admitted (and Improved returns true) iff no existing entry dominates
// it — i.e. no entry has size <= candidate's size and depth <= candidate's
// depth. On admission, any existing entries that candidate itself
// dominates are removed.
func (ft *FrontierTracker) Improved(nw Network) bool {
	size := len(nw)
	depth := Depth(nw)

	for _, e := range ft.entries {
		if e.Size <= size && e.Depth <= depth {
			return false
		}
	}

	kept := ft.entries[:0:0]
	for _, e := range ft.entries {
		if size <= e.Size && depth <= e.Depth {
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, FrontierEntry{Size: size, Depth: depth, Network: nw.Clone()})
	sort.Slice(kept, func(i, j int) bool { return kept[i].Size < kept[j].Size })
	ft.entries = kept
	return true
}

// Entries returns the current frontier, sorted by increasing size (and
// therefore decreasing depth).
func (ft *FrontierTracker) Entries() []FrontierEntry {
	out := make([]FrontierEntry, len(ft.entries))
	copy(out, ft.entries)
	return out
}

// Clear empties the frontier.
func (ft *FrontierTracker) Clear() {
	ft.entries = nil
}

func (ft *FrontierTracker) String() string {
	var b strings.Builder
	for i, e := range ft.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "size=%d depth=%d", e.Size, e.Depth)
	}
	return b.String()
}
