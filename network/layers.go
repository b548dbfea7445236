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

import "strings"

// Layers packs a linear comparator network into parallel layers: a
// comparator joins the earliest existing layer whose occupied-wire mask
// is disjoint from its own, or starts a new layer if none is.
// Comparators within a layer can run simultaneously, so len(Layers(nw))
// is the network's depth.
func Layers(nw Network) [][]Comparator {
	var layers [][]Comparator
	var masks []uint64

	for _, c := range nw {
		cmask := c.Mask()
		placed := false
		for i, m := range masks {
			if m&cmask == 0 {
				layers[i] = append(layers[i], c)
				masks[i] |= cmask
				placed = true
				break
			}
		}
		if !placed {
			layers = append(layers, []Comparator{c})
			masks = append(masks, cmask)
		}
	}
	return layers
}

// Depth returns len(Layers(nw)) without materializing the layer slices.
func Depth(nw Network) int {
	var masks []uint64
	for _, c := range nw {
		cmask := c.Mask()
		placed := false
		for i, m := range masks {
			if m&cmask == 0 {
				masks[i] |= cmask
				placed = true
				break
			}
		}
		if !placed {
			masks = append(masks, cmask)
		}
	}
	return len(masks)
}

// LayersString renders layers as "[(a,b)(c,d)][(e,f)]...", one
// parenthesized comparator list per bracketed layer, in execution order.
func LayersString(layers [][]Comparator) string {
	var b strings.Builder
	for _, layer := range layers {
		b.WriteByte('[')
		for _, c := range layer {
			b.WriteString(c.String())
		}
		b.WriteByte(']')
	}
	return b.String()
}
