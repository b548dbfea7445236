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
	"crypto/rand"
	"encoding/binary"
)

// systemEntropySeed returns a random 64-bit seed drawn from the OS CSPRNG,
// used when a config's RandomSeed key is 0 ("seed from system entropy").
func systemEntropySeed() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand.Read on a supported OS does not fail; fall back to
		// a fixed, clearly-non-secret seed rather than panicking.
		return 0x2545f4914f6cdd1d
	}
	return binary.LittleEndian.Uint64(buf[:])
}
