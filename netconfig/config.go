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

// Package netconfig reads the line-based text configuration format a
// search run is launched from: "#" comments, "key = value" lines, and
// two value kinds (non-negative integers, and parenthesised comparator
// lists like "(0,1),(2,3)").
package netconfig

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ajroetker/netsort/network"
)

// Config is the fully parsed, defaulted, and range-checked content of a
// configuration file.
type Config struct {
	Ninputs   int
	Symmetric bool

	RandomSeed uint64

	EscapeRate           int
	RestartRate          int
	MaxMutations         int
	ForceValidUphillStep bool

	PrefixType       network.PrefixType
	FixedPrefix      network.Network
	GreedyPrefixSize int

	InitialNetwork network.Network
	Postfix        network.Network

	Verbosity int

	Weights network.MutationWeights

	// Warnings collects non-fatal notices (e.g. "symmetry ignored for
	// odd N") produced while defaulting and range-checking the file.
	Warnings []string
}

// ToEvolverConfig builds the network package's EvolverConfig from c.
func (c *Config) ToEvolverConfig() network.EvolverConfig {
	return network.EvolverConfig{
		N:                    c.Ninputs,
		Symmetric:            c.Symmetric,
		RandomSeed:           c.RandomSeed,
		PrefixType:           c.PrefixType,
		FixedPrefix:          c.FixedPrefix,
		GreedyPrefixSize:     c.GreedyPrefixSize,
		InitialNetwork:       c.InitialNetwork,
		Postfix:              c.Postfix,
		EscapeRate:           c.EscapeRate,
		RestartRate:          c.RestartRate,
		MaxMutations:         c.MaxMutations,
		ForceValidUphillStep: c.ForceValidUphillStep,
		Weights:              c.Weights,
	}
}

// ParseFile reads and parses the configuration file at path.
func ParseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("netconfig: %w", err)
	}
	defer f.Close()
	return Parse(f, path)
}

type rawEntry struct {
	value string
	line  int
}

// Parse reads a configuration stream from r. name is used only to label
// error messages (typically the file path).
func Parse(r io.Reader, name string) (*Config, error) {
	raw := make(map[string]rawEntry)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, fmt.Errorf("netconfig: %s:%d: expected \"key = value\", got %q", name, lineNo, line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		if key == "" {
			return nil, fmt.Errorf("netconfig: %s:%d: empty key", name, lineNo)
		}
		if prev, dup := raw[key]; dup {
			return nil, fmt.Errorf("netconfig: %s:%d: duplicate key %q (first set at line %d)", name, lineNo, key, prev.line)
		}
		raw[key] = rawEntry{value: val, line: lineNo}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("netconfig: %s: %w", name, err)
	}

	cfg := &Config{
		MaxMutations:         1,
		ForceValidUphillStep: true,
		PrefixType:           network.PrefixNone,
		Weights:              network.DefaultMutationWeights(),
	}

	ninputs, ok, err := popInt(raw, name, "Ninputs")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("netconfig: %s: missing required key Ninputs", name)
	}
	if ninputs < 2 || ninputs > network.NMAX {
		return nil, fmt.Errorf("netconfig: %s: Ninputs %d out of range [2,%d]", name, ninputs, network.NMAX)
	}
	cfg.Ninputs = ninputs

	symInt, ok, err := popInt(raw, name, "Symmetric")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("netconfig: %s: missing required key Symmetric", name)
	}
	if symInt != 0 && symInt != 1 {
		return nil, fmt.Errorf("netconfig: %s: Symmetric must be 0 or 1, got %d", name, symInt)
	}
	cfg.Symmetric = symInt == 1
	if cfg.Symmetric && cfg.Ninputs%2 != 0 {
		cfg.Symmetric = false
		cfg.Warnings = append(cfg.Warnings, "symmetry ignored for odd N")
	}

	if v, ok, err := popInt(raw, name, "RandomSeed"); err != nil {
		return nil, err
	} else if ok {
		cfg.RandomSeed = uint64(v)
	}
	if v, ok, err := popInt(raw, name, "EscapeRate"); err != nil {
		return nil, err
	} else if ok {
		cfg.EscapeRate = v
	}
	if v, ok, err := popInt(raw, name, "RestartRate"); err != nil {
		return nil, err
	} else if ok {
		cfg.RestartRate = v
	}
	if v, ok, err := popInt(raw, name, "MaxMutations"); err != nil {
		return nil, err
	} else if ok {
		cfg.MaxMutations = v
	}
	if v, ok, err := popInt(raw, name, "ForceValidUphillStep"); err != nil {
		return nil, err
	} else if ok {
		cfg.ForceValidUphillStep = v != 0
	}
	if v, ok, err := popInt(raw, name, "PrefixType"); err != nil {
		return nil, err
	} else if ok {
		if v < 0 || v > 3 {
			return nil, fmt.Errorf("netconfig: %s: PrefixType must be 0..3, got %d", name, v)
		}
		cfg.PrefixType = network.PrefixType(v)
	}
	if v, ok, err := popInt(raw, name, "GreedyPrefixSize"); err != nil {
		return nil, err
	} else if ok {
		cfg.GreedyPrefixSize = v
	}
	if v, ok, err := popInt(raw, name, "Verbosity"); err != nil {
		return nil, err
	} else if ok {
		cfg.Verbosity = v
	}

	if v, ok, err := popNetwork(raw, name, "FixedPrefix"); err != nil {
		return nil, err
	} else if ok {
		cfg.FixedPrefix = v
	}
	if v, ok, err := popNetwork(raw, name, "InitialNetwork"); err != nil {
		return nil, err
	} else if ok {
		cfg.InitialNetwork = v.FilterValid(cfg.Ninputs)
	}
	if v, ok, err := popNetwork(raw, name, "Postfix"); err != nil {
		return nil, err
	} else if ok {
		cfg.Postfix = v
	}

	weightKeys := [...]string{
		"WeigthRemovePair", "WeigthSwapPairs", "WeigthReplacePair",
		"WeightCrossPairs", "WeightSwapIntersectingPairs", "WeightReplaceHalfPair",
	}
	anyPositive := false
	for i, key := range weightKeys {
		v, ok, err := popInt(raw, name, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			v = 1
		}
		if v < 0 {
			return nil, fmt.Errorf("netconfig: %s: %s must be non-negative, got %d", name, key, v)
		}
		cfg.Weights[i] = float64(v)
		if v > 0 {
			anyPositive = true
		}
	}
	if !anyPositive {
		return nil, fmt.Errorf("netconfig: %s: at least one mutation weight must be positive", name)
	}

	for key, e := range raw {
		return nil, fmt.Errorf("netconfig: %s:%d: unknown key %q", name, e.line, key)
	}

	return cfg, nil
}

func popInt(raw map[string]rawEntry, name, key string) (int, bool, error) {
	e, ok := raw[key]
	if !ok {
		return 0, false, nil
	}
	delete(raw, key)
	v, err := strconv.Atoi(e.value)
	if err != nil || v < 0 {
		return 0, false, fmt.Errorf("netconfig: %s:%d: %s must be a non-negative integer, got %q", name, e.line, key, e.value)
	}
	return v, true, nil
}

func popNetwork(raw map[string]rawEntry, name, key string) (network.Network, bool, error) {
	e, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	delete(raw, key)
	nw, err := parseNetworkLiteral(e.value)
	if err != nil {
		return nil, false, fmt.Errorf("netconfig: %s:%d: %s: %w", name, e.line, key, err)
	}
	return nw, true, nil
}

// parseNetworkLiteral parses a sequence of "(a,b)" pairs separated by
// commas and/or whitespace, e.g. "(0,1),(2,3)". a and b must each fit in
// a byte.
func parseNetworkLiteral(s string) (network.Network, error) {
	var nw network.Network
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ',' || s[i] == ' ' || s[i] == '\t') {
			i++
		}
		if i >= len(s) {
			break
		}
		if s[i] != '(' {
			return nil, fmt.Errorf("expected '(' at offset %d in %q", i, s)
		}
		close := strings.IndexByte(s[i:], ')')
		if close < 0 {
			return nil, fmt.Errorf("unterminated pair starting at offset %d in %q", i, s)
		}
		inner := s[i+1 : i+close]
		i += close + 1

		parts := strings.SplitN(inner, ",", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed pair %q", inner)
		}
		a, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		b, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil || a < 0 || a > 255 || b < 0 || b > 255 {
			return nil, fmt.Errorf("malformed pair %q: wire indices must be in [0,255]", inner)
		}
		nw = append(nw, network.Comparator{Lo: uint8(a), Hi: uint8(b)})
	}
	return nw, nil
}
