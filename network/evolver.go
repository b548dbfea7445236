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
	"context"
	"fmt"
	"math/rand/v2"
)

// PrefixType selects how an Evolver's fixed prefix is obtained.
type PrefixType int

const (
	PrefixNone PrefixType = iota
	PrefixFixed
	PrefixGreedy
	PrefixFixedThenGreedy
)

// EvolverConfig holds every search knob spec.md's configuration grammar
// exposes for a single search run; Verbosity, which only affects
// reporting, is not part of it.
type EvolverConfig struct {
	N         int
	Symmetric bool

	RandomSeed uint64 // 0 means "seed from system entropy"

	PrefixType       PrefixType
	FixedPrefix      Network
	GreedyPrefixSize int

	InitialNetwork Network
	Postfix        Network

	EscapeRate           int // 0 disables; otherwise probability 1/EscapeRate per iteration
	RestartRate          int // 0 disables; otherwise probability 1/RestartRate per iteration
	MaxMutations         int
	ForceValidUphillStep bool

	Weights MutationWeights
}

// Evolver runs the mutate/test/accept/escape/restart search loop over a
// bit-parallel oracle derived from a fixed prefix, holding a single
// current core network C (the part of the network actually being
// searched) and a frontier of every Pareto-optimal full network
// discovered.
type Evolver struct {
	cfg EvolverConfig
	n   int

	prefix   Network
	postfix  Network
	alphabet Network // symmetry-aware admissible comparators; shared by Replace and the escape step

	bank   *BitParallelBank
	oracle *BitParallelOracle
	rng    *rand.Rand

	frontier *FrontierTracker
	core     Network
}

// New validates cfg, builds the prefix and bit-parallel bank/oracle, and
// returns an Evolver ready for Bootstrap.
func New(cfg EvolverConfig) (*Evolver, error) {
	if cfg.N < 2 || cfg.N > NMAX {
		return nil, fmt.Errorf("network: Ninputs %d out of range [2,%d]", cfg.N, NMAX)
	}
	if cfg.Symmetric && cfg.N%2 != 0 {
		cfg.Symmetric = false
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = systemEntropySeed()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	prefix, err := buildPrefix(cfg, rng)
	if err != nil {
		return nil, err
	}

	pc := NewPatternCluster(cfg.N)
	for _, c := range prefix {
		pc.Ingest(c)
	}
	outputs := pc.Outputs()
	rng.Shuffle(len(outputs), func(i, j int) { outputs[i], outputs[j] = outputs[j], outputs[i] })
	bank := BuildBank(cfg.N, outputs, cfg.Symmetric)

	weights := cfg.Weights
	if weights == (MutationWeights{}) {
		weights = DefaultMutationWeights()
	}
	cfg.Weights = weights

	return &Evolver{
		cfg:      cfg,
		n:        cfg.N,
		prefix:   prefix,
		postfix:  cfg.Postfix.FilterValid(cfg.N),
		alphabet: Alphabet(cfg.N, cfg.Symmetric),
		bank:     bank,
		oracle:   NewOracle(bank),
		rng:      rng,
		frontier: NewFrontierTracker(),
	}, nil
}

func buildPrefix(cfg EvolverConfig, rng *rand.Rand) (Network, error) {
	switch cfg.PrefixType {
	case PrefixNone:
		return nil, nil
	case PrefixFixed:
		return cfg.FixedPrefix.FilterValid(cfg.N), nil
	case PrefixFixedThenGreedy:
		fixed := cfg.FixedPrefix.FilterValid(cfg.N)
		pc := NewPatternCluster(cfg.N)
		for _, c := range fixed {
			pc.Ingest(c)
		}
		grown := growGreedyFrom(pc, cfg.N, cfg.GreedyPrefixSize-len(fixed), cfg.Symmetric, rng)
		return Concat(fixed, grown), nil
	case PrefixGreedy:
		return BuildGreedyPrefix(cfg.N, cfg.GreedyPrefixSize, cfg.Symmetric, rng), nil
	default:
		return nil, fmt.Errorf("network: unknown PrefixType %d", cfg.PrefixType)
	}
}

// growGreedyFrom runs the same greedy selection BuildGreedyPrefix uses,
// starting from an already-ingested cluster state instead of from reset,
// so a fixed prefix can be greedily extended.
func growGreedyFrom(pc *PatternCluster, n, size int, symmetric bool, rng *rand.Rand) Network {
	if size <= 0 {
		return nil
	}
	alphabet := Alphabet(n, symmetric)
	var added Network
	for len(added) < size {
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
				bestIdx, bestCount = i, count
			}
		}
		if bestIdx == -1 || bestCount >= current {
			break
		}
		chosen := alphabet[bestIdx]
		pc.Ingest(chosen)
		added = append(added, chosen)
		if symmetric && !IsSelfMirror(n, chosen) {
			mir := Mirror(n, chosen)
			pc.Ingest(mir)
			added = append(added, mir)
		}
	}
	return added
}

// Prefix returns the fixed prefix this Evolver searches behind.
func (e *Evolver) Prefix() Network { return e.prefix.Clone() }

// Core returns the current accepted core network.
func (e *Evolver) Core() Network { return e.core.Clone() }

// Tail returns the symmetric expansion of the core concatenated with the
// fixed postfix: the part of the full network tested against the bank.
func (e *Evolver) Tail() Network {
	return Concat(SymmetricExpand(e.n, e.core), e.postfix)
}

// Full returns the complete network currently accepted: prefix + tail.
func (e *Evolver) Full() Network {
	return Concat(e.prefix, e.Tail())
}

// Frontier returns the tracker accumulating every Pareto-optimal full
// network discovered so far.
func (e *Evolver) Frontier() *FrontierTracker { return e.frontier }

// Bootstrap establishes an initial core for which prefix+tail is a
// sorter. It starts from cfg.InitialNetwork (malformed pairs filtered)
// and keeps appending comparators, using the initial-phase oracle's
// failing pattern to pick a comparator that provably fixes an inversion
// in that pattern when the postfix is empty, or a uniform alphabet
// sample otherwise.
func (e *Evolver) Bootstrap() error {
	core := e.cfg.InitialNetwork.FilterValid(e.n)
	alphabet := Alphabet(e.n, false)

	limit := 4000 * (e.n + 1)
	for attempt := 0; attempt < limit; attempt++ {
		res := e.oracle.TestInitial(Concat(SymmetricExpand(e.n, core), e.postfix))
		if res.Sorted {
			e.core = core
			e.frontier.Improved(e.Full())
			return nil
		}

		if len(e.postfix) == 0 {
			pattern := res.InputPattern
			found := false
			for try := 0; try < 4*len(alphabet)+8; try++ {
				c := alphabet[e.rng.IntN(len(alphabet))]
				fixes := pattern&(uint64(1)<<c.Lo) != 0 && pattern&(uint64(1)<<c.Hi) == 0
				if !fixes && e.cfg.Symmetric {
					m := Mirror(e.n, c)
					fixes = pattern&(uint64(1)<<m.Lo) != 0 && pattern&(uint64(1)<<m.Hi) == 0
				}
				if fixes {
					core = append(core, c)
					found = true
					break
				}
			}
			if !found {
				core = append(core, alphabet[e.rng.IntN(len(alphabet))])
			}
		} else {
			core = append(core, alphabet[e.rng.IntN(len(alphabet))])
		}
	}
	return fmt.Errorf("network: bootstrap failed to find a sorting network for n=%d within %d comparators", e.n, limit)
}

// StepResult reports what a single Step call did.
type StepResult struct {
	Accepted  bool
	Improved  bool
	Escaped   bool
	Restarted bool
}

// Step runs one iteration of the main loop: mutate a copy of the core,
// test it, adopt it on success, then independently roll for an escape
// perturbation and a restart.
func (e *Evolver) Step() (StepResult, error) {
	var res StepResult

	maxMut := e.cfg.MaxMutations
	if maxMut < 1 {
		maxMut = 1
	}
	m := 1
	if maxMut > 1 {
		m = 1 + e.rng.IntN(maxMut)
	}

	cPrime := e.core.Clone()
	applied := 0
	for tries := 0; applied < m && tries < 50*m; tries++ {
		nw, _, ok := attemptMutation(e.n, cPrime, e.cfg.Weights, e.alphabet, e.rng)
		if ok {
			cPrime = nw
			applied++
		}
	}

	candidate := Concat(SymmetricExpand(e.n, cPrime), e.postfix)
	if len(candidate) > 0 && e.oracle.Test(candidate).Sorted {
		e.core = cPrime
		res.Accepted = true
		res.Improved = e.frontier.Improved(e.Full())
	}

	if e.cfg.EscapeRate > 0 && e.rng.IntN(e.cfg.EscapeRate) == 0 {
		e.escapeStep()
		res.Escaped = true
	}

	if e.cfg.RestartRate > 0 && e.rng.IntN(e.cfg.RestartRate) == 0 {
		if err := e.restart(); err != nil {
			return res, err
		}
		res.Restarted = true
	}

	return res, nil
}

// escapeStep perturbs the core directly, possibly breaking its
// correctness so that later mutations are required to recover it.
func (e *Evolver) escapeStep() {
	a := e.rng.IntN(len(e.core) + 1)
	c := e.alphabet[e.rng.IntN(len(e.alphabet))]

	inLastLayer := true
	for k := a; k < len(e.core); k++ {
		if shareWire(e.core[k], c) {
			inLastLayer = false
			break
		}
	}

	out := make(Network, 0, len(e.core)+1)
	out = append(out, e.core[:a]...)
	if !inLastLayer && e.cfg.ForceValidUphillStep {
		out = append(out, e.core[a])
	} else {
		out = append(out, c)
	}
	out = append(out, e.core[a:]...)
	e.core = out
}

// restart rebuilds the prefix (for greedy/hybrid prefix types) and its
// bank, then bootstraps a fresh core.
func (e *Evolver) restart() error {
	prefix, err := buildPrefix(e.cfg, e.rng)
	if err != nil {
		return err
	}
	e.prefix = prefix

	pc := NewPatternCluster(e.n)
	for _, c := range prefix {
		pc.Ingest(c)
	}
	outputs := pc.Outputs()
	e.rng.Shuffle(len(outputs), func(i, j int) { outputs[i], outputs[j] = outputs[j], outputs[i] })
	e.bank = BuildBank(e.n, outputs, e.cfg.Symmetric)
	e.oracle = NewOracle(e.bank)
	e.core = nil

	return e.Bootstrap()
}

// Run drives Step in a loop until ctx is cancelled, invoking onImprove
// each time a step both gets accepted and extends the frontier, with the
// frontier entry of the newly accepted full network.
func (e *Evolver) Run(ctx context.Context, onImprove func(StepResult, FrontierEntry)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		res, err := e.Step()
		if err != nil {
			return err
		}
		if res.Improved && onImprove != nil {
			full := e.Full()
			onImprove(res, FrontierEntry{Size: len(full), Depth: Depth(full), Network: full})
		}
	}
}
