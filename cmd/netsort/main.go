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

// Command netsort searches for small comparator networks that sort
// every binary input of a given width, reporting each Pareto-optimal
// (size, depth) improvement as it is found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ajroetker/netsort/netconfig"
	"github.com/ajroetker/netsort/network"
)

const version = "netsort/0.1"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <config-file>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := netconfig.ParseFile(configPath)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings {
		log.Print(w)
	}

	logger := network.NewLogger(cfg.Verbosity)

	ev, err := network.New(cfg.ToEvolverConfig())
	if err != nil {
		return err
	}
	if err := ev.Bootstrap(); err != nil {
		return err
	}

	var improvements uint64
	lastReport := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return ev.Run(ctx, func(res network.StepResult, entry network.FrontierEntry) {
		improvements++
		full := ev.Full()
		layers := network.Layers(full)
		fmt.Printf(
			"N=%d size=%d depth=%d prefix=%d postfix=%d version=%s escape_rate=%d network=%s\n",
			cfg.Ninputs, entry.Size, entry.Depth, len(ev.Prefix()), len(cfg.Postfix), version,
			cfg.EscapeRate, network.LayersString(layers),
		)
		fmt.Printf("frontier=%s\n", ev.Frontier().String())

		if cfg.Verbosity >= 3 && time.Since(lastReport) > 5*time.Second {
			logger.Progress("improvements=%d", improvements)
			lastReport = time.Now()
		}
	})
}
