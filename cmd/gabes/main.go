//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Command gabes runs one side of a two-party garbled-circuit secure
// function evaluation (§1, §2): the garbler builds and sends a
// garbled circuit, the evaluator runs it, and both sides compare
// output labels to agree on the plaintext result, without either
// learning the other's private input bits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gabes-mpc/gabes/circuit"
	"github.com/gabes-mpc/gabes/internal/env"
	"github.com/gabes-mpc/gabes/p2p"
	"github.com/gabes-mpc/gabes/protocol"
)

// idList accumulates repeated "-i ID" flag occurrences in order
// (§6: "-i ID [ID…]").
type idList []string

func (l *idList) String() string {
	return strings.Join(*l, ",")
}

func (l *idList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "stats" {
		statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)
		file := statsFlags.String("c", "", "circuit file")
		dot := statsFlags.String("dot", "", "write a Graphviz dot rendering of the circuit to this file")
		statsFlags.Parse(os.Args[2:])
		if err := runStats(*file, *dot); err != nil {
			log.Print(err)
			os.Exit(exitCode(err))
		}
		return
	}

	var garbler, evaluator bool
	var fCl, fPP, fGRR3, fFree, fFle, fHalf bool
	var bits, file, addr string
	var ids idList

	flag.BoolVar(&garbler, "g", false, "run as garbler")
	flag.BoolVar(&garbler, "garbler", false, "run as garbler")
	flag.BoolVar(&evaluator, "e", false, "run as evaluator")
	flag.BoolVar(&evaluator, "evaluator", false, "run as evaluator")
	flag.StringVar(&bits, "b", "", "input bitstring (digits '0'/'1')")
	flag.Var(&ids, "i", "identifier of a wire this party owns (repeatable)")
	flag.StringVar(&file, "c", "", "circuit file (garbler only)")
	flag.StringVar(&addr, "a", "", "peer address (HOST:PORT)")
	flag.BoolVar(&fCl, "cl", false, "classical scheme")
	flag.BoolVar(&fPP, "pp", false, "point-and-permute scheme")
	flag.BoolVar(&fGRR3, "grr3", false, "GRR3 scheme")
	flag.BoolVar(&fFree, "free", false, "Free-XOR scheme")
	flag.BoolVar(&fFle, "fle", false, "FleXOR scheme")
	flag.BoolVar(&fHalf, "half", false, "Half-Gates scheme")
	flag.Parse()

	err := run(runConfig{
		garbler:   garbler,
		evaluator: evaluator,
		bits:      bits,
		ids:       ids,
		file:      file,
		addr:      addr,
		scheme:    schemeFlag{fCl, fPP, fGRR3, fFree, fFle, fHalf},
	})
	if err != nil {
		log.Print(err)
		if _, ok := err.(*usageError); ok {
			flag.Usage()
		}
		os.Exit(exitCode(err))
	}
}

type schemeFlag struct {
	cl, pp, grr3, free, fle, half bool
}

type runConfig struct {
	garbler, evaluator bool
	bits               string
	ids                []string
	file               string
	addr               string
	scheme             schemeFlag
}

func run(cfg runConfig) error {
	if cfg.garbler == cfg.evaluator {
		return usageErrorf("exactly one of -g/-garbler or -e/-evaluator is required")
	}
	if len(cfg.addr) == 0 {
		return usageErrorf("-a HOST:PORT is required")
	}
	if len(cfg.bits) == 0 {
		return usageErrorf("-b BITS is required")
	}
	if len(cfg.ids) != len(cfg.bits) {
		return usageErrorf("-b has %d digits but %d -i identifiers were given",
			len(cfg.bits), len(cfg.ids))
	}
	ownedInputs := make(map[string]byte, len(cfg.ids))
	for i, id := range cfg.ids {
		switch cfg.bits[i] {
		case '0':
			ownedInputs[id] = 0
		case '1':
			ownedInputs[id] = 1
		default:
			return usageErrorf("-b: invalid digit %q at position %d", cfg.bits[i], i)
		}
	}

	scheme, err := resolveScheme(cfg.scheme)
	if err != nil {
		return err
	}

	econfig := &env.Config{}

	if cfg.garbler {
		if len(cfg.file) == 0 {
			return usageErrorf("-c FILE is required for the garbler")
		}
		circ, err := circuit.Parse(cfg.file)
		if err != nil {
			return err
		}
		fmt.Printf("Circuit: %d gates, %d inputs\n", circ.NumGates(), len(circ.InputIdentifiers()))

		ln, err := p2p.Listen(cfg.addr)
		if err != nil {
			return err
		}
		defer ln.Close()
		fmt.Printf("Listening at %s\n", cfg.addr)

		conn, err := p2p.Accept(ln)
		if err != nil {
			return err
		}
		defer conn.Close()

		result, err := protocol.Garbler(conn, circ, scheme, ownedInputs, econfig)
		if err != nil {
			return err
		}
		fmt.Printf("Result: %d\n", result)
		return nil
	}

	conn, err := p2p.Dial(cfg.addr, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	result, err := protocol.Evaluator(conn, scheme, ownedInputs, econfig)
	if err != nil {
		return err
	}
	fmt.Printf("Result: %d\n", result)
	return nil
}

// resolveScheme picks the scheme named by at most one of the scheme
// flags, defaulting to classical (§6).
func resolveScheme(f schemeFlag) (circuit.Scheme, error) {
	selected := map[string]bool{
		"classical": f.cl,
		"pp":        f.pp,
		"grr3":      f.grr3,
		"freexor":   f.free,
		"flexor":    f.fle,
		"halfgates": f.half,
	}
	var name string
	count := 0
	for n, set := range selected {
		if set {
			name = n
			count++
		}
	}
	if count > 1 {
		return nil, usageErrorf("at most one scheme flag may be set")
	}
	if count == 0 {
		name = "classical"
	}
	return circuit.LookupScheme(name)
}
