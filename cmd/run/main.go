// This file is part of PocolVM - https://github.com/John-fried/PocolVM
//
// Copyright 2024 The PocolVM Authors
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

// Command run executes a PocolVM object file.
//
//	run [-limit N] [-debug] [-dump] <object.pob>
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/John-fried/PocolVM/config"
	"github.com/John-fried/PocolVM/diag"
	"github.com/John-fried/PocolVM/vm"
)

func main() {
	cfgPath := flag.String("config", "", "path to an optional TOML configuration file")
	limit := flag.Int64("limit", -1, "stop after executing this many instructions (-1: unbounded)")
	debug := flag.Bool("debug", false, "print PC, registers and stack on a fault")
	dump := flag.Bool("dump", false, "print final registers and stack on exit")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "run: expected exactly one object file argument")
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *limit >= 0 {
		cfg.Interpreter.DefaultBudget = int(*limit)
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()

	// print is the only opcode that writes output, and the interpreter's
	// fetch/decode/execute loop has no way to surface a write failure
	// through the same path it surfaces opcode faults. ErrWriter latches the
	// first write error instead, so it can be checked once after Run
	// returns rather than silently dropped.
	errw := diag.NewErrWriter(stdout)

	in, err := vm.Load(path, cfg, errw)
	if err != nil {
		stdout.Flush()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(vm.ExitCode(err))
	}

	runErr := in.Run()
	stdout.Flush()

	if *dump || (*debug && runErr != nil) {
		dumpState(in)
	}
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr)
		os.Exit(vm.ExitCode(runErr))
	}
	if errw.Err != nil {
		fmt.Fprintln(os.Stderr, errw.Err)
		os.Exit(vm.ExitCode(errw.Err))
	}
	if in.Exhausted() {
		fmt.Fprintf(os.Stderr, "instruction budget exhausted after %d instructions\n", in.InstructionCount())
		os.Exit(0)
	}
	os.Exit(0)
}

func dumpState(in *vm.Instance) {
	regs := in.Registers()
	fmt.Fprintf(os.Stderr, "pc=0x%x instructions=%d\nregisters: %v\nstack: %v\n",
		in.PC, in.InstructionCount(), regs, in.Stack())
}
