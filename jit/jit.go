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

// Package jit describes the interface a native code generator would have to
// satisfy to sit behind the interpreter as an alternate execution strategy.
// No backend ships in this module: compiling PocolVM object code to native
// machine code is out of scope here, but the interpreter's fetch/decode
// boundary is shaped so that a Compiler could be plugged in without changing
// callers of vm.Load or vm.Instance.Run.
package jit

// Compiler turns a region of PocolVM object code starting at entry into a
// CompiledProgram. A real implementation would walk the code once, recover
// basic blocks from jmp targets, and lower each block to native
// instructions; none of that lives here.
type Compiler interface {
	Compile(code []byte, entry uint64) (CompiledProgram, error)
}

// CompiledProgram is a unit of previously compiled code ready to run without
// going through the fetch/decode loop in package vm.
type CompiledProgram interface {
	// Run executes the compiled program against the given register file and
	// linear memory, returning the register file's final state.
	Run(memory []byte, regs [8]uint64) ([8]uint64, error)
}
