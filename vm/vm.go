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

// Package vm implements the PocolVM register/stack interpreter: a linear
// byte-addressed memory, a fixed-size uint64 data stack, and eight
// general-purpose 64-bit registers, driven by the fetch/decode/execute loop
// in run.go against the object format defined by package obj.
package vm

import "io"

// Inspectable is the read-only view an external debugger or monitoring
// collaborator needs into a running Instance, without granting it the
// ability to mutate interpreter state. PocolVM implements no debugger of its
// own (see package jit and DESIGN.md); this interface is the contract such a
// tool would be written against.
type Inspectable interface {
	Registers() [NumRegisters]uint64
	Stack() []uint64
	StackDepth() int
	IsHalted() bool
	Exhausted() bool
	InstructionCount() int64
}

var _ Inspectable = (*Instance)(nil)

// Instance is one interpreter instance. The zero value is not usable; build
// one with New or Load.
type Instance struct {
	Memory []byte
	PC     uint64
	Regs   [NumRegisters]uint64
	Halted bool

	stack []uint64
	sp    int

	budget    int64 // total instructions Run may execute; negative means unbounded
	insCount  int64
	exhausted bool

	out io.Writer
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// Output directs the print opcode's output to w. Defaults to io.Discard.
func Output(w io.Writer) Option {
	return func(in *Instance) { in.out = w }
}

// MemorySize fixes the size in bytes of the linear memory. Defaults to
// 640,000, matching the interpreter's mandated default.
func MemorySize(n int) Option {
	return func(in *Instance) { in.Memory = make([]byte, n) }
}

// StackSize fixes the number of slots in the data stack. Defaults to 1024.
func StackSize(n int) Option {
	return func(in *Instance) { in.stack = make([]uint64, n) }
}

// Budget sets the number of instructions Run will execute before stopping
// cooperatively. A negative n (the default) means unbounded.
func Budget(n int64) Option {
	return func(in *Instance) { in.budget = n }
}

// New builds an Instance with the given options applied over the defaults.
// Callers that need to load an object file directly should use Load instead;
// New is for tests and for embedding the interpreter in another program.
func New(opts ...Option) *Instance {
	in := &Instance{
		Memory: make([]byte, 640_000),
		stack:  make([]uint64, 1024),
		budget: -1,
		out:    io.Discard,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Registers returns a copy of the register file, for inspection by tests and
// the --dump runner flag.
func (in *Instance) Registers() [NumRegisters]uint64 {
	return in.Regs
}

// Stack returns the live portion of the data stack, bottom first.
func (in *Instance) Stack() []uint64 {
	out := make([]uint64, in.sp)
	copy(out, in.stack[:in.sp])
	return out
}

// StackDepth reports the number of values currently on the data stack.
func (in *Instance) StackDepth() int {
	return in.sp
}

// IsHalted reports whether the halt opcode has executed.
func (in *Instance) IsHalted() bool {
	return in.Halted
}

// Exhausted reports whether Run stopped because its instruction budget ran
// out rather than because the program halted or faulted. This is not an
// error condition: the caller decides whether to resume, report progress,
// or give up.
func (in *Instance) Exhausted() bool {
	return in.exhausted
}

// InstructionCount returns the number of instructions executed so far.
func (in *Instance) InstructionCount() int64 {
	return in.insCount
}

func (in *Instance) push(v uint64) error {
	if in.sp >= len(in.stack) {
		return newError(StackOverflow, in.PC, "stack depth %d", len(in.stack))
	}
	in.stack[in.sp] = v
	in.sp++
	return nil
}

func (in *Instance) pop() (uint64, error) {
	if in.sp <= 0 {
		return 0, newError(StackUnderflow, in.PC, "")
	}
	in.sp--
	return in.stack[in.sp], nil
}
