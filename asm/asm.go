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

package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/John-fried/PocolVM/diag"
	"github.com/John-fried/PocolVM/lexer"
	"github.com/John-fried/PocolVM/obj"
	"github.com/John-fried/PocolVM/symtab"
	"github.com/John-fried/PocolVM/token"
	"github.com/John-fried/PocolVM/vm"
)

// Assemble compiles the assembly source read from r into a PocolVM object
// file and returns its bytes.
//
// name is used only to attribute diagnostics to a source (typically the
// input file name). Assembly runs in two passes over the same source text:
// the first walks every statement to learn each label's byte offset without
// emitting any code, the second walks it again now that every label address
// is known, emitting the final header and code region. Both passes make
// identical sizing decisions for every statement, so the offsets pass one
// records match where pass two actually places the code.
//
// Assemble never stops at the first error: bad statements are recorded and
// scanning continues, so a single run reports every problem in the source.
func Assemble(name string, r io.Reader) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	syms := symtab.New()
	var diags diag.List

	pass1 := newParser(name, syms, &diags)
	pass1.run(lexer.New(name, src))

	entry := syms.Find(symtab.Label, obj.EntryLabel)
	if entry == nil {
		diags.Add(name, token.Position{}, "missing entry point: no %q label defined", obj.EntryLabel)
	}

	// Pass 2 still runs even if pass 1 already found problems: it surfaces
	// its own class of errors (undefined labels, out-of-range registers)
	// that pass 1 has no way to see, and a single Assemble call should
	// report everything wrong with the source, not just the first pass's
	// complaints.
	emitter := obj.NewEmitter()
	pass2 := newParser(name, syms, &diags)
	pass2.emit = emitter
	pass2.run(lexer.New(name, src))

	if len(diags) > 0 {
		return nil, diags
	}

	header := obj.Header{
		Magic:      obj.Magic,
		Version:    obj.Version,
		EntryPoint: uint64(entry.PC),
		CodeSize:   uint64(emitter.Len() - obj.HeaderSize),
	}
	emitter.PatchHeader(header)
	return emitter.Bytes(), nil
}

// Disassemble writes a single decoded instruction starting at code[pc] to w,
// where code is the full object file (header included, so pc is a byte
// offset consistent with jmp targets) and returns the offset of the
// following instruction.
func Disassemble(code []byte, pc int, w io.Writer) (next int) {
	if pc < 0 || pc >= len(code) {
		io.WriteString(w, "???")
		return pc
	}
	opcode := vm.Opcode(code[pc])
	def, mnemonic := lookupOpcode(opcode)
	if mnemonic == "" {
		fmt.Fprintf(w, "??? (opcode 0x%02x)", code[pc])
		return pc + 1
	}
	io.WriteString(w, mnemonic)
	pc++

	if def.Arity == 0 {
		return pc
	}
	if pc >= len(code) {
		io.WriteString(w, " ???")
		return pc
	}
	op1Type, op2Type := vm.SplitDescriptor(code[pc])
	pc++

	types := []vm.OperandType{op1Type}
	if def.Arity > 1 {
		types = append(types, op2Type)
	}
	for i, t := range types {
		if i == 0 {
			io.WriteString(w, " ")
		} else {
			io.WriteString(w, ", ")
		}
		switch t {
		case vm.OperandRegister:
			if pc >= len(code) {
				io.WriteString(w, "???")
				break
			}
			fmt.Fprintf(w, "r%d", code[pc])
			pc++
		case vm.OperandImmediate:
			if pc+8 > len(code) {
				io.WriteString(w, "???")
				break
			}
			var v uint64
			for j := 0; j < 8; j++ {
				v |= uint64(code[pc+j]) << (8 * j)
			}
			io.WriteString(w, strconv.FormatUint(v, 10))
			pc += 8
		default:
			io.WriteString(w, "-")
		}
	}
	return pc
}

func lookupOpcode(op vm.Opcode) (vm.InstDef, string) {
	for mnemonic, def := range vm.InstTable {
		if def.Opcode == op {
			return def, mnemonic
		}
	}
	return vm.InstDef{}, ""
}
