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

// Package asm assembles PocolVM assembly source into the object format
// defined by package obj, and disassembles object code back to text.
//
// Supported opcodes:
//
//	mnemonic  opcode  operands             effect
//	halt      0       (none)               stop execution
//	push      1       src                  push src onto the data stack
//	pop       2       reg                  pop the stack into reg
//	add       3       reg, src             reg += src
//	jmp       4       target               jump to target (a byte offset)
//	print     5       src                  print src as unsigned decimal
//
// An operand written as r0 through r7 is a register reference; any other
// operand is an integer literal or a label name, both encoded as an
// immediate value. pop and add additionally require their first operand to
// be a register: there is nowhere else for the result to go.
//
// Labels:
//
// A label is defined by suffixing an identifier with a colon and used
// unadorned wherever an operand is expected:
//
//	_start:
//		push 1
//		push 2
//		add r0, r1
//		jmp done
//		push 99   ; never reached
//	done:
//		print r0
//		halt
//
// Every object requires exactly one "_start" label: it becomes the entry
// point recorded in the object header. Forward references are fine; a label
// may be used in an operand position before its definition appears in the
// source.
//
// Comments:
//
// A ';' begins a comment that runs to the end of the line. Commas between
// operands are accepted but not required; both are treated as insignificant
// whitespace by the lexer.
package asm
