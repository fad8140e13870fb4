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

package vm

// Opcode is a single PocolVM instruction opcode byte. These values are part
// of the object ABI (see package obj) and must not be renumbered.
type Opcode uint8

// PocolVM opcodes.
const (
	OpHalt  Opcode = 0
	OpPush  Opcode = 1
	OpPop   Opcode = 2
	OpAdd   Opcode = 3
	OpJmp   Opcode = 4
	OpPrint Opcode = 5
)

// OperandType tags the kind of value an operand slot carries. Two of these
// pack into the descriptor byte that follows every opcode: the low nibble is
// the first operand's type, the high nibble the second's.
type OperandType uint8

// Operand type values.
const (
	OperandNone      OperandType = 0
	OperandRegister  OperandType = 1
	OperandImmediate OperandType = 2
)

// InstDef describes one entry of the instruction table: mnemonic, opcode
// byte, and operand arity (0, 1 or 2).
type InstDef struct {
	Mnemonic string
	Opcode   Opcode
	Arity    int
}

// InstTable is the fixed instruction table keyed by mnemonic.
var InstTable = map[string]InstDef{
	"halt":  {"halt", OpHalt, 0},
	"push":  {"push", OpPush, 1},
	"pop":   {"pop", OpPop, 1},
	"add":   {"add", OpAdd, 2},
	"jmp":   {"jmp", OpJmp, 1},
	"print": {"print", OpPrint, 1},
}

// mnemonicByOpcode maps an opcode byte back to its mnemonic; the interpreter
// uses it to recognize opcodes and find their InstTable entry.
var mnemonicByOpcode = map[Opcode]string{
	OpHalt:  "halt",
	OpPush:  "push",
	OpPop:   "pop",
	OpAdd:   "add",
	OpJmp:   "jmp",
	OpPrint: "print",
}

// NumRegisters is the number of general-purpose registers, r0 through r7.
const NumRegisters = 8

// RegisterMask masks a raw register-index byte to three bits, so stray upper
// bits in a register operand byte can never index out of range.
const RegisterMask = 0x07

// MakeDescriptor packs two operand types into one descriptor byte: op1 in
// the low nibble, op2 in the high nibble.
func MakeDescriptor(op1, op2 OperandType) byte {
	return byte(op1&0x0F) | byte(op2&0x0F)<<4
}

// SplitDescriptor unpacks a descriptor byte back into its two operand types.
func SplitDescriptor(b byte) (op1, op2 OperandType) {
	return OperandType(b & 0x0F), OperandType((b >> 4) & 0x0F)
}
