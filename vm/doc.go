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

// Instruction set.
//
//	Mnemonic  Opcode  Operands                  Effect
//	halt      0x00    (none)                    set Halted, stop execution
//	push      0x01    op1                       push op1 onto the data stack
//	pop       0x02    reg (raw byte)             pop into reg
//	add       0x03    reg (raw byte), op2        reg += op2
//	jmp       0x04    op1                        PC = op1 (byte offset in Memory)
//	print     0x05    op1                        write op1 as unsigned decimal
//
// Every opcode byte is followed by a descriptor byte for instructions with
// at least one operand: the low nibble gives the type of the first operand,
// the high nibble the type of the second. pop and add are the two
// exceptions that read their register operand as a raw byte rather than
// through the descriptor: the register they name is always a register,
// never an immediate, so there is nothing for the descriptor to say about
// it.
//
// A register operand is one byte, the register index masked to three bits.
// An immediate operand is eight bytes, little-endian.
