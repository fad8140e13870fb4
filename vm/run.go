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

import "fmt"

// Run executes instructions until the program halts, faults, or the
// instruction budget (if any) is exhausted. A budget running out is
// reported through Exhausted, not through the returned error.
func (in *Instance) Run() error {
	for !in.Halted {
		if in.budget >= 0 && in.insCount >= in.budget {
			in.exhausted = true
			return nil
		}
		if err := in.step(); err != nil {
			return err
		}
	}
	return nil
}

// Step executes a single instruction. It is exported so a debugger-style
// caller can single-step; the runner CLI does not use it directly.
func (in *Instance) Step() error {
	if in.Halted {
		return nil
	}
	return in.step()
}

func (in *Instance) step() error {
	startPC := in.PC

	op, err := in.fetchByte()
	if err != nil {
		return err
	}
	opcode := Opcode(op)

	mnemonic, ok := mnemonicByOpcode[opcode]
	if !ok {
		return newError(UnrecognizedOpcode, startPC, "opcode 0x%02x", op)
	}

	var desc byte
	if InstTable[mnemonic].Arity > 0 {
		desc, err = in.fetchByte()
		if err != nil {
			return err
		}
	}
	op1Type, op2Type := SplitDescriptor(desc)

	switch opcode {
	case OpHalt:
		in.Halted = true

	case OpPush:
		v, err := in.evalOperand(op1Type)
		if err != nil {
			return err
		}
		if err := in.push(v); err != nil {
			return err
		}

	case OpPop:
		// The destination register is read as a raw byte, not through the
		// descriptor-driven operand path push/jmp/print use.
		regByte, err := in.fetchByte()
		if err != nil {
			return err
		}
		v, err := in.pop()
		if err != nil {
			return err
		}
		in.Regs[regByte&RegisterMask] = v

	case OpAdd:
		regByte, err := in.fetchByte()
		if err != nil {
			return err
		}
		rhs, err := in.evalOperand(op2Type)
		if err != nil {
			return err
		}
		reg := regByte & RegisterMask
		in.Regs[reg] = in.Regs[reg] + rhs

	case OpJmp:
		target, err := in.evalOperand(op1Type)
		if err != nil {
			return err
		}
		if target >= uint64(len(in.Memory)) {
			return newError(IllegalMemoryAccess, startPC, "jmp target 0x%x", target)
		}
		in.PC = target
		in.insCount++
		return nil

	case OpPrint:
		v, err := in.evalOperand(op1Type)
		if err != nil {
			return err
		}
		fmt.Fprintf(in.out, "%d", v)

	default:
		return newError(UnrecognizedOpcode, startPC, "opcode 0x%02x", op)
	}

	in.insCount++
	return nil
}

// evalOperand reads one descriptor-typed operand at the current PC and
// advances PC past it: a register operand is one byte naming a register
// (masked to three bits), an immediate operand is eight little-endian bytes,
// and no operand consumes nothing.
func (in *Instance) evalOperand(t OperandType) (uint64, error) {
	switch t {
	case OperandNone:
		return 0, nil
	case OperandRegister:
		b, err := in.fetchByte()
		if err != nil {
			return 0, err
		}
		return in.Regs[b&RegisterMask], nil
	case OperandImmediate:
		return in.fetchU64()
	default:
		return 0, newError(IllegalMemoryAccess, in.PC, "bad operand type 0x%02x", t)
	}
}

func (in *Instance) fetchByte() (byte, error) {
	if in.PC >= uint64(len(in.Memory)) {
		return 0, newError(IllegalMemoryAccess, in.PC, "fetch past end of memory")
	}
	b := in.Memory[in.PC]
	in.PC++
	return b, nil
}

func (in *Instance) fetchU64() (uint64, error) {
	if in.PC+8 > uint64(len(in.Memory)) {
		return 0, newError(IllegalMemoryAccess, in.PC, "immediate operand past end of memory")
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(in.Memory[in.PC+uint64(i)]) << (8 * i)
	}
	in.PC += 8
	return v, nil
}
