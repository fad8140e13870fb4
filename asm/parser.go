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
	"github.com/John-fried/PocolVM/diag"
	"github.com/John-fried/PocolVM/lexer"
	"github.com/John-fried/PocolVM/obj"
	"github.com/John-fried/PocolVM/symtab"
	"github.com/John-fried/PocolVM/token"
	"github.com/John-fried/PocolVM/vm"
)

// operand is one parsed operand: a register reference, an integer literal,
// or a label reference (resolved in pass 2).
type operand struct {
	tokKind token.Kind // token.Register, token.Int or token.Ident
	reg     int
	imm     int64
	label   string
	pos     token.Position
}

func (o operand) operandType() vm.OperandType {
	if o.tokKind == token.Register {
		return vm.OperandRegister
	}
	return vm.OperandImmediate
}

// size reports the number of bytes this operand occupies in the object
// code: one byte for a register index, eight for an immediate (literal or
// resolved label address).
func (o operand) size() uint64 {
	if o.tokKind == token.Register {
		return 1
	}
	return 8
}

// parser drives one pass over the source, shared by both the label-discovery
// pass and the code-emission pass. Running the exact same token-level walk
// twice is what keeps the two passes' byte offsets in lockstep: pass 1 and
// pass 2 make identical decisions about how many bytes each statement
// occupies, so the addresses pass 1 records are still correct by the time
// pass 2 emits against them.
type parser struct {
	path  string
	syms  *symtab.Table
	diags *diag.List

	pc uint64 // current byte offset, starting after the header

	// emit is nil during pass 1. When set, parser emits real bytes instead
	// of just advancing pc.
	emit *obj.Emitter
}

func newParser(path string, syms *symtab.Table, diags *diag.List) *parser {
	return &parser{path: path, syms: syms, diags: diags, pc: obj.HeaderSize}
}

func (p *parser) errorf(pos token.Position, format string, args ...interface{}) {
	p.diags.Add(p.path, pos, format, args...)
}

// run walks every token from lx. lx must be a fresh Lexer positioned at the
// start of the source; parser never rewinds it.
func (p *parser) run(lx *lexer.Lexer) {
	for {
		tok := lx.Next()
		switch tok.Kind {
		case token.EOF:
			return
		case token.Label:
			p.defineLabel(tok)
		case token.Ident:
			p.parseInstruction(lx, tok)
		case token.Illegal:
			if p.emit == nil {
				p.errorf(tok.Pos, "%s", tok.Text)
			}
		default:
			if p.emit == nil {
				p.errorf(tok.Pos, "unexpected %s, want a label or instruction", tok.Kind)
			}
			lx.ConsumeUntilNewline()
		}
	}
}

func (p *parser) defineLabel(tok token.Token) {
	if p.emit != nil {
		// pass 2: the address is already final, nothing to emit for a
		// label definition itself.
		return
	}
	err := p.syms.Push(symtab.Symbol{Name: tok.Text, Kind: symtab.Label, PC: int(p.pc), Defined: true})
	if err != nil {
		p.errorf(tok.Pos, "%s", err)
	}
}

// parseInstruction parses one instruction statement. Diagnostics about the
// statement's shape (wrong operand kind, a missing register where one is
// required) are structural: they don't depend on label resolution, so they
// are only reported during pass 1. Pass 2 walks the exact same tokens to
// keep the two passes' byte counts in lockstep, but only raises diagnostics
// for what it alone can detect: undefined labels, out-of-range register
// indices, and a statement identifier that names neither a mnemonic nor a
// label (see parseLabelStatement).
func (p *parser) parseInstruction(lx *lexer.Lexer, mnemonic token.Token) {
	pass1 := p.emit == nil

	def, ok := vm.InstTable[mnemonic.Text]
	if !ok {
		p.parseLabelStatement(lx, mnemonic)
		return
	}

	ops := make([]operand, 0, def.Arity)
	for i := 0; i < def.Arity; i++ {
		t := lx.Next()
		switch t.Kind {
		case token.Register:
			ops = append(ops, operand{tokKind: token.Register, reg: t.RegValue, pos: t.Pos})
		case token.Int:
			ops = append(ops, operand{tokKind: token.Int, imm: t.IntValue, pos: t.Pos})
		case token.Ident:
			ops = append(ops, operand{tokKind: token.Ident, label: t.Text, pos: t.Pos})
		default:
			if pass1 {
				p.errorf(t.Pos, "%s expects %d operand(s): got %s", mnemonic.Text, def.Arity, t.Kind)
			}
			lx.ConsumeUntilNewline()
			return
		}
	}

	if pass1 && (def.Opcode == vm.OpPop || def.Opcode == vm.OpAdd) &&
		len(ops) > 0 && ops[0].tokKind != token.Register {
		p.errorf(ops[0].pos, "%s requires a register as its first operand", mnemonic.Text)
	}

	if pass1 {
		p.advancePC(def, ops)
		return
	}
	p.emitInstruction(mnemonic, def, ops)
}

// parseLabelStatement handles an identifier at statement position that
// doesn't name a mnemonic. The language's one unusual, explicitly documented
// rule treats such an identifier as a bare reference to a label, emitted as
// a raw 8-byte immediate holding that label's address — not as a syntax
// error. Pass 1 can't yet tell a valid forward reference to a label defined
// later in the source from a genuine typo, since the symbol table isn't
// complete until pass 1 finishes; it reserves the 8 bytes unconditionally
// and lets pass 2, which sees the complete table, report anything that
// still doesn't resolve to a label.
func (p *parser) parseLabelStatement(lx *lexer.Lexer, tok token.Token) {
	lx.ConsumeUntilNewline()

	if p.emit == nil {
		p.pc += 8
		return
	}

	sym := p.syms.Find(symtab.Label, tok.Text)
	if sym == nil {
		p.errorf(tok.Pos, "unknown mnemonic or undefined label %q", tok.Text)
		p.emit.Emit64(0)
		return
	}
	p.emit.Emit64(uint64(sym.PC))
}

func (p *parser) advancePC(def vm.InstDef, ops []operand) {
	p.pc++ // opcode byte
	if def.Arity > 0 {
		p.pc++ // descriptor byte
	}
	for _, o := range ops {
		p.pc += o.size()
	}
}

func (p *parser) emitInstruction(mnemonic token.Token, def vm.InstDef, ops []operand) {
	p.emit.Emit8(uint8(def.Opcode))
	if def.Arity == 0 {
		return
	}

	op1Type := vm.OperandNone
	op2Type := vm.OperandNone
	if len(ops) > 0 {
		op1Type = ops[0].operandType()
	}
	if len(ops) > 1 {
		op2Type = ops[1].operandType()
	}
	p.emit.Emit8(vm.MakeDescriptor(op1Type, op2Type))

	for _, o := range ops {
		switch o.tokKind {
		case token.Register:
			if o.reg < 0 || o.reg >= vm.NumRegisters {
				p.errorf(o.pos, "register r%d out of range (have %d registers)", o.reg, vm.NumRegisters)
				p.emit.Emit8(0)
				continue
			}
			p.emit.Emit8(uint8(o.reg))
		case token.Int:
			p.emit.Emit64(uint64(o.imm))
		case token.Ident:
			sym := p.syms.Find(symtab.Label, o.label)
			if sym == nil {
				p.errorf(o.pos, "undefined label %q", o.label)
				p.emit.Emit64(0)
				continue
			}
			p.emit.Emit64(uint64(sym.PC))
		}
	}
}
