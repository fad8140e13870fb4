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
	"strings"
	"testing"

	"github.com/John-fried/PocolVM/obj"
)

func assemble(t *testing.T, src string) []byte {
	t.Helper()
	code, err := Assemble("test.pasm", strings.NewReader(src))
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	return code
}

func TestAssembleMinimalProgram(t *testing.T) {
	code := assemble(t, "_start: halt\n")

	hdr, err := obj.DecodeHeader(code)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}
	if hdr.EntryPoint != obj.HeaderSize {
		t.Errorf("entry point = %d, want %d", hdr.EntryPoint, obj.HeaderSize)
	}
	if hdr.CodeSize != 1 {
		t.Errorf("code size = %d, want 1", hdr.CodeSize)
	}
	if len(code) != obj.HeaderSize+1 {
		t.Errorf("total length = %d, want %d", len(code), obj.HeaderSize+1)
	}
	if code[obj.HeaderSize] != 0 { // OpHalt
		t.Errorf("opcode byte = %d, want 0 (halt)", code[obj.HeaderSize])
	}
}

func TestAssembleForwardLabelReference(t *testing.T) {
	src := `
_start:
	jmp done
	push 123
done:
	halt
`
	code := assemble(t, src)
	hdr, err := obj.DecodeHeader(code)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}

	// jmp's immediate operand is the byte offset of "done:". _start begins
	// at HeaderSize; "jmp done" and "push 123" each take opcode(1) +
	// descriptor(1) + immediate(8) = 10 bytes, so done sits 20 bytes later.
	wantDone := uint64(obj.HeaderSize + 20)
	gotTarget := uint64(0)
	for i := 0; i < 8; i++ {
		gotTarget |= uint64(code[obj.HeaderSize+2+i]) << (8 * i)
	}
	if gotTarget != wantDone {
		t.Errorf("jmp target = %d, want %d", gotTarget, wantDone)
	}
	_ = hdr
}

func TestAssembleMissingEntryPoint(t *testing.T) {
	_, err := Assemble("test.pasm", strings.NewReader("loop: halt\n"))
	if err == nil {
		t.Fatalf("expected an error for a missing _start label")
	}
	if !strings.Contains(err.Error(), "_start") {
		t.Errorf("error = %q, want it to mention _start", err.Error())
	}
}

func TestAssembleDuplicateLabel(t *testing.T) {
	src := `
_start:
foo: halt
foo: halt
`
	_, err := Assemble("test.pasm", strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected a duplicate label error")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error = %q, want it to mention duplicate", err.Error())
	}
}

func TestAssembleUndefinedLabel(t *testing.T) {
	src := "_start: jmp nowhere\n"
	_, err := Assemble("test.pasm", strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected an undefined label error")
	}
	if !strings.Contains(err.Error(), "undefined label") {
		t.Errorf("error = %q, want it to mention undefined label", err.Error())
	}
}

func TestAssembleLabelAsBareStatementEmitsRawAddress(t *testing.T) {
	// An identifier at statement position that names no mnemonic but does
	// name a label is not an error: it emits that label's address as a raw
	// 8-byte immediate, wedged directly into the code stream with no opcode
	// or descriptor byte of its own.
	src := `
_start:
	jmp skip
skip
skip:
	halt
`
	code := assemble(t, src)
	hdr, err := obj.DecodeHeader(code)
	if err != nil {
		t.Fatalf("decode header: %v", err)
	}

	// "jmp skip" is 10 bytes (opcode + descriptor + 8-byte immediate); the
	// bare "skip" statement follows it directly as its own 8 raw bytes.
	bareOffset := obj.HeaderSize + 10
	wantSkip := uint64(bareOffset + 8)

	var gotBareAddr uint64
	for i := 0; i < 8; i++ {
		gotBareAddr |= uint64(code[bareOffset+i]) << (8 * i)
	}
	if gotBareAddr != wantSkip {
		t.Errorf("raw address emitted for %q = %d, want %d (skip's address)", "skip", gotBareAddr, wantSkip)
	}

	if hdr.EntryPoint != obj.HeaderSize {
		t.Errorf("entry point = %d, want %d", hdr.EntryPoint, obj.HeaderSize)
	}
}

func TestAssembleUnresolvedBareIdentifierErrors(t *testing.T) {
	_, err := Assemble("test.pasm", strings.NewReader("_start: halt\nnosuchlabel\n"))
	if err == nil {
		t.Fatalf("expected an error for a bare identifier naming neither a mnemonic nor a label")
	}
	if !strings.Contains(err.Error(), "unknown mnemonic") {
		t.Errorf("error = %q, want it to mention unknown mnemonic", err.Error())
	}
}

func TestAssembleUnknownMnemonic(t *testing.T) {
	_, err := Assemble("test.pasm", strings.NewReader("_start: frobnicate\n"))
	if err == nil {
		t.Fatalf("expected an unknown mnemonic error")
	}
	if !strings.Contains(err.Error(), "unknown mnemonic") {
		t.Errorf("error = %q, want it to mention unknown mnemonic", err.Error())
	}
}

func TestAssembleReportsMultipleErrors(t *testing.T) {
	src := `
_start:
	frobnicate
	add r0, nowhere
`
	_, err := Assemble("test.pasm", strings.NewReader(src))
	if err == nil {
		t.Fatalf("expected errors")
	}
	lines := strings.Split(err.Error(), "\n")
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %d: %q", len(lines), err.Error())
	}
}

func TestAssemblePopRequiresRegisterOperand(t *testing.T) {
	_, err := Assemble("test.pasm", strings.NewReader("_start: pop 5\n"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if !strings.Contains(err.Error(), "register") {
		t.Errorf("error = %q, want it to mention register", err.Error())
	}
}

func TestDisassembleRoundTrip(t *testing.T) {
	code := assemble(t, "_start: push 42\nhalt\n")
	var sb strings.Builder
	next := Disassemble(code, obj.HeaderSize, &sb)
	if !strings.Contains(sb.String(), "push") || !strings.Contains(sb.String(), "42") {
		t.Errorf("disassembly = %q, want it to mention push and 42", sb.String())
	}
	sb.Reset()
	Disassemble(code, next, &sb)
	if !strings.Contains(sb.String(), "halt") {
		t.Errorf("disassembly = %q, want halt", sb.String())
	}
}
