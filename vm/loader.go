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

import (
	"io"
	"os"

	"github.com/John-fried/PocolVM/config"
	"github.com/John-fried/PocolVM/obj"
)

// Load reads an object file from path and returns an Instance ready to Run.
// cfg supplies the memory size, stack size and instruction budget; a nil cfg
// uses config.Default(). out receives the print opcode's output. Memory is a fixed-size record (config's memory_size,
// 640,000 bytes by default): an object file that can't fit inside it —
// header and code both — is rejected with FileTooLarge rather than grown
// to fit, matching the loader's fixed-memory contract.
func Load(path string, cfg *config.Config, out io.Writer) (*Instance, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	memSize := cfg.Interpreter.MemorySize

	f, err := os.Open(path)
	if err != nil {
		return nil, newError(IOError, 0, "open %s: %v", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, newError(IOError, 0, "stat %s: %v", path, err)
	}
	if !st.Mode().IsRegular() {
		return nil, newError(NotRegularFile, 0, "%s", path)
	}
	if st.Size() == 0 {
		return nil, newError(EmptyFile, 0, "%s", path)
	}
	if st.Size() > int64(memSize) {
		return nil, newError(FileTooLarge, 0, "%s: %d bytes, memory holds %d", path, st.Size(), memSize)
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, newError(IOError, 0, "read %s: %v", path, err)
	}

	hdr, err := obj.DecodeHeader(raw)
	if err != nil {
		return nil, classifyHeaderError(err)
	}
	if hdr.CodeSize+obj.HeaderSize > uint64(memSize) {
		return nil, newError(FileTooLarge, 0, "%s: code_size %d exceeds memory %d", path, hdr.CodeSize, memSize)
	}

	in := New(
		MemorySize(memSize),
		StackSize(cfg.Interpreter.DataStackSize),
		Budget(int64(cfg.Interpreter.DefaultBudget)),
		Output(out),
	)
	copy(in.Memory, raw)
	in.PC = hdr.EntryPoint
	return in, nil
}

// classifyHeaderError maps obj.DecodeHeader's generic errors onto the
// interpreter's Kind taxonomy so the runner's exit code reflects the right
// failure even though obj deliberately doesn't depend on package vm.
func classifyHeaderError(err error) *Error {
	msg := err.Error()
	switch {
	case contains(msg, "magic"):
		return newError(BadMagic, 0, "%s", msg)
	case contains(msg, "version"):
		return newError(UnsupportedVersion, 0, "%s", msg)
	default:
		return newError(IOError, 0, "%s", msg)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
