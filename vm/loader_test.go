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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/John-fried/PocolVM/config"
	"github.com/John-fried/PocolVM/obj"
)

func writeObjectFile(t *testing.T, codeSize int) string {
	t.Helper()
	emitter := obj.NewEmitter()
	for i := 0; i < codeSize; i++ {
		emitter.Emit8(byte(OpHalt))
	}
	emitter.PatchHeader(obj.Header{
		Magic:      obj.Magic,
		Version:    obj.Version,
		EntryPoint: obj.HeaderSize,
		CodeSize:   uint64(codeSize),
	})

	path := filepath.Join(t.TempDir(), "prog.pob")
	if err := os.WriteFile(path, emitter.Bytes(), 0o644); err != nil {
		t.Fatalf("write object file: %v", err)
	}
	return path
}

func TestLoadRejectsFileLargerThanMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Interpreter.MemorySize = int(obj.HeaderSize) + 4

	path := writeObjectFile(t, 16) // header + code exceeds the 4-byte budget

	_, err := Load(path, cfg, &bytes.Buffer{})
	if err == nil {
		t.Fatalf("expected FileTooLarge, got nil")
	}
	var ve *Error
	if !errors.As(err, &ve) || ve.Kind != FileTooLarge {
		t.Fatalf("expected FileTooLarge, got %v", err)
	}
}

func TestLoadRejectsCodeThatDoesNotFitConfiguredMemory(t *testing.T) {
	// The raw file is small enough to pass the stat-size check, but its
	// header claims a code_size that, plus the header itself, doesn't fit
	// the configured memory: Load must still reject it rather than grow
	// memory to accommodate it.
	cfg := config.Default()
	cfg.Interpreter.MemorySize = int(obj.HeaderSize) + 2

	emitter := obj.NewEmitter()
	emitter.Emit8(byte(OpHalt))
	emitter.PatchHeader(obj.Header{
		Magic:      obj.Magic,
		Version:    obj.Version,
		EntryPoint: obj.HeaderSize,
		CodeSize:   1000, // lies about how much code follows
	})
	path := filepath.Join(t.TempDir(), "prog.pob")
	if err := os.WriteFile(path, emitter.Bytes(), 0o644); err != nil {
		t.Fatalf("write object file: %v", err)
	}

	_, err := Load(path, cfg, &bytes.Buffer{})
	var ve *Error
	if !errors.As(err, &ve) || ve.Kind != FileTooLarge {
		t.Fatalf("expected FileTooLarge, got %v", err)
	}
}

func TestLoadAcceptsFileThatExactlyFillsMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Interpreter.MemorySize = int(obj.HeaderSize) + 4

	path := writeObjectFile(t, 4)

	in, err := Load(path, cfg, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(in.Memory) != cfg.Interpreter.MemorySize {
		t.Errorf("memory size = %d, want the fixed configured size %d", len(in.Memory), cfg.Interpreter.MemorySize)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pob")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}
	_, err := Load(path, nil, &bytes.Buffer{})
	var ve *Error
	if !errors.As(err, &ve) || ve.Kind != EmptyFile {
		t.Fatalf("expected EmptyFile, got %v", err)
	}
}
