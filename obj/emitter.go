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

package obj

import "encoding/binary"

// Emitter serializes bytes to an in-memory object stream in little-endian
// byte order. It is pure sequential append and knows nothing of instruction
// semantics; package asm is responsible for deciding what to emit and when.
type Emitter struct {
	buf []byte
}

// NewEmitter returns an Emitter with header-sized leading space reserved; the
// caller overwrites it with the final Header once pass 2 completes.
func NewEmitter() *Emitter {
	e := &Emitter{buf: make([]byte, HeaderSize)}
	return e
}

// Emit8 appends a single byte.
func (e *Emitter) Emit8(v uint8) {
	e.buf = append(e.buf, v)
}

// Emit64 appends v as exactly eight bytes, least-significant byte first.
func (e *Emitter) Emit64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// Len returns the number of bytes written so far, including the reserved
// header space.
func (e *Emitter) Len() int { return len(e.buf) }

// PatchHeader overwrites the reserved header space at the start of the
// stream.
func (e *Emitter) PatchHeader(h Header) {
	copy(e.buf[0:HeaderSize], h.Encode())
}

// Bytes returns the complete object stream assembled so far: header followed
// by the code region.
func (e *Emitter) Bytes() []byte { return e.buf }
