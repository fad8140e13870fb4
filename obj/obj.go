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

// Package obj defines the PocolVM object file format: a fixed header
// followed by a contiguous code region, little-endian throughout.
//
//	Offset  Size  Field        Value
//	0       4     Magic        0x706F636F ("poco")
//	4       4     Version      numeric; mismatch is a load error
//	8       8     EntryPoint   byte offset of _start in the file
//	16      8     CodeSize     bytes in the code region
//	24      -     code         instructions, packed
package obj

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Magic identifies a PocolVM object file ("poco" read little-endian).
const Magic uint32 = 0x706F636F

// Version is the object format version this build of PocolVM produces and
// accepts.
const Version uint32 = 1

// HeaderSize is the fixed size, in bytes, of the Header at the start of every
// object file.
const HeaderSize = 24

// EntryLabel is the label an object's execution starts at; assembly without
// one fails to link.
const EntryLabel = "_start"

// Header is the fixed-size preamble of an object file.
type Header struct {
	Magic      uint32
	Version    uint32
	EntryPoint uint64
	CodeSize   uint64
}

// Encode serializes h in the on-disk little-endian layout.
func (h Header) Encode() []byte {
	b := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	binary.LittleEndian.PutUint32(b[4:8], h.Version)
	binary.LittleEndian.PutUint64(b[8:16], h.EntryPoint)
	binary.LittleEndian.PutUint64(b[16:24], h.CodeSize)
	return b
}

// DecodeHeader parses a Header from the first HeaderSize bytes of b and
// validates its magic and version.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errors.Errorf("short object file: need %d header bytes, got %d", HeaderSize, len(b))
	}
	h := Header{
		Magic:      binary.LittleEndian.Uint32(b[0:4]),
		Version:    binary.LittleEndian.Uint32(b[4:8]),
		EntryPoint: binary.LittleEndian.Uint64(b[8:16]),
		CodeSize:   binary.LittleEndian.Uint64(b[16:24]),
	}
	if h.Magic != Magic {
		return h, errors.Errorf("bad magic: got 0x%08x, want 0x%08x", h.Magic, Magic)
	}
	if h.Version != Version {
		return h, errors.Errorf("unsupported version: got %d, want %d", h.Version, Version)
	}
	return h, nil
}
