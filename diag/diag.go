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

// Package diag collects and renders assembler diagnostics.
//
// Diagnostics are additive: package asm appends to a List and keeps parsing,
// the same error-recovery policy the teacher's asm.ErrAsm type implements for
// the ngaro assembler.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/John-fried/PocolVM/token"
)

// Diagnostic is a single assembler error. Pos is the zero Position when the
// error has no source location (e.g. a link error like a missing _start).
type Diagnostic struct {
	Path string
	Pos  token.Position
	Msg  string
}

func (d Diagnostic) String() string {
	if d.Pos.IsValid() {
		return fmt.Sprintf("%s:%s: error: %s", d.Path, d.Pos, d.Msg)
	}
	return fmt.Sprintf("%s: error: %s", d.Path, d.Msg)
}

// List is an ordered collection of Diagnostics. It implements error so it can
// be returned directly by Assemble.
type List []Diagnostic

func (l List) Error() string {
	lines := make([]string, len(l))
	for i, d := range l {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Add appends a new diagnostic to the list.
func (l *List) Add(path string, pos token.Position, format string, args ...interface{}) {
	*l = append(*l, Diagnostic{Path: path, Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

const (
	ansiReset     = "\033[0m"
	ansiBoldRed   = "\033[1;31m"
	ansiBoldWhite = "\033[1m"
)

// Fprint writes every diagnostic in l to w, one per line, in bold red ANSI
// color when color is true. A trailing summary line reports the total error
// count, matching the "assembler runs continue to end of input" policy: the
// caller sees every error from a single run, not just the first.
func Fprint(w io.Writer, l List, color bool) {
	for _, d := range l {
		if color {
			fmt.Fprintf(w, "%s%s%s\n", ansiBoldRed, d.String(), ansiReset)
		} else {
			fmt.Fprintln(w, d.String())
		}
	}
	if len(l) > 0 {
		s := "s"
		if len(l) == 1 {
			s = ""
		}
		summary := fmt.Sprintf("%d error%s", len(l), s)
		if color {
			fmt.Fprintf(w, "%s%s%s\n", ansiBoldWhite, summary, ansiReset)
		} else {
			fmt.Fprintln(w, summary)
		}
	}
}
