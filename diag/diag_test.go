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

package diag

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/John-fried/PocolVM/token"
)

func TestDiagnosticStringWithPosition(t *testing.T) {
	d := Diagnostic{Path: "a.pasm", Pos: token.Position{Line: 3, Column: 5}, Msg: "bad token"}
	want := "a.pasm:3:5: error: bad token"
	if d.String() != want {
		t.Errorf("got %q, want %q", d.String(), want)
	}
}

func TestDiagnosticStringWithoutPosition(t *testing.T) {
	d := Diagnostic{Path: "a.pasm", Msg: "missing entry point"}
	want := "a.pasm: error: missing entry point"
	if d.String() != want {
		t.Errorf("got %q, want %q", d.String(), want)
	}
}

func TestListErrorJoinsLines(t *testing.T) {
	var l List
	l.Add("a.pasm", token.Position{Line: 1, Column: 1}, "first")
	l.Add("a.pasm", token.Position{Line: 2, Column: 1}, "second")
	lines := strings.Split(l.Error(), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), l.Error())
	}
}

func TestFprintWithoutColor(t *testing.T) {
	var l List
	l.Add("a.pasm", token.Position{Line: 1, Column: 1}, "oops")
	var buf bytes.Buffer
	Fprint(&buf, l, false)
	out := buf.String()
	if strings.Contains(out, "\033[") {
		t.Errorf("expected no ANSI escapes, got %q", out)
	}
	if !strings.Contains(out, "1 error") {
		t.Errorf("expected a summary line, got %q", out)
	}
}

func TestFprintWithColor(t *testing.T) {
	var l List
	l.Add("a.pasm", token.Position{Line: 1, Column: 1}, "oops")
	var buf bytes.Buffer
	Fprint(&buf, l, true)
	if !strings.Contains(buf.String(), "\033[") {
		t.Errorf("expected ANSI escapes in colorized output")
	}
}

func TestErrWriterLatchesFirstError(t *testing.T) {
	w := NewErrWriter(failingWriter{})
	_, err := w.Write([]byte("x"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	first := w.Err
	_, err2 := w.Write([]byte("y"))
	if err2 != first {
		t.Errorf("expected the same latched error on the second write")
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}
