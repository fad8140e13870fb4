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

// Package token defines the lexical tokens produced by package lexer.
package token

import "fmt"

// Kind identifies the variant carried by a Token.
type Kind int

// Token variants.
const (
	EOF Kind = iota
	Illegal
	Int
	Ident
	Register
	Label
)

var kindNames = [...]string{
	EOF:      "EOF",
	Illegal:  "illegal",
	Int:      "integer",
	Ident:    "identifier",
	Register: "register",
	Label:    "label",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Position is a 1-based line/column pair into the source text being lexed.
type Position struct {
	Line, Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p was ever set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

// Token is a single lexical unit. Only the field(s) relevant to Kind are
// meaningful: Int carries IntValue, Register carries RegValue, Ident and
// Label carry Text.
type Token struct {
	Kind     Kind
	Text     string // identifier/label text, or the diagnostic message for Illegal
	IntValue int64
	RegValue int
	Pos      Position
}

func (t Token) String() string {
	switch t.Kind {
	case Int:
		return fmt.Sprintf("%s(%d)", t.Kind, t.IntValue)
	case Register:
		return fmt.Sprintf("%s(r%d)", t.Kind, t.RegValue)
	case Ident, Label, Illegal:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
