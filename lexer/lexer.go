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

// Package lexer turns PocolVM assembly source text into a stream of tokens.
//
// The lexer never aborts: an illegal byte or an overflowing integer literal is
// reported as an Illegal token and scanning continues right after it. It is
// up to the caller (package asm) to decide when too many errors have
// accumulated.
package lexer

import (
	"strconv"

	"github.com/John-fried/PocolVM/token"
)

// Lexer holds the cursor into a source buffer and the running line/column
// counters. Lexers are cheap to construct and own no external resources.
type Lexer struct {
	name string
	src  []byte
	pos  int
	line int
	col  int
}

// New creates a Lexer over src. name is used only to populate diagnostics
// (typically the source file name).
func New(name string, src []byte) *Lexer {
	return &Lexer{name: name, src: src, pos: 0, line: 1, col: 1}
}

// Name returns the source name this lexer was created with.
func (l *Lexer) Name() string { return l.name }

type cursor struct {
	pos, line, col int
}

func (l *Lexer) save() cursor { return cursor{l.pos, l.line, l.col} }

func (l *Lexer) restore(c cursor) { l.pos, l.line, l.col = c.pos, c.line, c.col }

func (l *Lexer) eof() bool { return l.pos >= len(l.src) }

func (l *Lexer) peekByte() byte {
	if l.eof() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

// advance consumes one byte, maintaining line/column bookkeeping.
func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return b
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool { return isLetter(b) || isDigit(b) }

// skipInsignificant consumes spaces, tabs, newlines, commas (a liberal
// separator, not grammar) and ';' comments through end of line.
func (l *Lexer) skipInsignificant() {
	for !l.eof() {
		switch b := l.peekByte(); {
		case b == ' ' || b == '\t' || b == '\n' || b == ',':
			l.advance()
		case b == ';':
			l.consumeUntilNewline()
		default:
			return
		}
	}
}

// ConsumeUntilNewline advances the cursor to just before the next newline (or
// EOF). Used by callers for error recovery: skip the rest of a bad line.
func (l *Lexer) ConsumeUntilNewline() {
	for !l.eof() && l.peekByte() != '\n' {
		l.advance()
	}
}

// consumeUntilNewline is the unexported alias used internally for comments.
func (l *Lexer) consumeUntilNewline() { l.ConsumeUntilNewline() }

// Next scans and returns the next token, advancing the cursor past it.
func (l *Lexer) Next() token.Token {
	l.skipInsignificant()
	pos := token.Position{Line: l.line, Column: l.col}

	if l.eof() {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	b := l.peekByte()
	switch {
	case isDigit(b) || (b == '-' && isDigit(l.peekByteAt(1))):
		return l.scanInt(pos)
	case isLetter(b):
		return l.scanIdent(pos)
	default:
		l.advance()
		return token.Token{Kind: token.Illegal, Text: "illegal character " + strconv.QuoteRune(rune(b)), Pos: pos}
	}
}

func (l *Lexer) scanInt(pos token.Position) token.Token {
	start := l.pos
	if l.peekByte() == '-' {
		l.advance()
	}
	for !l.eof() && isDigit(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return token.Token{Kind: token.Illegal, Text: "integer out of range: " + text, Pos: pos}
	}
	return token.Token{Kind: token.Int, IntValue: v, Pos: pos}
}

func (l *Lexer) scanIdent(pos token.Position) token.Token {
	start := l.pos
	first := l.peekByte()
	l.advance()
	for !l.eof() && isIdentByte(l.peekByte()) {
		l.advance()
	}
	text := string(l.src[start:l.pos])

	if !l.eof() && l.peekByte() == ':' {
		l.advance()
		return token.Token{Kind: token.Label, Text: text, Pos: pos}
	}

	if first == 'r' && len(text) > 1 && isAllDigits(text[1:]) {
		n, err := strconv.Atoi(text[1:])
		if err == nil {
			return token.Token{Kind: token.Register, RegValue: n, Pos: pos}
		}
	}

	return token.Token{Kind: token.Ident, Text: text, Pos: pos}
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

// Peek returns the n-th following token (0 is the token Next would return)
// without moving the cursor.
func (l *Lexer) Peek(n int) token.Token {
	saved := l.save()
	defer l.restore(saved)

	var tok token.Token
	for i := 0; i <= n; i++ {
		tok = l.Next()
		if tok.Kind == token.EOF {
			break
		}
	}
	return tok
}
