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

// Package symtab tracks label definitions and resolves label references
// across the two assembler passes.
package symtab

import "github.com/pkg/errors"

// Kind identifies the namespace a Symbol belongs to. Label is the only kind
// in scope for PocolVM, but the (kind, name) key shape leaves room for future
// symbol classes without touching the lookup contract.
type Kind int

// Symbol kinds.
const (
	Label Kind = iota
)

// Symbol is a named entry in the table. For a Label symbol, PC is the byte
// offset it resolves to and Defined reports whether that offset is final.
type Symbol struct {
	Name    string
	Kind    Kind
	PC      int
	Defined bool
}

type key struct {
	kind Kind
	name string
}

// Table is an association from (kind, name) to Symbol. Lookups are backed by
// a Go map: label counts in real programs are small enough that the teacher
// repos in this domain get away with linear scans, but a map costs nothing
// extra here and keeps Find O(1).
type Table struct {
	m map[key]*Symbol
}

// New returns an empty symbol table.
func New() *Table {
	return &Table{m: make(map[key]*Symbol)}
}

// Find returns the existing symbol for (kind, name), or nil if absent.
func (t *Table) Find(kind Kind, name string) *Symbol {
	return t.m[key{kind, name}]
}

// Push inserts a new symbol. It fails with an error wrapping "duplicate" if
// (kind, name) already exists.
func (t *Table) Push(sym Symbol) error {
	k := key{sym.Kind, sym.Name}
	if _, ok := t.m[k]; ok {
		return errors.Errorf("duplicate label %q", sym.Name)
	}
	cp := sym
	t.m[k] = &cp
	return nil
}

// All returns every symbol currently in the table, in no particular order.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.m))
	for _, s := range t.m {
		out = append(out, s)
	}
	return out
}
