// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"fmt"
	"strings"
)

type symbolKind byte

const (
	symLabel    symbolKind = iota // address label
	symConstant                   // named constant
)

// A symbol is a named constant or address label. Labels hold a section
// and offset during scanning; their absolute address becomes available
// once section layout is complete.
type symbol struct {
	name    string     // flat key, local labels mangled to "global@local"
	kind    symbolKind
	section *section   // section containing the label, nil for constants
	offset  int        // offset of the label within its section
	value   int64      // constant value, or absolute address after layout
	pos     fstring    // definition site
}

// displayName renders a symbol key the way it appears in source code.
func displayName(key string) string {
	if g, l, ok := strings.Cut(key, "@"); ok {
		return g + "." + l
	}
	return key
}

// A symbolTable maps flat symbol keys to their definitions. Local labels
// live in the same map as globals under their composite key, so a local
// name may repeat under different globals without collision.
type symbolTable struct {
	syms  map[string]*symbol
	order []string // definition order
}

func newSymbolTable() *symbolTable {
	return &symbolTable{syms: make(map[string]*symbol)}
}

// define adds a symbol to the table. Redefinition of any symbol is an
// error, for labels and constants alike.
func (t *symbolTable) define(s *symbol) error {
	if _, found := t.syms[s.name]; found {
		return fmt.Errorf("symbol '%s' defined more than once", displayName(s.name))
	}
	t.syms[s.name] = s
	t.order = append(t.order, s.name)
	return nil
}

func (t *symbolTable) lookup(key string) *symbol {
	return t.syms[key]
}

// find resolves a primary key with an optional fallback, implementing
// the global-first search for bare references.
func (t *symbolTable) find(key, alt string) *symbol {
	if s := t.syms[key]; s != nil {
		return s
	}
	if alt != "" {
		return t.syms[alt]
	}
	return nil
}

// resolveRef converts a reference as written in source code into a flat
// symbol key. A '@name' reference binds to the local scope of the
// nearest preceding global label; a 'global.local' reference names
// another scope's local explicitly. A bare name is searched as a global
// first, falling back to the in-scope local returned as alt.
func resolveRef(ref, scope string) (key, alt string, err error) {
	if strings.HasPrefix(ref, "@") {
		if scope == "" {
			return "", "", fmt.Errorf("local reference '%s' appears before any global label", ref)
		}
		return scope + "@" + ref[1:], "", nil
	}
	if g, l, ok := strings.Cut(ref, "."); ok {
		if g == "" || l == "" || strings.ContainsAny(l, ".@") {
			return "", "", fmt.Errorf("malformed symbol reference '%s'", ref)
		}
		return g + "@" + l, "", nil
	}
	if scope != "" {
		alt = scope + "@" + ref
	}
	return ref, alt, nil
}
