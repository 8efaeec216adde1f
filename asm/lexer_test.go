// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"io"
	"testing"
)

func lexTest(t *testing.T, src string) ([]token, error) {
	t.Helper()
	a := &assembler{out: io.Discard, files: []string{"test"}}
	return a.lexLine(newFstring(0, 1, src))
}

func checkTokens(t *testing.T, src string, kinds []tokenKind) []token {
	t.Helper()
	tokens, err := lexTest(t, src)
	if err != nil {
		t.Fatalf("lex of %q failed: %v", src, err)
	}
	if len(tokens) != len(kinds) {
		t.Fatalf("lex of %q produced %d tokens, expected %d", src, len(tokens), len(kinds))
	}
	for i, k := range kinds {
		if tokens[i].kind != k {
			t.Errorf("token %d of %q is %s, expected %s", i, src, tokens[i].kind, k)
		}
	}
	return tokens
}

func TestLexInstruction(t *testing.T) {
	tokens := checkTokens(t, "loadid 0x1010000 sp",
		[]tokenKind{tkIdent, tkNumber, tkIdent})
	if tokens[1].value != 0x1010000 {
		t.Errorf("literal value %#x, expected 0x1010000", tokens[1].value)
	}
}

func TestLexNumbers(t *testing.T) {
	cases := []struct {
		src   string
		value int64
	}{
		{"42", 42},
		{"-42", -42},
		{"0x2A", 42},
		{"0X2a", 42},
		{"0b101010", 42},
		{"-0x10", -16},
		{"'A'", 65},
		{"0xFFFFFFFF", 0xFFFFFFFF},
	}
	for _, c := range cases {
		tokens := checkTokens(t, c.src, []tokenKind{tkNumber})
		if tokens[0].value != c.value {
			t.Errorf("%q lexed to %d, expected %d", c.src, tokens[0].value, c.value)
		}
	}
}

func TestLexLabels(t *testing.T) {
	tokens := checkTokens(t, "main:", []tokenKind{tkLabel})
	if tokens[0].text.str != "main" {
		t.Errorf("label text %q, expected 'main'", tokens[0].text.str)
	}

	tokens = checkTokens(t, "@loop:", []tokenKind{tkLocalLabel})
	if tokens[0].text.str != "loop" {
		t.Errorf("local label text %q, expected 'loop'", tokens[0].text.str)
	}

	// Label definition followed by an instruction on the same line.
	checkTokens(t, "main: halt", []tokenKind{tkLabel, tkIdent})
}

func TestLexReferences(t *testing.T) {
	tokens := checkTokens(t, "jpc eq @loop", []tokenKind{tkIdent, tkIdent, tkIdent})
	if tokens[2].text.str != "@loop" {
		t.Errorf("local reference text %q, expected '@loop'", tokens[2].text.str)
	}

	tokens = checkTokens(t, "call main.exit", []tokenKind{tkIdent, tkIdent})
	if tokens[1].text.str != "main.exit" {
		t.Errorf("qualified reference text %q, expected 'main.exit'", tokens[1].text.str)
	}
}

func TestLexDirectives(t *testing.T) {
	tokens := checkTokens(t, `.db 1, "hi"`,
		[]tokenKind{tkDirective, tkNumber, tkComma, tkString})
	if tokens[0].text.str != ".db" {
		t.Errorf("directive text %q, expected '.db'", tokens[0].text.str)
	}
	if tokens[3].text.str != "hi" {
		t.Errorf("string text %q, expected 'hi'", tokens[3].text.str)
	}
}

func TestLexIndirect(t *testing.T) {
	checkTokens(t, "loadpb [r1] r00l",
		[]tokenKind{tkIdent, tkLBracket, tkIdent, tkRBracket, tkIdent})
}

func TestLexFailures(t *testing.T) {
	bad := []string{
		"halt !",
		"'A",
		"'ab'",
		`"unterminated`,
		"0x",
		"0b",
		"12ab",
		"-x",
		"@:",
		"a.b:",
		".",
	}
	for _, src := range bad {
		if _, err := lexTest(t, src); err == nil {
			t.Errorf("lex of %q succeeded, expected an error", src)
		}
	}
}

func TestLexPositions(t *testing.T) {
	tokens, err := lexTest(t, "halt nop")
	if err != nil {
		t.Fatal(err)
	}
	if tokens[0].text.column != 0 || tokens[1].text.column != 5 {
		t.Errorf("columns %d,%d, expected 0,5",
			tokens[0].text.column, tokens[1].text.column)
	}
}
