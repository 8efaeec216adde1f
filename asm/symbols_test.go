// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import "testing"

func TestResolveRef(t *testing.T) {
	cases := []struct {
		ref   string
		scope string
		key   string
		alt   string
	}{
		{"main", "", "main", ""},
		{"main", "other", "main", "other@main"},
		{"@loop", "main", "main@loop", ""},
		{"main.loop", "", "main@loop", ""},
		{"main.loop", "other", "main@loop", ""},
	}
	for _, c := range cases {
		key, alt, err := resolveRef(c.ref, c.scope)
		if err != nil {
			t.Errorf("resolveRef(%q, %q) failed: %v", c.ref, c.scope, err)
			continue
		}
		if key != c.key || alt != c.alt {
			t.Errorf("resolveRef(%q, %q) = %q, %q, expected %q, %q",
				c.ref, c.scope, key, alt, c.key, c.alt)
		}
	}
}

func TestResolveRefFailures(t *testing.T) {
	bad := []struct {
		ref   string
		scope string
	}{
		{"@loop", ""},
		{"a.b.c", "main"},
		{".loop", "main"},
		{"main.", "main"},
	}
	for _, c := range bad {
		if _, _, err := resolveRef(c.ref, c.scope); err == nil {
			t.Errorf("resolveRef(%q, %q) succeeded, expected an error", c.ref, c.scope)
		}
	}
}

func TestSymbolRedefinition(t *testing.T) {
	tab := newSymbolTable()
	if err := tab.define(&symbol{name: "x", kind: symConstant, value: 1}); err != nil {
		t.Fatal(err)
	}
	if err := tab.define(&symbol{name: "x", kind: symLabel}); err == nil {
		t.Error("redefinition of 'x' succeeded")
	}

	// Locals under different globals occupy distinct keys.
	if err := tab.define(&symbol{name: "a@loop", kind: symLabel}); err != nil {
		t.Fatal(err)
	}
	if err := tab.define(&symbol{name: "b@loop", kind: symLabel}); err != nil {
		t.Fatal(err)
	}
	if err := tab.define(&symbol{name: "a@loop", kind: symLabel}); err == nil {
		t.Error("redefinition of 'a@loop' succeeded")
	}
}

func TestFindFallback(t *testing.T) {
	tab := newSymbolTable()
	tab.define(&symbol{name: "main@spot", kind: symLabel})

	if s := tab.find("spot", "main@spot"); s == nil || s.name != "main@spot" {
		t.Error("bare reference did not fall back to the in-scope local")
	}

	// Once a global of the same name exists, it wins.
	tab.define(&symbol{name: "spot", kind: symLabel})
	if s := tab.find("spot", "main@spot"); s == nil || s.name != "spot" {
		t.Error("global did not take precedence over the in-scope local")
	}
}

func TestDisplayName(t *testing.T) {
	if s := displayName("main@loop"); s != "main.loop" {
		t.Errorf("displayName = %q, expected 'main.loop'", s)
	}
	if s := displayName("main"); s != "main" {
		t.Errorf("displayName = %q, expected 'main'", s)
	}
}
