// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"github.com/sarch32/sarchasm/arch"
)

// A segment is a small chunk of machine code within a section: a single
// instruction, a group of data items, or a byte reservation.
type segment interface {
	address() int
	length() int
}

// An instruction segment contains a single instruction, including its
// table entry and operand data.
type instruction struct {
	offset    int               // offset within the owning section
	addr      int               // absolute address, assigned during layout
	fileIndex int               // index of file containing the instruction
	line      int               // the source code line number
	mnemonic  fstring           // mnemonic string
	inst      *arch.Instruction // table entry selected for the mnemonic
	operands  []operand         // operand data, in encoding order
}

func (i *instruction) address() int {
	return i.addr
}

func (i *instruction) length() int {
	return i.inst.Length()
}

// An operand holds one operand field of an instruction. Operands naming
// labels carry the flat symbol key and are resolved once layout is
// complete; all other operands carry their final value from the start.
type operand struct {
	kind  arch.OperandKind
	value int64
	sym   string  // flat symbol key, "" when value is already resolved
	alt   string  // in-scope local fallback for bare references
	pos   fstring // source position, for error reporting
}

// A data segment contains the encoded items of one data directive.
type data struct {
	offset int
	addr   int
	unit   int        // item size in bytes
	items  []dataItem
}

// A dataItem is literal bytes (strings), a numeric value, or a deferred
// label reference filled in after layout.
type dataItem struct {
	b     []byte
	value int64
	sym   string
	alt   string
	pos   fstring
}

func (d *data) address() int {
	return d.addr
}

func (d *data) length() int {
	n := 0
	for _, item := range d.items {
		if item.b != nil {
			n += len(item.b)
		} else {
			n += d.unit
		}
	}
	return n
}

// A reservation segment contains uninitialized space, emitted as zeros.
type reservation struct {
	offset int
	addr   int
	bytes  int
}

func (r *reservation) address() int {
	return r.addr
}

func (r *reservation) length() int {
	return r.bytes
}

// Sections are emitted contiguously in canonical order; sections not on
// this list follow in order of first appearance.
var canonicalSections = []string{"text", "data", "rodata", "ivt"}

// A section is a named, contiguous region of the output image.
type section struct {
	name     string
	base     int // absolute base address, assigned during layout
	size     int // total byte size, final once scanning completes
	segments []segment
}

func (s *section) add(seg segment) {
	s.segments = append(s.segments, seg)
	s.size += seg.length()
}

// A sectionTable tracks all sections seen during scanning and their
// emission order.
type sectionTable struct {
	sections map[string]*section
	seen     []string // every section name in order of first appearance
}

func newSectionTable() *sectionTable {
	return &sectionTable{sections: make(map[string]*section)}
}

// get returns the named section, creating it on first use.
func (t *sectionTable) get(name string) *section {
	if s, ok := t.sections[name]; ok {
		return s
	}
	s := &section{name: name, base: -1}
	t.sections[name] = s
	t.seen = append(t.seen, name)
	return s
}

// ordered returns the sections in emission order: canonical names first,
// then the rest by first appearance.
func (t *sectionTable) ordered() []*section {
	var out []*section
	canonical := make(map[string]bool, len(canonicalSections))
	for _, name := range canonicalSections {
		canonical[name] = true
		if s, ok := t.sections[name]; ok {
			out = append(out, s)
		}
	}
	for _, name := range t.seen {
		if !canonical[name] {
			out = append(out, t.sections[name])
		}
	}
	return out
}

// layout assigns base addresses to all sections, packing them
// back-to-back from the origin, and absolute addresses to every segment.
// It returns the total image size.
func (t *sectionTable) layout(origin int) int {
	addr := origin
	for _, s := range t.ordered() {
		s.base = addr
		for _, seg := range s.segments {
			switch ss := seg.(type) {
			case *instruction:
				ss.addr = s.base + ss.offset
			case *data:
				ss.addr = s.base + ss.offset
			case *reservation:
				ss.addr = s.base + ss.offset
			}
		}
		addr += s.size
	}
	return addr - origin
}
