// Copyright 2014 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a Sarch32 instruction set disassembler.
package disasm

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/sarch32/sarchasm/arch"
)

// Disassemble decodes the instruction found at offset 'off' in the image
// 'b', which is loaded at address 'origin'. It returns the rendered
// instruction text and the offset of the following instruction. Bytes
// that decode to no known instruction are rendered as a '.db' line so a
// dump can continue past data.
func Disassemble(b []byte, off int, origin uint32) (line string, next int) {
	set := arch.DefaultInstructionSet()

	opcode := uint16(b[off])
	size := 1
	if opcode&0x80 != 0 {
		if off+1 >= len(b) {
			return fmt.Sprintf(".db 0x%02x", b[off]), off + 1
		}
		opcode |= uint16(b[off+1]) << 8
		size = 2
	}

	inst := set.LookupOpcode(opcode)
	if inst == nil || off+inst.Length() > len(b) {
		return fmt.Sprintf(".db 0x%02x", b[off]), off + 1
	}

	addr := origin + uint32(off)
	operands := make([]string, 0, len(inst.Args))
	p := off + size
	for _, kind := range inst.Args {
		operands = append(operands, formatOperand(kind, b[p:p+kind.Size()], addr, inst.Length()))
		p += kind.Size()
	}

	if len(operands) == 0 {
		return inst.Name, off + inst.Length()
	}
	return inst.Name + " " + strings.Join(operands, " "), off + inst.Length()
}

func formatOperand(kind arch.OperandKind, b []byte, addr uint32, length int) string {
	switch kind {
	case arch.Reg32:
		return regName(b[0], arch.Width32)
	case arch.Reg16:
		return regName(b[0], arch.Width16)
	case arch.Reg8:
		return regName(b[0], arch.Width8)
	case arch.RegPtr:
		return "[" + regName(b[0], arch.Width32) + "]"
	case arch.Cond:
		if name := arch.ConditionName(b[0]); name != "" {
			return name
		}
		return fmt.Sprintf("0x%02x", b[0])
	case arch.Imm8:
		return fmt.Sprintf("0x%02x", b[0])
	case arch.Imm16:
		return fmt.Sprintf("0x%04x", binary.LittleEndian.Uint16(b))
	case arch.RelPtr:
		// Render the branch target, not the stored offset.
		off := int32(binary.LittleEndian.Uint32(b))
		return fmt.Sprintf("0x%08x", addr+uint32(length)+uint32(off))
	default:
		return fmt.Sprintf("0x%08x", binary.LittleEndian.Uint32(b))
	}
}

func regName(id byte, w arch.RegisterWidth) string {
	if name := arch.RegisterName(id, w); name != "" {
		return name
	}
	return fmt.Sprintf("r?%02x", id)
}
