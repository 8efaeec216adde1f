// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package asm implements a two-pass Sarch32 assembler.
package asm

import (
	"bufio"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarch32/sarchasm/arch"
)

type pseudoOpData struct {
	fn    func(a *assembler, line fstring, args []token, param any) error
	param any
}

var pseudoOps = map[string]pseudoOpData{
	".section": {fn: (*assembler).parseSection},
	".define":  {fn: (*assembler).parseDefine},
	".db":      {fn: (*assembler).parseData, param: 1},
	".dw":      {fn: (*assembler).parseData, param: 2},
	".dd":      {fn: (*assembler).parseData, param: 4},
	".resb":    {fn: (*assembler).parseReserve},
}

// A phase tracks the assembler's progress through its passes. Phases
// only advance; a failure in any phase moves directly to phaseFailed.
type phase byte

const (
	phaseInit phase = iota
	phaseScanning
	phaseLayoutComplete
	phaseEncoding
	phaseDone
	phaseFailed
)

var phaseName = []string{
	"init",
	"scanning",
	"layout complete",
	"encoding",
	"done",
	"failed",
}

func (p phase) String() string {
	return phaseName[p]
}

// The assembler is a state object used during the assembly of
// machine code from assembly code.
type assembler struct {
	instSet     *arch.InstructionSet // instruction encoding table
	origin      int                  // requested origin
	phase       phase                // current assembly phase
	r           io.Reader            // the reader passed to Assemble
	files       []string             // processed files
	sections    *sectionTable        // all sections seen during scanning
	cur         *section             // section currently receiving segments
	symbols     *symbolTable         // labels and constants
	scopeLabel  string               // global label currently in scope
	sourceLines []SourceLine         // source code line mappings
	code        []byte               // generated machine code
	out         io.Writer            // output used for verbose output
	verbose     bool                 // verbose output
	errors      []asmerror           // errors encountered during assembly
}

// Assembly contains the assembled machine code and other data associated
// with the machine code.
type Assembly struct {
	Code   []byte   // Assembled machine code
	Origin uint32   // Load address of the first byte
	Errors []string // Errors encountered during assembly
}

// ReadFrom reads machine code from a binary input source.
func (a *Assembly) ReadFrom(r io.Reader) (n int64, err error) {
	a.Errors = []string{}
	a.Code, err = io.ReadAll(r)
	return int64(len(a.Code)), err
}

// WriteTo saves machine code as binary data into an output writer.
func (a *Assembly) WriteTo(w io.Writer) (n int64, err error) {
	nn, err := w.Write(a.Code)
	return int64(nn), err
}

// Option type used by the Assemble function.
type Option uint

// Options for the Assemble function.
const (
	Verbose Option = 1 << iota // verbose output during assembly
)

// AssembleFile reads a file containing Sarch32 assembly code, assembles
// it, and produces a binary output file and a source map file. An empty
// outPath places the binary next to the source file.
func AssembleFile(path, outPath string, origin uint32, options Option, out io.Writer) error {
	inFile, err := os.Open(path)
	if err != nil {
		return err
	}
	defer inFile.Close()

	assembly, sourceMap, err := Assemble(inFile, path, origin, out, options)
	if err != nil {
		for _, e := range assembly.Errors {
			fmt.Fprintln(out, e)
		}
		return err
	}

	binPath := outPath
	if binPath == "" {
		ext := filepath.Ext(path)
		binPath = path[:len(path)-len(ext)] + ".bin"
	}
	binFile, err := os.OpenFile(binPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer binFile.Close()

	_, err = assembly.WriteTo(binFile)
	if err != nil {
		return err
	}

	mapExt := filepath.Ext(binPath)
	mapPath := binPath[:len(binPath)-len(mapExt)] + ".map"
	mapFile, err := os.OpenFile(mapPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer mapFile.Close()

	_, err = sourceMap.WriteTo(mapFile)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assembled '%s' to produce '%s' and '%s'.\n",
		filepath.Base(path),
		filepath.Base(binPath),
		filepath.Base(mapPath))
	return nil
}

// Assemble reads data from the provided stream and attempts to assemble
// it into a Sarch32 memory image based at the requested origin.
func Assemble(r io.Reader, filename string, origin uint32, out io.Writer, options Option) (*Assembly, *SourceMap, error) {
	if out == nil {
		out = os.Stdout
	}

	a := &assembler{
		instSet:  arch.DefaultInstructionSet(),
		origin:   int(origin),
		phase:    phaseInit,
		r:        r,
		files:    []string{filename},
		sections: newSectionTable(),
		symbols:  newSymbolTable(),
		out:      out,
		verbose:  (options & Verbose) != 0,
	}

	// Assembly consists of the following steps
	steps := []func(a *assembler) error{
		(*assembler).scan,   // Pass 1: lex and parse, assigning section offsets
		(*assembler).layout, // Pack sections and resolve label addresses
		(*assembler).encode, // Pass 2: generate the machine code
	}

	// Execute assembler steps, stopping at the first error.
	var err error
	for _, step := range steps {
		err = step(a)
		if err == nil && len(a.errors) > 0 {
			err = a.errors[0].cat
		}
		if err != nil {
			a.phase = phaseFailed
			break
		}
	}
	if a.phase != phaseFailed {
		a.phase = phaseDone
	}
	a.log("phase: %s", a.phase)

	errors := make([]string, 0, len(a.errors))
	for _, e := range a.errors {
		errors = append(errors, e.format(a.files))
	}

	assembly := &Assembly{
		Origin: origin,
		Errors: errors,
	}
	if err != nil {
		// A failed assembly produces no output at all.
		return assembly, nil, err
	}
	assembly.Code = a.code

	sourceMap := &SourceMap{
		Version: arch.TableVersion,
		Origin:  origin,
		Size:    uint32(len(a.code)),
		CRC:     crc32.ChecksumIEEE(a.code),
		Files:   a.files,
		Lines:   a.sourceLines,
	}
	for _, s := range a.sections.ordered() {
		sourceMap.Sections = append(sourceMap.Sections, SectionInfo{
			Name: s.name,
			Base: uint32(s.base),
			Size: uint32(s.size),
		})
	}
	for _, name := range a.symbols.order {
		sym := a.symbols.lookup(name)
		if sym.kind == symLabel {
			sourceMap.Symbols = append(sourceMap.Symbols, SymbolInfo{
				Name:    displayName(name),
				Address: uint32(sym.value),
			})
		}
	}

	return assembly, sourceMap, nil
}

// Pass 1. Read the assembly code line by line, lex each line, and parse
// the resulting tokens. Every segment is assigned a section-relative
// offset as it is created, so label symbols carry concrete offsets
// immediately.
func (a *assembler) scan() error {
	a.phase = phaseScanning
	a.logSection("Scanning assembly code")

	scanner := bufio.NewScanner(a.r)
	row := 1
	for scanner.Scan() {
		line := newFstring(0, row, scanner.Text())
		err := a.parseLine(line.stripTrailingComment())
		if err != nil {
			return err
		}
		row++
	}
	if err := scanner.Err(); err != nil {
		a.addError(errIO, newFstring(0, row, ""), "read failed: %v", err)
		return errIO
	}
	return nil
}

// Pack the sections into a contiguous image and assign every label its
// absolute address.
func (a *assembler) layout() error {
	a.logSection("Assigning addresses")

	total := a.sections.layout(a.origin)
	for _, s := range a.sections.ordered() {
		a.log("%-10s Base:$%08X Size:%d", s.name, s.base, s.size)
	}
	a.log("image size: %d", total)

	for _, name := range a.symbols.order {
		sym := a.symbols.lookup(name)
		if sym.kind != symLabel {
			continue
		}
		sym.value = int64(sym.section.base + sym.offset)
		a.log("%-15s Addr:$%08X", displayName(name), sym.value)
	}

	for _, s := range a.sections.ordered() {
		for _, seg := range s.segments {
			if inst, ok := seg.(*instruction); ok {
				a.sourceLines = append(a.sourceLines, SourceLine{
					Address:   inst.addr,
					FileIndex: inst.fileIndex,
					Line:      inst.line,
				})
			}
		}
	}

	a.phase = phaseLayoutComplete
	return nil
}

// Pass 2. Walk the sections in emission order and generate machine code,
// resolving deferred label references along the way.
func (a *assembler) encode() error {
	a.phase = phaseEncoding
	a.logSection("Generating code")

	for _, s := range a.sections.ordered() {
		a.log("--- section %s ---", s.name)
		for _, seg := range s.segments {
			var err error
			switch ss := seg.(type) {
			case *instruction:
				err = a.encodeInstruction(ss)
			case *data:
				err = a.encodeData(ss)
			case *reservation:
				a.code = append(a.code, make([]byte, ss.bytes)...)
				a.log("%08X  .RESB Len:%d", ss.addr, ss.bytes)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *assembler) encodeInstruction(inst *instruction) error {
	start := len(a.code)

	if inst.inst.Extended() {
		a.code = append(a.code, toBytes(2, int64(inst.inst.Opcode))...)
	} else {
		a.code = append(a.code, byte(inst.inst.Opcode))
	}

	for i := range inst.operands {
		o := &inst.operands[i]
		v, err := a.resolveOperand(o, inst)
		if err != nil {
			return err
		}
		a.code = append(a.code, toBytes(o.kind.Size(), v)...)
	}

	a.log("%08X-   %-17s %s", inst.addr, byteString(a.code[start:]), inst.mnemonic.str)
	return nil
}

// resolveOperand produces the final field value of an operand, resolving
// a deferred label reference and range-checking the result.
func (a *assembler) resolveOperand(o *operand, inst *instruction) (int64, error) {
	v := o.value
	if o.sym != "" {
		sym := a.symbols.find(o.sym, o.alt)
		switch {
		case sym == nil:
			a.addError(errSymbol, o.pos, "symbol '%s' undefined", displayName(o.sym))
			return 0, errSymbol
		case sym.kind == symConstant:
			a.addError(errSymbol, o.pos, "constant '%s' used before its definition", o.sym)
			return 0, errSymbol
		}
		v = sym.value
	}

	if o.kind == arch.RelPtr {
		v -= int64(inst.addr + inst.inst.Length())
	}

	if !valueInRange(o.kind, v) {
		a.addError(errEncoding, o.pos, "value %d out of range for %s operand", v, o.kind)
		return 0, errEncoding
	}
	return v, nil
}

func (a *assembler) encodeData(d *data) error {
	start := len(a.code)
	for _, item := range d.items {
		if item.b != nil {
			a.code = append(a.code, item.b...)
			continue
		}

		v := item.value
		if item.sym != "" {
			sym := a.symbols.find(item.sym, item.alt)
			if sym == nil {
				a.addError(errSymbol, item.pos, "symbol '%s' undefined", displayName(item.sym))
				return errSymbol
			}
			v = sym.value
		}

		kind := dataKind(d.unit)
		if !valueInRange(kind, v) {
			a.addError(errEncoding, item.pos, "value %d out of range for %d-byte data item", v, d.unit)
			return errEncoding
		}
		a.code = append(a.code, toBytes(d.unit, v)...)
	}
	a.logBytes(d.addr, a.code[start:])
	return nil
}

func dataKind(unit int) arch.OperandKind {
	switch unit {
	case 1:
		return arch.Imm8
	case 2:
		return arch.Imm16
	default:
		return arch.Imm32
	}
}

// valueInRange reports whether a value fits the encoded width of an
// operand kind, allowing both signed and unsigned interpretations.
func valueInRange(kind arch.OperandKind, v int64) bool {
	switch kind {
	case arch.Imm8:
		return v >= math.MinInt8 && v <= math.MaxUint8
	case arch.Imm16:
		return v >= math.MinInt16 && v <= math.MaxUint16
	case arch.RelPtr:
		return v >= math.MinInt32 && v <= math.MaxInt32
	case arch.Imm32, arch.AbsPtr:
		return v >= math.MinInt32 && v <= math.MaxUint32
	default:
		return v >= 0 && v <= math.MaxUint8
	}
}

// Parse a single line of assembly code.
func (a *assembler) parseLine(line fstring) error {
	if line.isEmpty() {
		return nil
	}

	a.log("---")

	tokens, err := a.lexLine(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	// Handle label definitions at the start of the statement.
	for len(tokens) > 0 {
		switch tokens[0].kind {
		case tkLabel:
			err = a.storeLabel(tokens[0].text, false)
		case tkLocalLabel:
			err = a.storeLabel(tokens[0].text, true)
		default:
			goto labelsDone
		}
		if err != nil {
			return err
		}
		tokens = tokens[1:]
	}
labelsDone:

	if len(tokens) == 0 {
		return nil
	}

	switch tokens[0].kind {
	case tkDirective:
		name := strings.ToLower(tokens[0].text.str)
		op, ok := pseudoOps[name]
		if !ok {
			a.addError(errDirective, tokens[0].text, "unknown directive '%s'", tokens[0].text.str)
			return errDirective
		}
		return op.fn(a, tokens[0].text, tokens[1:], op.param)

	case tkIdent:
		return a.parseInstruction(tokens[0].text, tokens[1:])

	default:
		a.addError(errLex, tokens[0].text, "unexpected %s at start of statement", tokens[0].kind)
		return errLex
	}
}

// Store a label at the current position of the active section. A global
// label also becomes the scope for subsequent local labels.
func (a *assembler) storeLabel(name fstring, local bool) error {
	key := name.str
	if local {
		if a.scopeLabel == "" {
			a.addError(errSymbol, name, "local label '@%s' appears before any global label", name.str)
			return errSymbol
		}
		key = a.scopeLabel + "@" + name.str
	}

	sec := a.currentSection()
	sym := &symbol{
		name:    key,
		kind:    symLabel,
		section: sec,
		offset:  sec.size,
		pos:     name,
	}
	if err := a.symbols.define(sym); err != nil {
		a.addError(errSymbol, name, "%v", err)
		return errSymbol
	}

	if !local {
		a.scopeLabel = name.str
	}
	a.logLine(name, "label=%s off=%d", displayName(key), sym.offset)
	return nil
}

// currentSection returns the section receiving segments, defaulting to
// 'text' when no section directive has been seen yet.
func (a *assembler) currentSection() *section {
	if a.cur == nil {
		a.cur = a.sections.get("text")
	}
	return a.cur
}

// Parse a '.section' directive. The name may be bare or quoted.
func (a *assembler) parseSection(line fstring, args []token, param any) error {
	if len(args) != 1 || (args[0].kind != tkIdent && args[0].kind != tkString) {
		a.addError(errDirective, line, "section directive requires a name")
		return errDirective
	}
	name := args[0].text.str
	if name == "" || strings.ContainsAny(name, ".@") {
		a.addError(errDirective, args[0].text, "invalid section name '%s'", name)
		return errDirective
	}

	a.cur = a.sections.get(name)
	a.logLine(args[0].text, "section=%s", name)
	return nil
}

// Parse a '.define' constant definition. The value may be a literal or
// the name of a previously defined constant.
func (a *assembler) parseDefine(line fstring, args []token, param any) error {
	if len(args) != 2 || args[0].kind != tkIdent {
		a.addError(errDirective, line, "define directive requires a name and a value")
		return errDirective
	}

	name := args[0].text
	if strings.ContainsAny(name.str, ".@") {
		a.addError(errDirective, name, "invalid constant name '%s'", name.str)
		return errDirective
	}

	var value int64
	switch args[1].kind {
	case tkNumber:
		value = args[1].value
	case tkIdent:
		sym := a.symbols.lookup(args[1].text.str)
		if sym == nil || sym.kind != symConstant {
			a.addError(errSymbol, args[1].text, "constant '%s' undefined", args[1].text.str)
			return errSymbol
		}
		value = sym.value
	default:
		a.addError(errDirective, args[1].text, "invalid constant value")
		return errDirective
	}

	// Redefining a constant is a directive error, unlike label clashes.
	sym := &symbol{name: name.str, kind: symConstant, value: value, pos: name}
	if err := a.symbols.define(sym); err != nil {
		a.addError(errDirective, name, "%v", err)
		return errDirective
	}

	a.logLine(name, "define %s=%d", name.str, value)
	return nil
}

// Parse a data directive (.db, .dw, .dd). Items are literals, constants,
// label references, or (for .db) strings, with optional comma separators.
func (a *assembler) parseData(line fstring, args []token, param any) error {
	unit := param.(int)
	seg := &data{offset: a.currentSection().size, addr: -1, unit: unit}

	for i := 0; i < len(args); i++ {
		tok := args[i]
		switch tok.kind {
		case tkComma:
			continue

		case tkNumber:
			seg.items = append(seg.items, dataItem{value: tok.value, pos: tok.text})

		case tkString:
			if unit != 1 {
				a.addError(errDirective, tok.text, "string data requires .db")
				return errDirective
			}
			seg.items = append(seg.items, dataItem{b: []byte(tok.text.str), pos: tok.text})

		case tkIdent:
			item, err := a.parseDataRef(tok.text)
			if err != nil {
				return err
			}
			seg.items = append(seg.items, item)

		default:
			a.addError(errDirective, tok.text, "invalid data item")
			return errDirective
		}
	}

	if len(seg.items) == 0 {
		a.addError(errDirective, line, "data directive requires at least one item")
		return errDirective
	}

	a.currentSection().add(seg)
	a.logLine(line, "data unit=%d len=%d", unit, seg.length())
	return nil
}

// parseDataRef resolves a named data item: a previously defined constant
// folds to its value, anything else becomes a deferred label reference.
func (a *assembler) parseDataRef(ref fstring) (dataItem, error) {
	key, alt, err := resolveRef(ref.str, a.scopeLabel)
	if err != nil {
		a.addError(errSymbol, ref, "%v", err)
		return dataItem{}, errSymbol
	}
	if sym := a.symbols.lookup(key); sym != nil && sym.kind == symConstant {
		return dataItem{value: sym.value, pos: ref}, nil
	}
	return dataItem{sym: key, alt: alt, pos: ref}, nil
}

// Parse a '.resb' reservation directive.
func (a *assembler) parseReserve(line fstring, args []token, param any) error {
	if len(args) != 1 || args[0].kind != tkNumber {
		a.addError(errDirective, line, "resb directive requires a byte count")
		return errDirective
	}
	n := args[0].value
	if n < 0 || n > math.MaxInt32 {
		a.addError(errDirective, args[0].text, "invalid reservation size %d", n)
		return errDirective
	}

	sec := a.currentSection()
	sec.add(&reservation{offset: sec.size, addr: -1, bytes: int(n)})
	a.logLine(line, "resb %d", n)
	return nil
}

// Parse a Sarch32 instruction: a mnemonic followed by operands with
// optional comma separators.
func (a *assembler) parseInstruction(mnemonic fstring, args []token) error {
	inst := a.instSet.Lookup(strings.ToLower(mnemonic.str))
	if inst == nil {
		a.addError(errOperand, mnemonic, "unknown mnemonic '%s'", mnemonic.str)
		return errOperand
	}

	a.logLine(mnemonic, "op=%s", mnemonic.str)

	operands := make([]operand, 0, len(inst.Args))
	n := 0
	for i := 0; i < len(args); i++ {
		if args[i].kind == tkComma {
			continue
		}
		if n >= len(inst.Args) {
			a.addError(errOperand, args[i].text, "too many operands for '%s'", mnemonic.str)
			return errOperand
		}

		var o operand
		var err error
		o, i, err = a.parseOperand(args, i, inst.Args[n])
		if err != nil {
			return err
		}
		operands = append(operands, o)
		n++
	}
	if n < len(inst.Args) {
		a.addError(errOperand, mnemonic, "missing operand for '%s': expected %s", mnemonic.str, inst.Args[n])
		return errOperand
	}

	sec := a.currentSection()
	seg := &instruction{
		offset:    sec.size,
		addr:      -1,
		fileIndex: mnemonic.fileIndex,
		line:      mnemonic.row,
		mnemonic:  mnemonic,
		inst:      inst,
		operands:  operands,
	}
	sec.add(seg)
	return nil
}

// parseOperand consumes one operand starting at args[i] and coerces it
// to the kind the instruction table expects. It returns the index of the
// last token consumed.
func (a *assembler) parseOperand(args []token, i int, want arch.OperandKind) (operand, int, error) {
	tok := args[i]

	if tok.kind == tkLBracket {
		if want != arch.RegPtr {
			a.addError(errOperand, tok.text, "unexpected indirect operand: expected %s", want)
			return operand{}, i, errOperand
		}
		if i+2 >= len(args) || args[i+1].kind != tkIdent || args[i+2].kind != tkRBracket {
			a.addError(errOperand, tok.text, "malformed indirect operand")
			return operand{}, i, errOperand
		}
		reg, ok := arch.LookupRegister(strings.ToLower(args[i+1].text.str))
		if !ok || reg.Width != arch.Width32 {
			a.addError(errOperand, args[i+1].text, "indirect operand requires a dword register")
			return operand{}, i, errOperand
		}
		return operand{kind: want, value: int64(reg.ID), pos: tok.text}, i + 2, nil
	}

	o, err := a.coerceOperand(tok, want)
	return o, i, err
}

var widthKind = map[arch.OperandKind]arch.RegisterWidth{
	arch.Reg32: arch.Width32,
	arch.Reg16: arch.Width16,
	arch.Reg8:  arch.Width8,
}

func (a *assembler) coerceOperand(tok token, want arch.OperandKind) (operand, error) {
	switch want {
	case arch.Reg32, arch.Reg16, arch.Reg8:
		if tok.kind != tkIdent {
			a.addError(errOperand, tok.text, "expected a register, got %s", tok.kind)
			return operand{}, errOperand
		}
		reg, ok := arch.LookupRegister(strings.ToLower(tok.text.str))
		if !ok {
			a.addError(errOperand, tok.text, "unknown register '%s'", tok.text.str)
			return operand{}, errOperand
		}
		if reg.Width != widthKind[want] {
			a.addError(errOperand, tok.text, "register '%s' has the wrong width for %s", tok.text.str, want)
			return operand{}, errOperand
		}
		return operand{kind: want, value: int64(reg.ID), pos: tok.text}, nil

	case arch.Cond:
		if tok.kind != tkIdent {
			a.addError(errOperand, tok.text, "expected a condition code, got %s", tok.kind)
			return operand{}, errOperand
		}
		c, ok := arch.LookupCondition(strings.ToLower(tok.text.str))
		if !ok {
			a.addError(errOperand, tok.text, "unknown condition '%s'", tok.text.str)
			return operand{}, errOperand
		}
		return operand{kind: want, value: int64(c), pos: tok.text}, nil

	case arch.RegPtr:
		a.addError(errOperand, tok.text, "expected an indirect operand like [r0]")
		return operand{}, errOperand

	default:
		return a.coerceValueOperand(tok, want)
	}
}

// coerceValueOperand handles immediate and pointer operand kinds. A
// previously defined constant folds immediately; a label reference is
// deferred until addresses are known.
func (a *assembler) coerceValueOperand(tok token, want arch.OperandKind) (operand, error) {
	switch tok.kind {
	case tkNumber:
		return operand{kind: want, value: tok.value, pos: tok.text}, nil

	case tkIdent:
		if _, ok := arch.LookupRegister(strings.ToLower(tok.text.str)); ok {
			a.addError(errOperand, tok.text, "expected %s operand, got register '%s'", want, tok.text.str)
			return operand{}, errOperand
		}
		key, alt, err := resolveRef(tok.text.str, a.scopeLabel)
		if err != nil {
			a.addError(errSymbol, tok.text, "%v", err)
			return operand{}, errSymbol
		}
		if sym := a.symbols.lookup(key); sym != nil && sym.kind == symConstant {
			return operand{kind: want, value: sym.value, pos: tok.text}, nil
		}
		return operand{kind: want, sym: key, alt: alt, pos: tok.text}, nil

	default:
		a.addError(errOperand, tok.text, "expected %s operand, got %s", want, tok.kind)
		return operand{}, errOperand
	}
}

// Append an error message to the assembler's error state.
func (a *assembler) addError(cat error, l fstring, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.errors = append(a.errors, asmerror{l, cat, msg})
	if a.verbose {
		e := asmerror{l, cat, msg}
		fmt.Fprintln(a.out, e.format(a.files))
		fmt.Fprintln(a.out, l.full)
		for i := 0; i < l.column; i++ {
			fmt.Fprintf(a.out, "-")
		}
		fmt.Fprintln(a.out, "^")
	}
}

// In verbose mode, log a string to the output writer.
func (a *assembler) log(format string, args ...any) {
	if a.verbose {
		fmt.Fprintf(a.out, format, args...)
		fmt.Fprintf(a.out, "\n")
	}
}

// In verbose mode, log a string and its associated line
// of assembly code.
func (a *assembler) logLine(line fstring, format string, args ...any) {
	if a.verbose {
		detail := fmt.Sprintf(format, args...)
		fmt.Fprintf(a.out, "%-3d %-3d | %-20s | %s\n", line.row, line.column+1, detail, line.str)
	}
}

// In verbose mode, log a series of bytes with starting address.
func (a *assembler) logBytes(addr int, b []byte) {
	if a.verbose {
		for i, n := 0, len(b); i < n; i += 6 {
			j := i + 6
			if j > n {
				j = n
			}
			a.log("%08X-*  %s", addr+i, byteString(b[i:j]))
		}
	}
}

// In verbose mode, log a section header to the output writer.
func (a *assembler) logSection(name string) {
	if a.verbose {
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
		fmt.Fprintf(a.out, "-- %s --\n", name)
		fmt.Fprintln(a.out, strings.Repeat("-", len(name)+6))
	}
}
