// Copyright 2018 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host provides an interactive console for working with Sarch32
// images. Within the host it is possible to assemble source files, load
// binary images and their source maps, disassemble code, inspect
// sections and symbols, and dump memory.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/sarch32/sarchasm/asm"
	"github.com/sarch32/sarchasm/disasm"
)

var errQuit = errors.New("quitting")

// A Host holds one loaded Sarch32 image and the console state used to
// inspect it.
type Host struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	image       []byte
	origin      uint32
	sourceMap   *asm.SourceMap
	settings    *settings
	lastCmd     *cmd.Selection
}

// New creates a new host environment.
func New() *Host {
	return &Host{
		settings: newSettings(),
	}
}

// AssembleFile assembles a source file, producing a binary file and a
// source map file. An empty outPath places them next to the source file.
func (h *Host) AssembleFile(filename, outPath string, origin uint32, verbose bool) error {
	var options asm.Option
	if verbose {
		options |= asm.Verbose
	}
	return asm.AssembleFile(filename, outPath, origin, options, os.Stdout)
}

// RunCommands accepts host commands from a reader and outputs the results
// to a writer. If the commands are interactive, a prompt is displayed while
// the host waits for the next command to be entered.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	h.input = bufio.NewScanner(r)
	h.output = bufio.NewWriter(w)
	h.interactive = interactive

	if interactive {
		h.println("sarchasm console. Type 'help' for a list of commands.")
	}

	for {
		h.prompt()

		line, err := h.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case err == cmd.ErrNotFound:
				h.println("Command not found.")
				continue
			case err == cmd.ErrAmbiguous:
				h.println("Command is ambiguous.")
				continue
			case err != nil:
				h.printf("ERROR: %v.\n", err)
				continue
			}
		} else if h.lastCmd != nil {
			c = *h.lastCmd
		}

		if c.Command == nil {
			continue
		}
		h.lastCmd = &c

		handler := c.Command.Data.(func(*Host, cmd.Selection) error)
		err = handler(h, c)
		if err != nil {
			break
		}
	}

	h.flush()
}

// Break interrupts whatever the host is doing and redisplays the prompt.
func (h *Host) Break() {
	h.println()
	h.prompt()
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.output, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.output, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.output, args...)
	h.flush()
}

func (h *Host) flush() {
	h.output.Flush()
}

func (h *Host) getLine() (string, error) {
	if h.input.Scan() {
		return h.input.Text(), nil
	}
	if h.input.Err() != nil {
		return "", h.input.Err()
	}
	return "", io.EOF
}

func (h *Host) prompt() {
	if h.interactive {
		h.printf("* ")
	}
}

func (h *Host) displayUsage(path string) {
	if d, ok := cmdDocs[path]; ok {
		h.printf("Usage: %s\n", d.usage)
	}
}

// parseAddr parses a numeric console argument: decimal, or hexadecimal
// with a 0x prefix.
func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address '%s'", s)
	}
	return uint32(v), nil
}

// loaded reports whether an image is present, complaining if not.
func (h *Host) loaded() bool {
	if len(h.image) == 0 {
		h.println("No image loaded.")
		return false
	}
	return true
}

func (h *Host) cmdHelp(c cmd.Selection) error {
	if len(c.Args) > 0 {
		path := strings.Join(c.Args, " ")
		d, ok := cmdDocs[path]
		if !ok {
			h.printf("No help available for '%s'.\n", path)
			return nil
		}
		h.printf("Usage: %s\n\n%s\n", d.usage, d.description)
		return nil
	}

	h.println("Commands:")
	for _, path := range cmdOrder {
		h.printf("    %-14s %s\n", path, cmdDocs[path].brief)
	}
	return nil
}

func (h *Host) cmdAssemble(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage("assemble")
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".asm"
	}

	var origin uint32
	if len(c.Args) >= 2 {
		var err error
		origin, err = parseAddr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	var options asm.Option
	if h.settings.Verbose {
		options |= asm.Verbose
	}
	assembly, sourceMap, err := asm.Assemble(file, filename, origin, h.output, options)
	if err != nil {
		h.printf("Failed to assemble '%s':\n", filepath.Base(filename))
		for _, e := range assembly.Errors {
			h.println(e)
		}
		return nil
	}

	ext := filepath.Ext(filename)
	prefix := filename[:len(filename)-len(ext)]
	if err := writeFile(prefix+".bin", assembly); err != nil {
		h.printf("%v\n", err)
		return nil
	}
	if err := writeFile(prefix+".map", sourceMap); err != nil {
		h.printf("%v\n", err)
		return nil
	}

	h.image = assembly.Code
	h.origin = origin
	h.sourceMap = sourceMap
	h.settings.NextDisasmAddr = origin
	h.settings.NextMemDumpAddr = origin

	h.printf("Assembled '%s': %d bytes at $%08X.\n",
		filepath.Base(filename), len(assembly.Code), origin)
	return nil
}

func writeFile(path string, src io.WriterTo) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create '%s': %v", filepath.Base(path), err)
	}
	defer file.Close()

	if _, err := src.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write '%s': %v", filepath.Base(path), err)
	}
	return nil
}

func (h *Host) cmdLoad(c cmd.Selection) error {
	if len(c.Args) < 1 {
		h.displayUsage("load")
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	file, err := os.Open(filename)
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	defer file.Close()

	assembly := &asm.Assembly{}
	if _, err := assembly.ReadFrom(file); err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	// Use the source map for the origin if one sits next to the binary.
	var origin uint32
	var sourceMap *asm.SourceMap
	ext := filepath.Ext(filename)
	mapPath := filename[:len(filename)-len(ext)] + ".map"
	if mapFile, err := os.Open(mapPath); err == nil {
		sourceMap = &asm.SourceMap{}
		if _, err := sourceMap.ReadFrom(mapFile); err != nil {
			h.printf("Failed to read '%s': %v\n", filepath.Base(mapPath), err)
			sourceMap = nil
		}
		mapFile.Close()
	}
	if sourceMap != nil {
		origin = sourceMap.Origin
	}
	if len(c.Args) >= 2 {
		origin, err = parseAddr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	h.image = assembly.Code
	h.origin = origin
	h.sourceMap = sourceMap
	h.settings.NextDisasmAddr = origin
	h.settings.NextMemDumpAddr = origin

	h.printf("Loaded '%s': %d bytes at $%08X.\n",
		filepath.Base(filename), len(h.image), origin)
	return nil
}

func (h *Host) cmdDisassemble(c cmd.Selection) error {
	if !h.loaded() {
		return nil
	}

	addr := h.settings.NextDisasmAddr
	if len(c.Args) >= 1 {
		var err error
		addr, err = h.resolveAddrArg(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	lines := h.settings.DisasmLines
	if len(c.Args) >= 2 {
		n, err := parseAddr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		lines = int(n)
	}

	off := int(addr) - int(h.origin)
	for i := 0; i < lines && off >= 0 && off < len(h.image); i++ {
		line, next := disasm.Disassemble(h.image, off, h.origin)
		b := h.image[off:next]
		h.printf("%08X-  %-18s %s\n", h.origin+uint32(off), byteString(b), line)
		off = next
	}

	h.settings.NextDisasmAddr = h.origin + uint32(off)
	return nil
}

func (h *Host) cmdSections(c cmd.Selection) error {
	if h.sourceMap == nil {
		h.println("No source map loaded.")
		return nil
	}

	h.println("Section    Base      Size")
	h.println("--------   --------  ------")
	for _, s := range h.sourceMap.Sections {
		h.printf("%-10s $%08X %6d\n", s.Name, s.Base, s.Size)
	}
	return nil
}

func (h *Host) cmdSymbols(c cmd.Selection) error {
	if h.sourceMap == nil {
		h.println("No source map loaded.")
		return nil
	}

	symbols := make([]asm.SymbolInfo, len(h.sourceMap.Symbols))
	copy(symbols, h.sourceMap.Symbols)
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i].Address < symbols[j].Address
	})

	h.println("Address    Symbol")
	h.println("--------   ------")
	for _, s := range symbols {
		h.printf("$%08X  %s\n", s.Address, s.Name)
	}
	return nil
}

func (h *Host) cmdMemoryDump(c cmd.Selection) error {
	if !h.loaded() {
		return nil
	}

	addr := h.settings.NextMemDumpAddr
	if len(c.Args) >= 1 {
		var err error
		addr, err = h.resolveAddrArg(c.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
	}

	count := h.settings.MemDumpBytes
	if len(c.Args) >= 2 {
		n, err := parseAddr(c.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		count = int(n)
	}

	off := int(addr) - int(h.origin)
	for count > 0 && off >= 0 && off < len(h.image) {
		n := 16
		if n > count {
			n = count
		}
		if off+n > len(h.image) {
			n = len(h.image) - off
		}
		b := h.image[off : off+n]
		h.printf("%08X-  %-47s  %s\n", h.origin+uint32(off), byteString(b), asciiString(b))
		off += n
		count -= n
	}

	h.settings.NextMemDumpAddr = h.origin + uint32(off)
	return nil
}

// resolveAddrArg interprets a console address argument: a number, or the
// name of a symbol in the loaded source map.
func (h *Host) resolveAddrArg(arg string) (uint32, error) {
	if addr, err := parseAddr(arg); err == nil {
		return addr, nil
	}
	if h.sourceMap != nil {
		if addr, ok := h.sourceMap.FindSymbol(arg); ok {
			return addr, nil
		}
	}
	return 0, fmt.Errorf("invalid address '%s'", arg)
}

func (h *Host) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		h.println("Variables:")
		h.settings.Display(h.output)
		h.flush()

	case 2:
		key, value := c.Args[0], c.Args[1]
		var err error
		switch h.settings.Kind(key) {
		case reflect.Bool:
			var b bool
			b, err = strconv.ParseBool(value)
			if err == nil {
				err = h.settings.Set(key, b)
			}
		case reflect.Int, reflect.Uint32:
			var n uint64
			n, err = strconv.ParseUint(value, 0, 32)
			if err == nil {
				err = h.settings.Set(key, n)
			}
		default:
			err = errors.New("unknown variable")
		}
		if err != nil {
			h.printf("Unable to set '%s': %v\n", key, err)
		}

	default:
		h.displayUsage("set")
	}
	return nil
}

func (h *Host) cmdQuit(c cmd.Selection) error {
	return errQuit
}
