package asm

import (
	"encoding/json"
	"io"
	"sort"
)

// A SourceMap describes an assembled image: its sections, its symbols,
// and the mapping between source code line numbers and machine code
// addresses.
type SourceMap struct {
	Version  int    // instruction table version
	Origin   uint32 // load address of the first byte
	Size     uint32 // image size in bytes
	CRC      uint32 // IEEE CRC-32 of the image
	Files    []string
	Lines    []SourceLine
	Sections []SectionInfo
	Symbols  []SymbolInfo
}

// A SourceLine represents a mapping between a machine code address and
// the source code file and line number used to generate it.
type SourceLine struct {
	Address   int // Machine code address
	FileIndex int // Source code file index
	Line      int // Source code line number
}

// A SectionInfo records the placement of one section in the image.
type SectionInfo struct {
	Name string
	Base uint32
	Size uint32
}

// A SymbolInfo records the resolved address of one label.
type SymbolInfo struct {
	Name    string
	Address uint32
}

// Search searches the source map for a mapping with the requested address.
func (s *SourceMap) Search(addr int) (filename string, line int) {
	i := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].Address >= addr
	})
	if i < len(s.Lines) && s.Lines[i].Address == addr {
		return s.Files[s.Lines[i].FileIndex], s.Lines[i].Line
	}
	return "", -1
}

// FindSymbol returns the address of the named label, if present.
func (s *SourceMap) FindSymbol(name string) (addr uint32, ok bool) {
	for _, sym := range s.Symbols {
		if sym.Name == name {
			return sym.Address, true
		}
	}
	return 0, false
}

// ReadFrom reads the contents of an exported source map file.
func (s *SourceMap) ReadFrom(r io.Reader) (n int64, err error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}

	err = json.Unmarshal(b, s)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// WriteTo writes the contents of the source map to an output stream.
func (s *SourceMap) WriteTo(w io.Writer) (n int64, err error) {
	b, err := json.Marshal(*s)
	if err != nil {
		return 0, err
	}

	nn, err := w.Write(b)
	return int64(nn), err
}
