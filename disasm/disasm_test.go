package disasm

import "testing"

func TestDisassemble(t *testing.T) {
	image := []byte{
		0x05, 0x00, 0x00, 0x01, 0x01, 0x13, // loadid 0x01010000 sp
		0x02, 0x01, 0x02, // radd r1 r2
		0x0b, 0x00, 0xfa, 0xff, 0xff, 0xff, // jpc eq <self>
		0x0e, 0x01, 0x00, // loadpb [r1] r00l
		0x01, // halt
	}

	want := []string{
		"loadid 0x01010000 sp",
		"radd r1 r2",
		"jpc eq 0x00000009",
		"loadpb [r1] r00l",
		"halt",
	}

	off := 0
	for i, exp := range want {
		var line string
		line, off = Disassemble(image, off, 0)
		if line != exp {
			t.Errorf("line %d: got %q, expected %q", i, line, exp)
		}
	}
	if off != len(image) {
		t.Errorf("final offset %d, expected %d", off, len(image))
	}
}

func TestDisassembleUnknown(t *testing.T) {
	line, next := Disassemble([]byte{0x7f}, 0, 0)
	if line != ".db 0x7f" || next != 1 {
		t.Errorf("got %q next %d", line, next)
	}
}

func TestDisassembleTruncated(t *testing.T) {
	// An instruction cut off by the end of the image degrades to data.
	line, next := Disassemble([]byte{0x05, 0x00}, 0, 0)
	if line != ".db 0x05" || next != 1 {
		t.Errorf("got %q next %d", line, next)
	}
}
