package arch

import "testing"

func TestInstructionLengths(t *testing.T) {
	cases := []struct {
		name   string
		length int
	}{
		{"nop", 1},
		{"halt", 1},
		{"radd", 3},
		{"iadd", 6},
		{"loadmd", 6},
		{"loadid", 6},
		{"jpc", 6},
		{"icmpb", 3},
		{"call", 5},
		{"loadpb", 3},
	}
	set := DefaultInstructionSet()
	for _, c := range cases {
		inst := set.Lookup(c.name)
		if inst == nil {
			t.Errorf("instruction '%s' missing from table", c.name)
			continue
		}
		if inst.Length() != c.length {
			t.Errorf("length of '%s' is %d, expected %d", c.name, inst.Length(), c.length)
		}
	}
}

func TestOpcodeLookup(t *testing.T) {
	set := DefaultInstructionSet()
	for _, inst := range instructions {
		found := set.LookupOpcode(inst.Opcode)
		if found == nil || found.Name != inst.Name {
			t.Errorf("opcode %#x does not round-trip to '%s'", inst.Opcode, inst.Name)
		}
	}
	if set.LookupOpcode(0x7f) != nil {
		t.Error("unassigned opcode resolved to an instruction")
	}
}

func TestExtendedOpcode(t *testing.T) {
	one := Instruction{Name: "x", Opcode: 0x11}
	two := Instruction{Name: "y", Opcode: 0x81}
	if one.Extended() || one.Length() != 1 {
		t.Error("opcode 0x11 should encode in one byte")
	}
	if !two.Extended() || two.Length() != 2 {
		t.Error("opcode 0x81 should encode in two bytes")
	}
}

func TestRegisterLookup(t *testing.T) {
	cases := []struct {
		name  string
		id    byte
		width RegisterWidth
	}{
		{"r0", 0, Width32},
		{"rf", 15, Width32},
		{"ip", 16, Width32},
		{"sp", 0x13, Width32},
		{"tptr", 21, Width32},
		{"r00", 0, Width16},
		{"rf1", 31, Width16},
		{"r00l", 0, Width8},
		{"r71h", 31, Width8},
	}
	for _, c := range cases {
		reg, ok := LookupRegister(c.name)
		if !ok {
			t.Errorf("register '%s' not found", c.name)
			continue
		}
		if reg.ID != c.id || reg.Width != c.width {
			t.Errorf("register '%s' = id %d width %d, expected id %d width %d",
				c.name, reg.ID, reg.Width, c.id, c.width)
		}
	}

	if _, ok := LookupRegister("rz"); ok {
		t.Error("lookup of 'rz' succeeded")
	}
}

func TestRegisterNames(t *testing.T) {
	if name := RegisterName(0x13, Width32); name != "sp" {
		t.Errorf("RegisterName(0x13) = %q, expected 'sp'", name)
	}
	if name := RegisterName(99, Width32); name != "" {
		t.Errorf("RegisterName(99) = %q, expected empty", name)
	}
}

func TestConditions(t *testing.T) {
	for name, want := range map[string]byte{"eq": 0, "ne": 1, "lt": 2, "gt": 3, "le": 4, "ge": 5, "cs": 6, "cc": 7} {
		c, ok := LookupCondition(name)
		if !ok || c != want {
			t.Errorf("condition '%s' = %d (%v), expected %d", name, c, ok, want)
		}
		if ConditionName(want) != name {
			t.Errorf("ConditionName(%d) = %q, expected %q", want, ConditionName(want), name)
		}
	}
}
