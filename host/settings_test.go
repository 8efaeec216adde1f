package host

import (
	"reflect"
	"testing"
)

func TestSettingsSet(t *testing.T) {
	s := newSettings()

	if err := s.Set("memdumpbytes", uint64(128)); err != nil {
		t.Fatal(err)
	}
	if s.MemDumpBytes != 128 {
		t.Errorf("MemDumpBytes = %d, expected 128", s.MemDumpBytes)
	}

	// Prefix lookup resolves unambiguous abbreviations.
	if err := s.Set("verb", true); err != nil {
		t.Fatal(err)
	}
	if !s.Verbose {
		t.Error("Verbose not set")
	}

	if err := s.Set("bogus", 1); err == nil {
		t.Error("set of unknown variable succeeded")
	}
	if err := s.Set("verbose", "yes"); err == nil {
		t.Error("set with mismatched type succeeded")
	}
}

func TestSettingsKind(t *testing.T) {
	s := newSettings()
	if k := s.Kind("verbose"); k != reflect.Bool {
		t.Errorf("Kind(verbose) = %v, expected bool", k)
	}
	if k := s.Kind("nextdisasmaddr"); k != reflect.Uint32 {
		t.Errorf("Kind(nextdisasmaddr) = %v, expected uint32", k)
	}
	if k := s.Kind("bogus"); k != reflect.Invalid {
		t.Errorf("Kind(bogus) = %v, expected invalid", k)
	}
}

func TestParseAddr(t *testing.T) {
	cases := []struct {
		in   string
		out  uint32
		fail bool
	}{
		{"0", 0, false},
		{"4096", 4096, false},
		{"0x1000", 0x1000, false},
		{"main", 0, true},
		{"0x100000000", 0, true},
	}
	for _, c := range cases {
		v, err := parseAddr(c.in)
		if c.fail {
			if err == nil {
				t.Errorf("parseAddr(%q) succeeded, expected an error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAddr(%q) failed: %v", c.in, err)
		} else if v != c.out {
			t.Errorf("parseAddr(%q) = %d, expected %d", c.in, v, c.out)
		}
	}
}
