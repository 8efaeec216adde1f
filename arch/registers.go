package arch

// RegisterWidth classifies a register name by the operand width it selects.
type RegisterWidth byte

const (
	Width32 RegisterWidth = iota // full dword register
	Width16                     // word view of a dword register
	Width8                      // byte view of a dword register
)

// A Register is one addressable register name: either a full dword
// register or a word/byte view of one.
type Register struct {
	Name  string
	ID    byte
	Width RegisterWidth
}

// Dword registers. r0 through rf are general purpose; the rest are the
// special-purpose file.
var dwordRegisters = map[string]byte{
	"r0": 0, "r1": 1, "r2": 2, "r3": 3,
	"r4": 4, "r5": 5, "r6": 6, "r7": 7,
	"r8": 8, "r9": 9, "ra": 10, "rb": 11,
	"rc": 12, "rd": 13, "re": 14, "rf": 15,
	"ip":   16,
	"sr":   17,
	"mfr":  18,
	"sp":   19,
	"bp":   20,
	"tptr": 21,
}

// Word views: each dword register r0..rf exposes a low word (rN0) and a
// high word (rN1).
var wordRegisters = map[string]byte{
	"r00": 0, "r01": 1, "r10": 2, "r11": 3,
	"r20": 4, "r21": 5, "r30": 6, "r31": 7,
	"r40": 8, "r41": 9, "r50": 10, "r51": 11,
	"r60": 12, "r61": 13, "r70": 14, "r71": 15,
	"r80": 16, "r81": 17, "r90": 18, "r91": 19,
	"ra0": 20, "ra1": 21, "rb0": 22, "rb1": 23,
	"rc0": 24, "rc1": 25, "rd0": 26, "rd1": 27,
	"re0": 28, "re1": 29, "rf0": 30, "rf1": 31,
}

// Byte views: the low and high byte of each word view of r0..r7.
var byteRegisters = map[string]byte{
	"r00l": 0, "r00h": 1, "r01l": 2, "r01h": 3,
	"r10l": 4, "r10h": 5, "r11l": 6, "r11h": 7,
	"r20l": 8, "r20h": 9, "r21l": 10, "r21h": 11,
	"r30l": 12, "r30h": 13, "r31l": 14, "r31h": 15,
	"r40l": 16, "r40h": 17, "r41l": 18, "r41h": 19,
	"r50l": 20, "r50h": 21, "r51l": 22, "r51h": 23,
	"r60l": 24, "r60h": 25, "r61l": 26, "r61h": 27,
	"r70l": 28, "r70h": 29, "r71l": 30, "r71h": 31,
}

// LookupRegister resolves a register name to its id and width class.
func LookupRegister(name string) (Register, bool) {
	if id, ok := dwordRegisters[name]; ok {
		return Register{name, id, Width32}, true
	}
	if id, ok := wordRegisters[name]; ok {
		return Register{name, id, Width16}, true
	}
	if id, ok := byteRegisters[name]; ok {
		return Register{name, id, Width8}, true
	}
	return Register{}, false
}

var registerName = map[RegisterWidth]map[byte]string{
	Width32: invert(dwordRegisters),
	Width16: invert(wordRegisters),
	Width8:  invert(byteRegisters),
}

func invert(m map[string]byte) map[byte]string {
	r := make(map[byte]string, len(m))
	for name, id := range m {
		r[id] = name
	}
	return r
}

// RegisterName returns the name of the register with the requested id and
// width class. Used by the disassembler; returns "" for unassigned ids.
func RegisterName(id byte, w RegisterWidth) string {
	return registerName[w][id]
}

// Condition codes tested by conditional jumps.
var conditions = map[string]byte{
	"eq": 0,
	"ne": 1,
	"lt": 2,
	"gt": 3,
	"le": 4,
	"ge": 5,
	"cs": 6,
	"cc": 7,
}

var conditionName = invert(conditions)

// LookupCondition resolves a condition-code mnemonic.
func LookupCondition(name string) (byte, bool) {
	c, ok := conditions[name]
	return c, ok
}

// ConditionName returns the mnemonic for a condition code, or "" if the
// code is unassigned.
func ConditionName(c byte) string {
	return conditionName[c]
}
