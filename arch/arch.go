// Package arch describes the Sarch32 architecture as configuration data:
// the register file, the condition codes, and the instruction encoding
// table consumed by the assembler and disassembler. The table is versioned;
// none of the numeric assignments here are computed.
package arch

// An OperandKind describes one encoded operand field of an instruction.
type OperandKind byte

// All operand field kinds.
const (
	Reg32  OperandKind = iota // dword register id
	Reg16                     // word sub-register view id
	Reg8                      // byte sub-register view id
	Imm8                      // 1-byte immediate
	Imm16                     // 2-byte little-endian immediate
	Imm32                     // 4-byte little-endian immediate
	AbsPtr                    // 4-byte little-endian absolute address
	RelPtr                    // 4-byte little-endian offset from the next instruction
	RegPtr                    // register holding an address
	Cond                      // 1-byte condition code
)

var kindName = []string{
	"reg32",
	"reg16",
	"reg8",
	"imm8",
	"imm16",
	"imm32",
	"absptr",
	"relptr",
	"regptr",
	"cond",
}

func (k OperandKind) String() string {
	return kindName[k]
}

// Size returns the number of bytes the operand field occupies in the
// encoded instruction.
func (k OperandKind) Size() int {
	switch k {
	case Imm32, AbsPtr, RelPtr:
		return 4
	case Imm16:
		return 2
	default:
		return 1
	}
}

// An Instruction describes one Sarch32 instruction form: its mnemonic,
// opcode, and the ordered kinds of its operand fields.
type Instruction struct {
	Name   string        // mnemonic
	Opcode uint16        // opcode value
	Args   []OperandKind // operand fields in encoding order
}

// Extended reports whether the opcode occupies two bytes instead of one.
// Opcodes with bit 7 set are encoded as a 2-byte little-endian value.
func (i *Instruction) Extended() bool {
	return i.Opcode&0x80 != 0
}

// Length returns the total encoded size of the instruction in bytes,
// including the opcode. The length is a pure function of the table entry
// and never depends on operand values.
func (i *Instruction) Length() int {
	n := 1
	if i.Extended() {
		n = 2
	}
	for _, arg := range i.Args {
		n += arg.Size()
	}
	return n
}

// TableVersion identifies the revision of the instruction and register
// tables shipped with this package.
const TableVersion = 1

var instructions = []Instruction{
	{"nop", 0x00, nil},
	{"halt", 0x01, nil},
	{"radd", 0x02, []OperandKind{Reg32, Reg32}},
	{"iadd", 0x03, []OperandKind{Imm32, Reg32}},
	{"loadmd", 0x04, []OperandKind{AbsPtr, Reg32}},
	{"loadid", 0x05, []OperandKind{Imm32, Reg32}},
	{"movd", 0x06, []OperandKind{Reg32, Reg32}},
	{"push", 0x07, []OperandKind{Reg32}},
	{"pop", 0x08, []OperandKind{Reg32}},
	{"call", 0x09, []OperandKind{AbsPtr}},
	{"ret", 0x0a, nil},
	{"jpc", 0x0b, []OperandKind{Cond, RelPtr}},
	{"icmpb", 0x0c, []OperandKind{Imm8, Reg8}},
	{"icmpd", 0x0d, []OperandKind{Imm32, Reg32}},
	{"loadpb", 0x0e, []OperandKind{RegPtr, Reg8}},
	{"storpb", 0x0f, []OperandKind{Reg8, RegPtr}},
	{"isub", 0x10, []OperandKind{Imm32, Reg32}},
	{"rsub", 0x11, []OperandKind{Reg32, Reg32}},
}

// An InstructionSet holds one versioned revision of the instruction table,
// indexed for assembly and disassembly.
type InstructionSet struct {
	Version  int
	byName   map[string]*Instruction
	byOpcode map[uint16]*Instruction
}

var defaultSet *InstructionSet

func init() {
	defaultSet = &InstructionSet{
		Version:  TableVersion,
		byName:   make(map[string]*Instruction, len(instructions)),
		byOpcode: make(map[uint16]*Instruction, len(instructions)),
	}
	for i := range instructions {
		inst := &instructions[i]
		defaultSet.byName[inst.Name] = inst
		defaultSet.byOpcode[inst.Opcode] = inst
	}
}

// DefaultInstructionSet returns the instruction set shipped with this
// package.
func DefaultInstructionSet() *InstructionSet {
	return defaultSet
}

// Lookup returns the instruction with the requested mnemonic, or nil if
// the mnemonic is not part of the set.
func (s *InstructionSet) Lookup(mnemonic string) *Instruction {
	return s.byName[mnemonic]
}

// LookupOpcode returns the instruction with the requested opcode, or nil
// if the opcode is unassigned.
func (s *InstructionSet) LookupOpcode(opcode uint16) *Instruction {
	return s.byOpcode[opcode]
}
