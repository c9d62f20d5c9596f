package vm

// Word is the machine word. All arithmetic on it wraps modulo 2^16.
type Word uint16

// Register names one of the ten register slots.
type Register uint8

// general purpose registers
const (
	R0 Register = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	PC   // program counter
	COND // condition flags
)

const (
	registerCount = 10
	pcSlot        = 8
	condSlot      = 9
)

// Flag is the value of the COND register.
type Flag Word

// flags
const (
	FLAG_POS Flag = 0b001
	FLAG_ZRO Flag = 0b010
	FLAG_NEG Flag = 0b100
)

var registerNames = [registerCount]string{"R0", "R1", "R2", "R3", "R4", "R5", "R6", "R7", "PC", "COND"}

// gpr maps a 3-bit register field onto R0..R7.
func gpr(field Word) Register {
	return Register(field & 0b111)
}

// slot maps a register to its index in the register array. Out of range
// names report false rather than indexing past the array.
func (r Register) slot() (int, bool) {
	switch r {
	case R0, R1, R2, R3, R4, R5, R6, R7:
		return int(r), true
	case PC:
		return pcSlot, true
	case COND:
		return condSlot, true
	}
	return 0, false
}

func (r Register) String() string {
	if n, ok := r.slot(); ok {
		return registerNames[n]
	}
	return f("R?%d", uint8(r))
}

// RegisterFile holds R0..R7, the program counter and the condition register.
type RegisterFile struct {
	slots [registerCount]Word
}

func newRegisterFile() RegisterFile {
	var rf RegisterFile
	rf.slots[pcSlot] = UserSpaceStart
	rf.slots[condSlot] = Word(FLAG_ZRO)
	return rf
}

// Get returns the value of r. Unknown registers read as zero.
func (rf *RegisterFile) Get(r Register) Word {
	n, ok := r.slot()
	if !ok {
		return 0
	}
	return rf.slots[n]
}

// Set writes value to r. Writes to R0..R7 recompute COND. A write to COND
// itself is dropped unless it names exactly one flag.
func (rf *RegisterFile) Set(r Register, value Word) {
	n, ok := r.slot()
	if !ok {
		return
	}
	if r == COND {
		switch Flag(value) {
		case FLAG_NEG, FLAG_ZRO, FLAG_POS:
		default:
			return
		}
	}
	rf.slots[n] = value
	if r <= R7 {
		rf.updateFlags(value)
	}
}

// link stores a return address in R7 without touching COND, as JSR, JSRR
// and TRAP do.
func (rf *RegisterFile) link(value Word) {
	rf.slots[R7] = value
}

// Flag returns the single condition flag currently set.
func (rf *RegisterFile) Flag() Flag {
	return Flag(rf.slots[condSlot])
}

func (rf *RegisterFile) updateFlags(value Word) {
	switch {
	case value == 0:
		rf.slots[condSlot] = Word(FLAG_ZRO)
	case value>>15 != 0:
		rf.slots[condSlot] = Word(FLAG_NEG)
	default:
		rf.slots[condSlot] = Word(FLAG_POS)
	}
}

func (flag Flag) String() string {
	switch flag {
	case FLAG_NEG:
		return "N"
	case FLAG_ZRO:
		return "Z"
	case FLAG_POS:
		return "P"
	}
	return f("?%03b", Word(flag))
}
