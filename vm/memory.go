package vm

const MemorySize = 1 << 16
const (
	TrapVectorTableStart       = 0x0000
	InterruptVectorTableStart  = 0x0100
	SystemSpaceStart           = 0x0200
	UserSpaceStart             = 0x3000
	MemoryMappedRegistersStart = 0xFE00
)

// memory mapped register addresses
const (
	KBSR Word = MemoryMappedRegistersStart          /* keyboard status register */
	KBDR Word = MemoryMappedRegistersStart + 0x0002 /* keyboard data register */
)

const kbsrReady Word = 0x8000

// Memory is the flat 64K word store. Reads of KBSR and KBDR are served by
// the console instead of the backing array.
type Memory struct {
	ram     [MemorySize]Word
	console Console

	keyReady bool
	keyData  Word
}

func newMemory(console Console) *Memory {
	return &Memory{console: console}
}

// Read returns the word at addr. Reading KBSR polls the console without
// blocking; reading KBDR consumes the character latched by that poll.
func (mem *Memory) Read(addr Word) Word {
	switch addr {
	case KBSR:
		if !mem.keyReady && mem.console != nil {
			if c, ok := mem.console.TryReadChar(); ok {
				mem.keyReady = true
				mem.keyData = Word(c)
			}
		}
		if mem.keyReady {
			return kbsrReady
		}
		return 0
	case KBDR:
		mem.keyReady = false
		return mem.keyData
	}
	return mem.ram[addr]
}

// takeKey hands over a character latched by a KBSR poll, as a KBDR read
// would.
func (mem *Memory) takeKey() (byte, bool) {
	if !mem.keyReady {
		return 0, false
	}
	mem.keyReady = false
	return byte(mem.keyData), true
}

// Write stores value at addr.
func (mem *Memory) Write(addr, value Word) {
	mem.ram[addr] = value
}
