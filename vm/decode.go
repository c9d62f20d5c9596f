package vm

// opcodes
const (
	OP_BR Word = iota
	OP_ADD
	OP_LD
	OP_ST
	OP_JSR
	OP_AND
	OP_LDR
	OP_STR
	OP_RTI
	OP_NOT
	OP_LDI
	OP_STI
	OP_JMP
	OP_RES
	OP_LEA
	OP_TRAP
)

// Operation is a decoded instruction. The set of implementations is closed.
type Operation interface {
	String() string
	operation()
}

type AddRegMode struct{ DR, SR1, SR2 Register }
type AddImmediateMode struct {
	DR, SR1 Register
	Imm5    Word
}
type AndRegMode struct{ DR, SR1, SR2 Register }
type AndImmediateMode struct {
	DR, SR1 Register
	Imm5    Word
}
type Br struct {
	N, Z, P   bool
	PCOffset9 Word
}
type Jmp struct{ BaseR Register }
type Ret struct{}
type Jsr struct{ PCOffset11 Word }
type Jsrr struct{ BaseR Register }
type Ld struct {
	DR        Register
	PCOffset9 Word
}
type Ldi struct {
	DR        Register
	PCOffset9 Word
}
type Ldr struct {
	DR, BaseR Register
	Offset6   Word
}
type Lea struct {
	DR        Register
	PCOffset9 Word
}
type Not struct{ DR, SR Register }
type St struct {
	SR        Register
	PCOffset9 Word
}
type Sti struct {
	SR        Register
	PCOffset9 Word
}
type Str struct {
	SR, BaseR Register
	Offset6   Word
}
type Trap struct{ TrapVect8 Word }
type Rti struct{}
type Res struct{}

func (AddRegMode) operation() {}
func (AddImmediateMode) operation() {}
func (AndRegMode) operation() {}
func (AndImmediateMode) operation() {}
func (Br) operation() {}
func (Jmp) operation() {}
func (Ret) operation() {}
func (Jsr) operation() {}
func (Jsrr) operation() {}
func (Ld) operation() {}
func (Ldi) operation() {}
func (Ldr) operation() {}
func (Lea) operation() {}
func (Not) operation() {}
func (St) operation() {}
func (Sti) operation() {}
func (Str) operation() {}
func (Trap) operation() {}
func (Rti) operation() {}
func (Res) operation() {}

// Decode turns a raw instruction word into an Operation. Every word decodes.
func Decode(instruction Word) Operation {
	dr := gpr(instruction >> 9)
	sr1 := gpr(instruction >> 6)
	pcoffset9 := sext(instruction&0x1FF, 9)

	switch instruction >> 12 {
	case OP_ADD:
		if (instruction>>5)&0b1 == 1 {
			return AddImmediateMode{DR: dr, SR1: sr1, Imm5: sext(instruction&0x1F, 5)}
		}
		return AddRegMode{DR: dr, SR1: sr1, SR2: gpr(instruction)}
	case OP_AND:
		if (instruction>>5)&0b1 == 1 {
			return AndImmediateMode{DR: dr, SR1: sr1, Imm5: sext(instruction&0x1F, 5)}
		}
		return AndRegMode{DR: dr, SR1: sr1, SR2: gpr(instruction)}
	case OP_BR:
		return Br{
			N:         (instruction>>11)&0b1 == 1,
			Z:         (instruction>>10)&0b1 == 1,
			P:         (instruction>>9)&0b1 == 1,
			PCOffset9: pcoffset9,
		}
	case OP_JMP:
		if sr1 == R7 {
			return Ret{}
		}
		return Jmp{BaseR: sr1}
	case OP_JSR:
		if (instruction>>11)&0b1 == 1 {
			return Jsr{PCOffset11: sext(instruction&0x7FF, 11)}
		}
		return Jsrr{BaseR: sr1}
	case OP_LD:
		return Ld{DR: dr, PCOffset9: pcoffset9}
	case OP_LDI:
		return Ldi{DR: dr, PCOffset9: pcoffset9}
	case OP_LDR:
		return Ldr{DR: dr, BaseR: sr1, Offset6: sext(instruction&0x3F, 6)}
	case OP_LEA:
		return Lea{DR: dr, PCOffset9: pcoffset9}
	case OP_NOT:
		return Not{DR: dr, SR: sr1}
	case OP_ST:
		return St{SR: dr, PCOffset9: pcoffset9}
	case OP_STI:
		return Sti{SR: dr, PCOffset9: pcoffset9}
	case OP_STR:
		return Str{SR: dr, BaseR: sr1, Offset6: sext(instruction&0x3F, 6)}
	case OP_TRAP:
		return Trap{TrapVect8: instruction & 0xFF}
	case OP_RTI:
		return Rti{}
	default:
		return Res{}
	}
}

// sext sign extends the low bitCount bits of x to a full word.
func sext(x Word, bitCount uint) Word {
	if (x>>(bitCount-1))&0b1 != 0 {
		x |= 0xFFFF << bitCount
	}
	return x
}

// offset renders a sign extended field as a signed decimal.
func offset(x Word) int16 {
	return int16(x)
}

func (op AddRegMode) String() string {
	return f("ADD %v, %v, %v", op.DR, op.SR1, op.SR2)
}

func (op AddImmediateMode) String() string {
	return f("ADD %v, %v, #%d", op.DR, op.SR1, offset(op.Imm5))
}

func (op AndRegMode) String() string {
	return f("AND %v, %v, %v", op.DR, op.SR1, op.SR2)
}

func (op AndImmediateMode) String() string {
	return f("AND %v, %v, #%d", op.DR, op.SR1, offset(op.Imm5))
}

func (op Br) String() string {
	cond := ""
	if op.N {
		cond += "n"
	}
	if op.Z {
		cond += "z"
	}
	if op.P {
		cond += "p"
	}
	return f("BR%v #%d", cond, offset(op.PCOffset9))
}

func (op Jmp) String() string { return f("JMP %v", op.BaseR) }
func (Ret) String() string { return "RET" }
func (op Jsr) String() string { return f("JSR #%d", offset(op.PCOffset11)) }
func (op Jsrr) String() string { return f("JSRR %v", op.BaseR) }

func (op Ld) String() string { return f("LD %v, #%d", op.DR, offset(op.PCOffset9)) }
func (op Ldi) String() string { return f("LDI %v, #%d", op.DR, offset(op.PCOffset9)) }
func (op Ldr) String() string { return f("LDR %v, %v, #%d", op.DR, op.BaseR, offset(op.Offset6)) }
func (op Lea) String() string { return f("LEA %v, #%d", op.DR, offset(op.PCOffset9)) }
func (op Not) String() string { return f("NOT %v, %v", op.DR, op.SR) }
func (op St) String() string { return f("ST %v, #%d", op.SR, offset(op.PCOffset9)) }
func (op Sti) String() string { return f("STI %v, #%d", op.SR, offset(op.PCOffset9)) }
func (op Str) String() string { return f("STR %v, %v, #%d", op.SR, op.BaseR, offset(op.Offset6)) }

func (op Trap) String() string {
	if name, ok := trapNames[op.TrapVect8]; ok {
		return name
	}
	return f("TRAP x%02X", uint16(op.TrapVect8))
}

func (Rti) String() string { return "RTI" }
func (Res) String() string { return "RES" }
