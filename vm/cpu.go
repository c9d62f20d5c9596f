package vm

import (
	"context"
	"errors"
	goIO "io"
	"log"
)

// State of the execution engine.
type State int

const (
	StateRunning State = iota
	StateHalted
)

func (s State) String() string {
	if s == StateHalted {
		return "halted"
	}
	return "running"
}

type cpu struct {
	state     State
	fault     *Fault // set when a fatal error halted the engine
	prompted  bool   // IN has printed its prompt and is waiting for input
	memory    *Memory
	registers RegisterFile
	console   Console
	logger    *log.Logger
}

func newCpu(memory *Memory, console Console) cpu {
	return cpu{
		state:     StateRunning,
		memory:    memory,
		registers: newRegisterFile(),
		console:   console,
		logger:    log.New(goIO.Discard, "", 0),
	}
}

// start runs instructions until HALT, a fault, or ctx is done. A halted
// engine stays halted and reports how it got there.
func (cpu *cpu) start(ctx context.Context) error {
	for cpu.state == StateRunning {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cpu.step(ctx); err != nil {
			return err
		}
	}
	return cpu.halted()
}

// halted returns the fault that stopped the engine, or nil after HALT.
func (cpu *cpu) halted() error {
	if cpu.fault != nil {
		return cpu.fault
	}
	return nil
}

func (cpu *cpu) stop() {
	cpu.state = StateHalted
}

// step fetches, decodes and executes one instruction.
func (cpu *cpu) step(ctx context.Context) error {
	pc := cpu.registers.Get(PC)
	instruction := cpu.memory.Read(pc)
	cpu.registers.Set(PC, pc+1)

	op := Decode(instruction)
	cpu.logger.Printf("0x%04x %v", uint16(pc), op)

	err := cpu.execute(ctx, op)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// Rewind so a later run retries the interrupted instruction.
		cpu.registers.Set(PC, pc)
		return err
	}

	cpu.stop()
	cpu.fault = &Fault{PC: pc, Instruction: instruction, Err: err}
	cpu.logger.Printf("0x%04x fault: %v", uint16(pc), err)
	return cpu.fault
}

func (cpu *cpu) execute(ctx context.Context, op Operation) error {
	reg := &cpu.registers
	pc := reg.Get(PC)

	switch op := op.(type) {
	case AddRegMode:
		reg.Set(op.DR, reg.Get(op.SR1)+reg.Get(op.SR2))

	case AddImmediateMode:
		reg.Set(op.DR, reg.Get(op.SR1)+op.Imm5)

	case AndRegMode:
		reg.Set(op.DR, reg.Get(op.SR1)&reg.Get(op.SR2))

	case AndImmediateMode:
		reg.Set(op.DR, reg.Get(op.SR1)&op.Imm5)

	case Not:
		reg.Set(op.DR, ^reg.Get(op.SR))

	case Br:
		cond := reg.Flag()
		if (op.N && cond == FLAG_NEG) || (op.Z && cond == FLAG_ZRO) || (op.P && cond == FLAG_POS) {
			reg.Set(PC, pc+op.PCOffset9)
		}

	case Jmp:
		reg.Set(PC, reg.Get(op.BaseR))

	case Ret:
		reg.Set(PC, reg.Get(R7))

	case Jsr:
		reg.link(pc)
		reg.Set(PC, pc+op.PCOffset11)

	case Jsrr:
		// Read the base first: JSRR R7 jumps to the old R7.
		target := reg.Get(op.BaseR)
		reg.link(pc)
		reg.Set(PC, target)

	case Ld:
		reg.Set(op.DR, cpu.memory.Read(pc+op.PCOffset9))

	case Ldi:
		reg.Set(op.DR, cpu.memory.Read(cpu.memory.Read(pc+op.PCOffset9)))

	case Ldr:
		reg.Set(op.DR, cpu.memory.Read(reg.Get(op.BaseR)+op.Offset6))

	case Lea:
		reg.Set(op.DR, pc+op.PCOffset9)

	case St:
		cpu.memory.Write(pc+op.PCOffset9, reg.Get(op.SR))

	case Sti:
		cpu.memory.Write(cpu.memory.Read(pc+op.PCOffset9), reg.Get(op.SR))

	case Str:
		cpu.memory.Write(reg.Get(op.BaseR)+op.Offset6, reg.Get(op.SR))

	case Trap:
		reg.link(pc)
		return cpu.trap(ctx, op.TrapVect8)

	case Rti, Res:
		return ErrIllegalInstruction

	default:
		return ErrIllegalInstruction
	}

	return nil
}
