package vm

import (
	"context"
	"errors"
	"fmt"
)

const (
	TRAP_GETC  Word = 0x20 /* get character from keyboard, not echoed onto the terminal */
	TRAP_OUT   Word = 0x21 /* output a character */
	TRAP_PUTS  Word = 0x22 /* output a word string */
	TRAP_IN    Word = 0x23 /* get character from keyboard, echoed onto the terminal */
	TRAP_PUTSP Word = 0x24 /* output a byte string */
	TRAP_HALT  Word = 0x25 /* halt the program */
)

var trapNames = map[Word]string{
	TRAP_GETC:  "GETC",
	TRAP_OUT:   "OUT",
	TRAP_PUTS:  "PUTS",
	TRAP_IN:    "IN",
	TRAP_PUTSP: "PUTSP",
	TRAP_HALT:  "HALT",
}

// trap runs the service routine for vector directly against the host
// console. The LC-3 OS routines in ROM are not executed.
func (cpu *cpu) trap(ctx context.Context, vector Word) error {
	switch vector {
	case TRAP_GETC:
		c, err := cpu.readChar(ctx)
		if err != nil {
			return err
		}
		cpu.registers.Set(R0, Word(c))

	case TRAP_OUT:
		return cpu.writeChar(byte(cpu.registers.Get(R0)))

	case TRAP_PUTS:
		addr := cpu.registers.Get(R0)
		for n := 0; n < MemorySize; n, addr = n+1, addr+1 {
			c := cpu.memory.Read(addr)
			if c == 0 {
				break
			}
			if err := cpu.writeChar(byte(c)); err != nil {
				return err
			}
		}

	case TRAP_IN:
		// A retried IN after cancellation does not prompt again.
		if !cpu.prompted {
			if err := cpu.writeString(f("Enter a character: ")); err != nil {
				return err
			}
			cpu.prompted = true
		}
		c, err := cpu.readChar(ctx)
		if err != nil {
			if ctx.Err() == nil {
				cpu.prompted = false
			}
			return err
		}
		cpu.prompted = false
		if err := cpu.writeChar(c); err != nil {
			return err
		}
		cpu.registers.Set(R0, Word(c))

	case TRAP_PUTSP:
		addr := cpu.registers.Get(R0)
		for n := 0; n < MemorySize; n, addr = n+1, addr+1 {
			w := cpu.memory.Read(addr)
			if w == 0 {
				break
			}
			if err := cpu.writeChar(byte(w)); err != nil {
				return err
			}
			if w>>8 != 0 {
				if err := cpu.writeChar(byte(w >> 8)); err != nil {
					return err
				}
			}
		}

	case TRAP_HALT:
		if cpu.console != nil {
			if err := cpu.writeString(f("HALT") + "\n"); err != nil {
				return err
			}
		}
		cpu.stop()

	default:
		return ErrTrapVector(vector)
	}

	return nil
}

func (cpu *cpu) readChar(ctx context.Context) (byte, error) {
	if c, ok := cpu.memory.takeKey(); ok {
		return c, nil
	}
	if cpu.console == nil {
		return 0, fmt.Errorf("%w: no console", ErrHostIO)
	}
	c, err := cpu.console.ReadChar(ctx)
	if err != nil {
		return 0, hostIOError(ctx, err)
	}
	return c, nil
}

func (cpu *cpu) writeChar(c byte) error {
	if cpu.console == nil {
		return fmt.Errorf("%w: no console", ErrHostIO)
	}
	if err := cpu.console.WriteChar(c); err != nil {
		return hostIOError(context.Background(), err)
	}
	return nil
}

// hostIOError classifies a console failure as ErrHostIO unless it is the
// caller's own cancellation.
func hostIOError(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, ErrHostIO) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrHostIO, err)
}

func (cpu *cpu) writeString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := cpu.writeChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}
