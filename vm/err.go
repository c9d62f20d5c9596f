package vm

import (
	"errors"

	"github.com/aryanA101a/lc3-vm-go/translate"
)

var f = translate.From

var (
	// Load errors
	ErrMalformedImage = errors.New(f("malformed image"))

	// Execution errors
	ErrIllegalInstruction = errors.New(f("illegal instruction"))
	ErrHostIO             = errors.New(f("host io failure"))
)

// Fault reports a fatal error raised while executing the instruction at PC.
type Fault struct {
	PC          Word // Address of the faulting instruction.
	Instruction Word // Raw instruction word.
	Err         error
}

func (err *Fault) Error() string {
	return f("fault at 0x%04x (0x%04x %v): %v", uint16(err.PC), uint16(err.Instruction), Decode(err.Instruction), err.Err)
}

func (err *Fault) Unwrap() error {
	return err.Err
}

// ErrTrapVector is raised by a TRAP whose vector has no service routine.
type ErrTrapVector Word

func (err ErrTrapVector) Error() string {
	return f("unknown trap vector 0x%02x", uint16(err))
}

func (err ErrTrapVector) Is(target error) bool {
	return target == ErrIllegalInstruction
}
