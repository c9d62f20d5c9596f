package vm

import (
	"context"
	"log"
)

// VM is an LC-3 machine: memory, registers and the engine that runs them.
type VM struct {
	memory *Memory
	cpu    cpu
}

// Option configures a VM.
type Option func(vm *VM)

// WithConsole attaches the host character device.
func WithConsole(console Console) Option {
	return func(vm *VM) {
		vm.memory.console = console
		vm.cpu.console = console
	}
}

// WithLogger sends the per-instruction trace to logger.
func WithLogger(logger *log.Logger) Option {
	return func(vm *VM) {
		vm.cpu.logger = logger
	}
}

func NewVM(opts ...Option) *VM {
	mem := newMemory(nil)
	vm := &VM{
		memory: mem,
		cpu:    newCpu(mem, nil),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Load places an image file into memory. Nothing is written unless the
// whole image is well formed.
func (vm *VM) Load(file []byte) error {
	img, err := ParseImage(file)
	if err != nil {
		return err
	}

	vm.cpu.logger.Printf("load: origin=0x%04x size=%0.2f KB", uint16(img.Origin), float32(len(file))/1024)
	vm.memory.load(img)
	return nil
}

// Run executes until HALT, returning nil. A fatal error is returned as a
// *Fault; cancelling ctx stops the run between instructions or while
// waiting on console input. Running a halted VM executes nothing.
func (vm *VM) Run(ctx context.Context) error {
	return vm.cpu.start(ctx)
}

// Step executes a single instruction. Once halted it executes nothing and
// returns what Run would.
func (vm *VM) Step(ctx context.Context) error {
	if vm.cpu.state == StateHalted {
		return vm.cpu.halted()
	}
	return vm.cpu.step(ctx)
}

func (vm *VM) State() State {
	return vm.cpu.state
}

func (vm *VM) Register(r Register) Word {
	return vm.cpu.registers.Get(r)
}

// SetRegister writes r with the same flag side effects as an instruction.
func (vm *VM) SetRegister(r Register, value Word) {
	vm.cpu.registers.Set(r, value)
}

// Peek returns the stored word at addr without touching device registers.
func (vm *VM) Peek(addr Word) Word {
	return vm.memory.ram[addr]
}

func (vm *VM) Poke(addr, value Word) {
	vm.memory.Write(addr, value)
}
