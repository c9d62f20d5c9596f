package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"

	"github.com/aryanA101a/lc3-vm-go/terminal"
	"github.com/aryanA101a/lc3-vm-go/translate"
	"github.com/aryanA101a/lc3-vm-go/vm"
)

func main() {
	os.Exit(run())
}

func run() int {
	var trace string
	var start string
	var raw bool
	var lang string

	flag.StringVar(&trace, "trace", "", "write an instruction trace to this file")
	flag.StringVar(&start, "pc", "0x3000", "initial program counter")
	flag.BoolVar(&raw, "raw", true, "put the terminal in raw mode")
	flag.StringVar(&lang, "lang", "", "message language (BCP 47 tag), default from host locale")

	flag.Parse()

	if flag.NArg() < 1 {
		log.Printf("usage: %v [flags] image-file ...", os.Args[0])
		flag.PrintDefaults()
		return 2
	}

	if len(lang) != 0 {
		if err := translate.SetLanguage(lang); err != nil {
			log.Fatalf("-lang %v: %v", lang, err)
		}
	}

	pc, err := strconv.ParseUint(start, 0, 16)
	if err != nil {
		log.Fatalf("-pc %v: %v", start, err)
	}

	logger := log.New(io.Discard, "", 0)
	if len(trace) != 0 {
		f, err := os.OpenFile(trace, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer f.Close()
		logger = log.New(f, "", log.Lmicroseconds)
	}

	machine := vm.NewVM(
		vm.WithConsole(vm.NewStreamConsole(os.Stdin, os.Stdout)),
		vm.WithLogger(logger),
	)

	for _, arg := range flag.Args() {
		file, err := os.ReadFile(arg)
		if err != nil {
			log.Fatalf("%v: %v", arg, err)
		}
		if err := machine.Load(file); err != nil {
			log.Fatalf("%v: %v", arg, err)
		}
	}
	machine.SetRegister(vm.PC, vm.Word(pc))

	if raw {
		tty, err := terminal.Open(os.Stdin)
		if err != nil {
			log.Fatalf("terminal: %v", err)
		}
		defer tty.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = machine.Run(ctx)

	var fault *vm.Fault
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		os.Stdout.Write([]byte("\n"))
		return 130
	case errors.As(err, &fault):
		log.Printf("%v", fault)
		log.Printf("registers: R0=0x%04x R1=0x%04x R2=0x%04x R3=0x%04x R4=0x%04x R5=0x%04x R6=0x%04x R7=0x%04x",
			uint16(machine.Register(vm.R0)), uint16(machine.Register(vm.R1)),
			uint16(machine.Register(vm.R2)), uint16(machine.Register(vm.R3)),
			uint16(machine.Register(vm.R4)), uint16(machine.Register(vm.R5)),
			uint16(machine.Register(vm.R6)), uint16(machine.Register(vm.R7)))
		return 1
	default:
		log.Printf("%v", err)
		return 1
	}
}
