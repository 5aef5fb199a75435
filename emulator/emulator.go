// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/yahvm/yahvm/cpu"
	"github.com/yahvm/yahvm/internal"
	"github.com/yahvm/yahvm/io"
)

// Emulator state. CPU + program listing + IO channels.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	Tape io.Tape // Tape IO channel, receives printed values.
	Rom  io.Rom  // ROM the program is booted from.

	TickLimit int // Tick budget applied on Reset; 0 is unlimited, a zero budget cannot be set.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	emu.Cpu.SetChannel(&emu.Tape)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"TICK_LIMIT": fmt.Sprintf("%v", emu.TickLimit),
	}

	return internal.IterSeq2Concat(maps.All(defines),
		emu.Cpu.Defines(),
	)
}

// LoadRom replaces the program with one decoded from a binary artifact.
// Source line numbers are not known for such a program.
func (emu *Emulator) LoadRom(data []byte) (err error) {
	err = emu.Rom.Load(data)
	if err != nil {
		return
	}

	emu.Program = cpu.NewProgram(emu.Rom.Data)

	return
}

// Reset the emulator state, and boot the program from the ROM.
func (emu *Emulator) Reset() {
	emu.Rom.Data = emu.Program.Binary()

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.TickLimit = emu.TickLimit
	emu.Cpu.LoadCode(slices.Collect(emu.Rom.Receive())...)
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns current program counter.
func (emu *Emulator) Pc() int {
	return emu.Cpu.Pc
}

// Code returns the current instruction code.
func (emu *Emulator) Code() (code cpu.Code) {
	for pc, op := range emu.Program.Codes() {
		if pc == emu.Cpu.Pc {
			return op
		}
	}

	return
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
// done is set once the program runs off its end, or its tick budget
// is spent.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrPcEmpty) || errors.Is(err, cpu.ErrTickLimit) {
		err = nil
		done = true
		return
	}
	if err != nil {
		return
	}

	if errors.Is(emu.Cpu.Fault(), cpu.ErrTickLimit) {
		if emu.Verbose {
			log.Printf("emulator: stopped after %d ticks", emu.Cpu.Ticks)
		}
		done = true
	}

	return
}

// Run ticks the emulator until the program is done.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
