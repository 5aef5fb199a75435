package emulator

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yahvm/yahvm/cpu"
	"github.com/yahvm/yahvm/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(0, emu.Program.Len())

	emu.TickLimit = 42
	defines := map[string]string{}
	for key, value := range emu.Defines() {
		defines[key] = value
	}
	assert.Equal("42", defines["TICK_LIMIT"])
	assert.Equal("16", defines["REGISTER_COUNT"])

	emu.Reset()
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func assemble(emu *Emulator, program []string, t *testing.T) {
	asm := &cpu.Assembler{}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(t, err)
	if err != nil {
		t.Fatal(err)
	}

	emu.Program = prog
}

func doRunSingle(emu *Emulator, program []string, t *testing.T) (output string) {
	assert := assert.New(t)

	assemble(emu, program, t)
	emu.Reset()

	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	for _, op := range emu.Program.Opcodes {
		here := program[op.LineNo-1]
		assert.Equal(op.LineNo, emu.LineNo(), here)
		assert.Equal(op.Pc, emu.Pc(), here)
		assert.Equal(op.Code, emu.Code(), here)

		done, err := emu.Tick()
		if err != nil {
			t.Log(emu.Cpu.String())
			t.Fatalf("%v", err)
		}
		assert.False(done, here)
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)

	output = tape_output.String()
	return
}

func doRunBranch(emu *Emulator, program []string, t *testing.T) (output string) {
	assert := assert.New(t)

	assemble(emu, program, t)
	emu.Reset()

	tape_output := &bytes.Buffer{}
	emu.Tape.Output = tape_output

	err := emu.Run()
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	output = tape_output.String()
	return
}

func TestEmulatorArithmetic(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"; arithmetic",
		"SET $0 1",
		"ADD $0 2",
		"PRT $0",
		"SET $1 5",
		"DIV $1 3",
		"PRT $1",
		"SET $2 -4",
		"MUL $2 $0",
		"SUB $2 $1",
		"PRT $2",
		"PRT 12",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("output: 3\noutput: 1\noutput: -13\noutput: 12\n", output)
	assert.Equal(int8(3), emu.Cpu.Register[0])
	assert.Equal(int8(1), emu.Cpu.Register[1])
	assert.Equal(int8(-13), emu.Cpu.Register[2])
	assert.Equal(11, emu.Ticks())
}

func TestEmulatorEqu(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TickLimit = 50
	program := []string{
		".equ ACC $f",
		"SET ACC $(REGISTER_COUNT - 1)",
		"ADD ACC $(TICK_LIMIT // 10)",
		"PRT ACC",
		"PRT $(LINENO)",
	}

	output := doRunSingle(emu, program, t)

	assert.Equal("output: 20\noutput: 5\n", output)
}

func TestEmulatorBranch(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	program := []string{
		"SET $0 3",
		"#loop",
		"PRT $0",
		"SUB $0 1",
		"CBP $0 0",
		"JMP #loop",
		"EQL $0 1",
		"JNP #done",
		"PRT 99",
		"#done",
		"PRT -1",
	}

	output := doRunBranch(emu, program, t)

	assert.Equal("output: 3\noutput: 2\noutput: 1\noutput: -1\n", output)
	assert.Equal([]string{"output: 3", "output: 2", "output: 1", "output: -1"}, emu.Tape.Lines)
	assert.False(emu.Cpu.Cond)

	// A reset replays the same program from the start.
	emu.Reset()
	assert.Nil(emu.Tape.Lines)
	assert.NoError(emu.Run())
	assert.Equal("output: -1", emu.Tape.Last())
	assert.Equal(4, len(emu.Tape.Lines))
}

func TestEmulatorRuntimeError(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	assemble(emu, []string{
		"SET $0 5",
		"",
		"DIV $0 $1",
		"PRT $0",
	}, t)
	emu.Reset()

	err := emu.Run()
	assert.ErrorIs(err, cpu.ErrDivideByZero)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(1, runtime.Pc)
		assert.Equal(3, runtime.LineNo)
		assert.Contains(runtime.Error(), "line 3 pc 1")
	}

	// Halted is terminal.
	done, err := emu.Tick()
	assert.False(done)
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.Nil(emu.Tape.Lines)
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.TickLimit = 10
	assemble(emu, []string{
		"EQL $0 0",
		"#spin",
		"ADD $0 1",
		"JMP #spin",
	}, t)
	emu.Reset()

	assert.NoError(emu.Run())
	assert.Equal(11, emu.Ticks())
	assert.ErrorIs(emu.Cpu.Fault(), cpu.ErrTickLimit)
	assert.Equal(int8(5), emu.Cpu.Register[0])

	done, err := emu.Tick()
	assert.True(done)
	assert.NoError(err)
}

func TestEmulatorLoadRom(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"SET $0 2",
		"#loop",
		"PRT $0",
		"SUB $0 1",
		"CLP $0 0",
		"JNP #loop",
		"DIV $0 0",
	}

	emu := NewEmulator()
	assemble(emu, program, t)
	data := emu.Program.Bytes()

	emu = NewEmulator()
	err := emu.LoadRom(data)
	assert.NoError(err)
	assert.Equal(6, emu.Program.Len())
	assert.Equal(data, emu.Rom.Bytes())

	emu.Reset()
	assert.Equal(0, emu.LineNo())

	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrDivideByZero)
	assert.Equal([]string{"output: 2", "output: 1", "output: 0"}, emu.Tape.Lines)

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(5, runtime.Pc)
		assert.Equal(0, runtime.LineNo)
	}

	// A truncated artifact keeps the current program.
	err = emu.LoadRom(data[:len(data)-1])
	assert.ErrorIs(err, io.ErrRomLength)
	assert.Equal(6, emu.Program.Len())
}

func benchmarkProgram(b *testing.B, program []string) {
	asm := &cpu.Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		b.Fatal(err)
	}

	emu := NewEmulator()
	emu.Program = prog

	for b.Loop() {
		emu.Reset()
		err = emu.Run()
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEmulator(b *testing.B) {
	b.Run("straight", func(b *testing.B) {
		var program []string
		for range 32 {
			program = append(program,
				"SET $0 1",
				"ADD $0 2",
				"MUL $0 $0",
				"EQL $0 9",
			)
		}
		benchmarkProgram(b, program)
	})

	b.Run("jump", func(b *testing.B) {
		benchmarkProgram(b, []string{
			"SET $0 100",
			"#loop",
			"SUB $0 1",
			"CBP $0 0",
			"JMP #loop",
		})
	})
}
