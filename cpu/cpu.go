package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/yahvm/yahvm/io"
)

// Channel is an output channel interface.
type Channel io.Channel

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"OPERAND_MAX":    fmt.Sprintf("%d", OPERAND_MAX),
	"CODE_BYTES":     fmt.Sprintf("%d", CODE_BYTES),
}

// Cpu is the simulation context for the register machine.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       int                  // Current program counter.
	Register [REGISTER_COUNT]int8 // Register bank.
	Cond     bool                 // Result of the most recent comparison.

	Ticks     int // CPU ticks counter.
	TickLimit int // Halt once Ticks exceeds this; 0 or less is unlimited, a zero budget cannot be set.

	Output string // Most recently printed line.
	Code   []Code // Loaded program.

	halt    error // Reason execution stopped, if it has.
	channel Channel
}

// NewCpu creates a new CPU with no program loaded.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 5s: %d\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "cond", cpu.Cond)
	text += fmt.Sprintf("% 5s: %d\n", "ticks", cpu.Ticks)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %d\n", CodeReg(n).String(), val)
	}

	return
}

// Reset the CPU state.
// - Clears the registers and the condition flag.
// - Zeros the program counter and tick counter.
// - Rewinds the output channel.
// The loaded program and tick limit are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Pc = 0
	cpu.Cond = false
	cpu.Ticks = 0
	cpu.Output = ""
	cpu.halt = nil

	if cpu.channel != nil {
		cpu.channel.Rewind()
	}
}

// Load installs a program and resets the CPU.
func (cpu *Cpu) Load(prog *Program) {
	cpu.LoadCode(prog.Binary()...)
}

// LoadCode installs a sequence of instruction words and resets the CPU.
func (cpu *Cpu) LoadCode(words ...uint32) {
	cpu.Code = make([]Code, len(words))
	for n, word := range words {
		cpu.Code[n] = Code(word)
	}
	cpu.Reset()
}

// SetChannel sets the channel printed values are sent to.
func (cpu *Cpu) SetChannel(channel Channel) {
	cpu.channel = channel
}

// Halted returns true once the CPU can no longer execute.
func (cpu *Cpu) Halted() bool {
	return cpu.halt != nil
}

// Fault returns the reason the CPU halted, or nil if it is still running.
func (cpu *Cpu) Fault() error {
	return cpu.halt
}

// FetchCode fetches the instruction at the program counter.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc < 0 || cpu.Pc >= len(cpu.Code) {
		err = ErrPcEmpty
		return
	}

	code = cpu.Code[cpu.Pc]
	if !code.Valid() {
		err = errors.Join(ErrOpcode(code), ErrOpcodeDecode)
		return
	}

	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	if cpu.halt != nil {
		return cpu.halt
	}

	defer func() {
		if err != nil {
			cpu.halt = err
		}
	}()

	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	if err != nil {
		return
	}

	if cpu.TickLimit > 0 && cpu.Ticks > cpu.TickLimit {
		if cpu.Verbose {
			log.Printf("cpu: tick limit %d reached", cpu.TickLimit)
		}
		cpu.halt = ErrTickLimit
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, code)
	}

	next_pc := cpu.Pc + 1

	op, reg, typ, _ := code.Decode()

	switch op {
	case OP_PRT:
		switch typ {
		case TYPE_IMM:
			err = cpu.printValue(code.Signed())
		case TYPE_VAR:
			err = cpu.printValue(cpu.Register[reg])
		default:
			// no-op
		}
	case OP_SET:
		var val int8
		val, err = cpu.getValue(code)
		if err != nil {
			return
		}
		cpu.Register[reg] = val
	case OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		var val int8
		val, err = cpu.getValue(code)
		if err != nil {
			return
		}
		var output int8
		output, err = doAlu(op, cpu.Register[reg], val)
		if err != nil {
			return
		}
		cpu.Register[reg] = output
	case OP_JMP:
		if cpu.Cond {
			next_pc = jumpTarget(code) + 1
		}
	case OP_JNP:
		if !cpu.Cond {
			next_pc = jumpTarget(code) + 1
		}
	case OP_EQL, OP_CBP, OP_CLP:
		// Comparisons always take the signed literal, whatever the type.
		val := code.Signed()
		a := cpu.Register[reg]
		switch op {
		case OP_EQL:
			cpu.Cond = a == val
		case OP_CBP:
			cpu.Cond = a > val
		case OP_CLP:
			cpu.Cond = a < val
		}
	default:
		err = ErrOpcodeDecode
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

// jumpTarget returns the program counter a taken jump leaves behind,
// before the usual increment. Label references are assembled as the
// 1-based index of their target, so a jump lands on operand - 1.
// The clamp is -1, not 0, on purpose: a label on the first instruction
// (operand 1) must land on instruction 0, not 1.
func jumpTarget(code Code) int {
	return max(-1, code.Unsigned()-2)
}

// getValue gets the operand value: the contents of the register named
// by the operand for TYPE_REG, or the signed literal otherwise.
func (cpu *Cpu) getValue(code Code) (value int8, err error) {
	if code.Type() != TYPE_REG {
		value = code.Signed()
		return
	}

	index := code.Unsigned()
	if index >= len(cpu.Register) {
		err = ErrRegisterRange
		return
	}

	value = cpu.Register[index]
	return
}

// printValue records the value as the latest output, and sends it to the channel.
func (cpu *Cpu) printValue(value int8) (err error) {
	cpu.Output = fmt.Sprintf("output: %d", value)

	if cpu.channel != nil {
		err = cpu.channel.Send(value)
	}

	return
}

// doAlu performs the requested arithmetic, and returns the output value.
func doAlu(op CodeOp, input int8, value int8) (output int8, err error) {
	a := int(input)
	b := int(value)

	var result int
	switch op {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a - b
	case OP_MUL:
		result = a * b
	case OP_DIV:
		if b == 0 {
			err = ErrDivideByZero
			return
		}
		result = a / b
	}

	if result < -128 || result > 127 {
		err = ErrOverflow
		return
	}

	output = int8(result)
	return
}
