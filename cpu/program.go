package cpu

import (
	"encoding/binary"
	"iter"
	"strings"
)

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo int      // Source line, or 0 when loaded from an artifact.
	Pc     int      // Index of the instruction in the program.
	Words  []string // Resolved tokens the instruction was encoded from.
	Code   Code
}

// Program is an ordered sequence of instructions.
type Program struct {
	Opcodes []Opcode
}

// NewProgram creates a program from a sequence of instruction words.
func NewProgram(words []uint32) (prog *Program) {
	prog = &Program{
		Opcodes: make([]Opcode, 0, len(words)),
	}

	for pc, word := range words {
		code := Code(word)
		prog.Opcodes = append(prog.Opcodes, Opcode{
			Pc:    pc,
			Words: strings.Split(code.String(), " "),
			Code:  code,
		})
	}

	return
}

// Len returns the number of instructions.
func (prog *Program) Len() int {
	return len(prog.Opcodes)
}

// LineNo returns the source line of the instruction at pc, or 0 if unknown.
func (prog *Program) LineNo(pc int) int {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return 0
	}
	return prog.Opcodes[pc].LineNo
}

// Codes iterates over the instructions in program order.
func (prog *Program) Codes() iter.Seq2[int, Code] {
	return func(yield func(pc int, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(op.Pc, op.Code) {
				return
			}
		}
	}
}

// Binary returns the instruction words.
func (prog *Program) Binary() (bins []uint32) {
	for _, code := range prog.Codes() {
		bins = append(bins, uint32(code))
	}

	return
}

// Bytes returns the binary artifact: each word big-endian, in program order.
func (prog *Program) Bytes() (data []byte) {
	data = make([]byte, 0, len(prog.Opcodes)*CODE_BYTES)
	for _, code := range prog.Codes() {
		data = binary.BigEndian.AppendUint32(data, uint32(code))
	}

	return
}

// Disassemble returns the program as assembly text, one full-form
// instruction per line.
func (prog *Program) Disassemble() string {
	var sb strings.Builder
	for _, code := range prog.Codes() {
		sb.WriteString(code.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
