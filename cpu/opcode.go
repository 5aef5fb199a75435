package cpu

import (
	"fmt"
)

// CodeOp is an operation selector.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp,CodeReg,CodeType
const (
	OP_PRT = CodeOp(0)  // PRT
	OP_SET = CodeOp(1)  // SET
	OP_ADD = CodeOp(2)  // ADD
	OP_SUB = CodeOp(3)  // SUB
	OP_MUL = CodeOp(4)  // MUL
	OP_DIV = CodeOp(5)  // DIV
	OP_JMP = CodeOp(6)  // JMP
	OP_JNP = CodeOp(7)  // JNP
	OP_EQL = CodeOp(8)  // EQL
	OP_CBP = CodeOp(9)  // CBP
	OP_CLP = CodeOp(10) // CLP

	OP_COUNT = 11
)

// CodeReg is a register index.
type CodeReg int

const (
	REG_0 = CodeReg(0)  // $0
	REG_1 = CodeReg(1)  // $1
	REG_2 = CodeReg(2)  // $2
	REG_3 = CodeReg(3)  // $3
	REG_4 = CodeReg(4)  // $4
	REG_5 = CodeReg(5)  // $5
	REG_6 = CodeReg(6)  // $6
	REG_7 = CodeReg(7)  // $7
	REG_8 = CodeReg(8)  // $8
	REG_9 = CodeReg(9)  // $9
	REG_A = CodeReg(10) // $a
	REG_B = CodeReg(11) // $b
	REG_C = CodeReg(12) // $c
	REG_D = CodeReg(13) // $d
	REG_E = CodeReg(14) // $e
	REG_F = CodeReg(15) // $f

	REGISTER_COUNT = 16
)

// CodeType selects how the operand byte is interpreted.
type CodeType int

const (
	TYPE_IMM  = CodeType(0) // imm
	TYPE_REG  = CodeType(1) // reg
	TYPE_VAR  = CodeType(2) // var
	TYPE_RSVD = CodeType(3) // rsvd
)

const (
	OPERAND_MAX  = 127        // Largest encodable operand magnitude.
	OPERAND_SIGN = 0b10000000 // Sign bit of the operand byte.

	CODE_BITS  = 18
	CODE_BYTES = 4 // Width of an instruction in the binary artifact.
)

// Field masks and shifts of an instruction word.
const (
	MASK_OPCODE   = 0b111100000000000000
	MASK_REGISTER = 0b000011110000000000
	MASK_TYPE     = 0b000000001100000000
	MASK_OPERAND  = 0b000000000011111111

	SHIFT_OPCODE   = 14
	SHIFT_REGISTER = 10
	SHIFT_TYPE     = 8
	SHIFT_OPERAND  = 0
)

// Code is a single instruction word. Only the low 18 bits are significant.
type Code uint32

// MakeCode packs the instruction fields into a word.
func MakeCode(op CodeOp, reg CodeReg, typ CodeType, operand uint8) Code {
	word := (uint32(op) << SHIFT_OPCODE) & MASK_OPCODE
	word |= (uint32(reg) << SHIFT_REGISTER) & MASK_REGISTER
	word |= (uint32(typ) << SHIFT_TYPE) & MASK_TYPE
	word |= (uint32(operand) << SHIFT_OPERAND) & MASK_OPERAND
	return Code(word)
}

// MakeOperand converts a signed literal to its sign-magnitude operand byte.
func MakeOperand(value int) (operand uint8, err error) {
	magnitude := value
	if value < 0 {
		magnitude = -value
	}

	if magnitude > OPERAND_MAX {
		err = ErrOperandRange
		return
	}

	operand = uint8(magnitude)
	if value < 0 {
		operand |= OPERAND_SIGN
	}

	return
}

// OperandValue interprets a sign-magnitude operand byte.
func OperandValue(operand uint8) int8 {
	value := int8(operand & OPERAND_MAX)
	if (operand & OPERAND_SIGN) != 0 {
		value = -value
	}
	return value
}

// Decode unpacks all of the instruction fields.
func (code Code) Decode() (op CodeOp, reg CodeReg, typ CodeType, operand uint8) {
	op = code.Opcode()
	reg = code.Register()
	typ = code.Type()
	operand = code.Operand()
	return
}

// Opcode returns the operation selector.
func (code Code) Opcode() CodeOp {
	return CodeOp((uint32(code) & MASK_OPCODE) >> SHIFT_OPCODE)
}

// Register returns the target register index.
func (code Code) Register() CodeReg {
	return CodeReg((uint32(code) & MASK_REGISTER) >> SHIFT_REGISTER)
}

// Type returns the operand type tag.
func (code Code) Type() CodeType {
	return CodeType((uint32(code) & MASK_TYPE) >> SHIFT_TYPE)
}

// Operand returns the raw operand byte.
func (code Code) Operand() uint8 {
	return uint8((uint32(code) & MASK_OPERAND) >> SHIFT_OPERAND)
}

// Signed returns the operand as a sign-magnitude integer.
func (code Code) Signed() int8 {
	return OperandValue(code.Operand())
}

// Unsigned returns the raw operand byte as an integer.
// Jump targets are taken from here.
func (code Code) Unsigned() int {
	return int(code.Operand())
}

// Valid returns true if the word has no bits above the instruction
// width, and selects an opcode in use.
func (code Code) Valid() bool {
	if (uint32(code) >> CODE_BITS) != 0 {
		return false
	}
	return code.Opcode() < OP_COUNT
}

// String returns the full four-token assembly form of the instruction.
func (code Code) String() string {
	op, reg, typ, operand := code.Decode()

	// Keep the sign of a negative zero so the text reassembles exactly.
	sign := ""
	if (operand & OPERAND_SIGN) != 0 {
		sign = "-"
	}

	return fmt.Sprintf("%v %v %d %v%d", op, reg, int(typ), sign, operand&OPERAND_MAX)
}
