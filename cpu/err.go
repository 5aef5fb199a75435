package cpu

import (
	"errors"

	"github.com/yahvm/yahvm/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcEmpty       = errors.New(f("pc empty"))
	ErrTickLimit     = errors.New(f("tick limit reached"))
	ErrRegisterRange = errors.New(f("register out of range"))
	ErrDivideByZero  = errors.New(f("divide by zero"))
	ErrOverflow      = errors.New(f("arithmetic overflow"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelSyntax     = errors.New(f("label syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrTypeInvalid     = errors.New(f("type invalid"))
	ErrTokenCount      = errors.New(f("wrong number of tokens"))
	ErrOperandRange    = errors.New(f("operand out of range"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrOpcode is the instruction word that failed to execute.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%05x %v", uint32(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
