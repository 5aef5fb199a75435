// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":         "0",
	"REGISTER_COUNT": fmt.Sprintf("%d", REGISTER_COUNT),
	"OPERAND_MAX":    fmt.Sprintf("%d", OPERAND_MAX),
	"TYPE_IMM":       fmt.Sprintf("%d", TYPE_IMM),
	"TYPE_REG":       fmt.Sprintf("%d", TYPE_REG),
	"TYPE_VAR":       fmt.Sprintf("%d", TYPE_VAR),
	"TYPE_RSVD":      fmt.Sprintf("%d", TYPE_RSVD),
}

var (
	reLabelDef = regexp.MustCompile(`^#\w+$`)
	reLabelRef = regexp.MustCompile(`#\w+`)
	reParen    = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a two pass assembler for the yahvm instruction set.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// opMap maps mnemonics to opcodes.
var opMap = map[string]CodeOp{
	"PRT": OP_PRT,
	"SET": OP_SET,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"MUL": OP_MUL,
	"DIV": OP_DIV,
	"JMP": OP_JMP,
	"JNP": OP_JNP,
	"EQL": OP_EQL,
	"CBP": OP_CBP,
	"CLP": OP_CLP,
}

// regMap maps lower case register names to register indexes.
var regMap = map[string]CodeReg{
	"$0": REG_0,
	"$1": REG_1,
	"$2": REG_2,
	"$3": REG_3,
	"$4": REG_4,
	"$5": REG_5,
	"$6": REG_6,
	"$7": REG_7,
	"$8": REG_8,
	"$9": REG_9,
	"$a": REG_A,
	"$b": REG_B,
	"$c": REG_C,
	"$d": REG_D,
	"$e": REG_E,
	"$f": REG_F,
}

// typeMap maps type digits to operand types.
var typeMap = map[string]CodeType{
	"0": TYPE_IMM,
	"1": TYPE_REG,
	"2": TYPE_VAR,
	"3": TYPE_RSVD,
}

// source is a retained line of assembly text.
type source struct {
	lineNo int
	line   string
}

// getRegister returns the register index of a register name.
func getRegister(word string) (reg CodeReg, err error) {
	reg, ok := regMap[strings.ToLower(word)]
	if !ok {
		err = ErrRegisterInvalid
	}
	return
}

// getOperand parses a signed decimal literal into a sign-magnitude operand.
// A leading '-' always sets the sign bit, so "-0" keeps its sign.
func getOperand(word string) (operand uint8, err error) {
	negative := strings.HasPrefix(word, "-")
	digits := word
	if negative {
		digits = word[1:]
	}

	v64, err := strconv.ParseInt(digits, 10, 32)
	if err != nil || v64 < 0 {
		err = ErrParseNumber(word)
		return
	}

	if v64 > OPERAND_MAX {
		err = ErrOperandRange
		return
	}

	operand = uint8(v64)
	if negative {
		operand |= OPERAND_SIGN
	}

	return
}

// valueOf returns the integer value of an equate, if it has one.
func valueOf(word string) (value int64, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 int64
		v64, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// resolveLabels replaces each label reference with the 1-based index of
// the instruction following the label.
func resolveLabels(line string, labels map[string]int) (resolved string, err error) {
	resolved = reLabelRef.ReplaceAllStringFunc(line, func(label string) string {
		pc, ok := labels[label]
		if !ok {
			if err == nil {
				err = ErrLabelMissing(label)
			}
			return label
		}
		return strconv.Itoa(pc + 1)
	})
	return
}

// parseEquate handles a `.equ NAME VALUE` directive.
func (asm *Assembler) parseEquate(line string) (err error) {
	words := strings.Split(line, " ")
	if len(words) != 3 || words[0] != ".equ" {
		err = ErrEquateSyntax
		return
	}

	_, ok := asm.Equate[words[1]]
	if ok {
		err = ErrEquateDuplicate
		return
	}

	asm.Equate[words[1]] = words[2]
	return
}

// parseLine resolves labels, expressions and equates in a single line,
// and splits it into words.
func (asm *Assembler) parseLine(line string, lineno int, labels map[string]int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line, err = resolveLabels(line, labels)
	if err != nil {
		return
	}

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Split(line, " ")

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if !ok {
			continue
		}
		words[n], err = resolveLabels(equate, labels)
		if err != nil {
			return
		}
	}

	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Opcode = nil
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	// Labels only live for the duration of the parse.
	labels := make(map[string]int)

	var retained []source

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(text)

		switch {
		case len(line) == 0:
			// blank
		case strings.HasPrefix(line, ";"):
			// comment
		case strings.HasPrefix(line, "#"):
			if !reLabelDef.MatchString(line) {
				err = ErrLabelSyntax
				return
			}
			_, ok := labels[line]
			if ok {
				err = ErrLabelDuplicate
				return
			}
			labels[line] = len(retained)
		case strings.HasPrefix(line, ".equ"):
			err = asm.parseEquate(line)
			if err != nil {
				return
			}
		default:
			retained = append(retained, source{lineNo: lineno, line: line})
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	for pc, src := range retained {
		lineno = src.lineNo
		line = src.line

		var words []string
		words, err = asm.parseLine(line, lineno, labels)
		if err != nil {
			return
		}

		var code Code
		code, err = asm.parseWords(words)
		if err != nil {
			return
		}

		if asm.Verbose {
			log.Printf("%03d: %v", pc, code)
		}

		asm.Opcode = append(asm.Opcode, Opcode{LineNo: lineno, Pc: pc, Words: words, Code: code})
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseWords encodes the words of a resolved line of assembly text.
func (asm *Assembler) parseWords(words []string) (code Code, err error) {
	op, ok := opMap[words[0]]
	if !ok {
		return asm.parseFull(words)
	}

	switch op {
	case OP_PRT:
		// PRT $x => print register
		// PRT N  => print literal
		if len(words) != 2 {
			break
		}
		if strings.HasPrefix(words[1], "$") {
			var reg CodeReg
			reg, err = getRegister(words[1])
			if err != nil {
				return
			}
			code = MakeCode(op, reg, TYPE_VAR, 0)
			return
		}
		var operand uint8
		operand, err = getOperand(words[1])
		if err != nil {
			return
		}
		code = MakeCode(op, REG_0, TYPE_IMM, operand)
		return
	case OP_JMP, OP_JNP:
		// JMP target
		if len(words) != 2 {
			break
		}
		var operand uint8
		operand, err = getOperand(words[1])
		if err != nil {
			return
		}
		code = MakeCode(op, REG_0, TYPE_IMM, operand)
		return
	case OP_SET, OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_EQL, OP_CBP, OP_CLP:
		// OP $REG $x => register operand
		// OP $REG N  => literal operand
		if len(words) != 3 {
			break
		}
		var reg CodeReg
		reg, err = getRegister(words[1])
		if err != nil {
			return
		}
		if strings.HasPrefix(words[2], "$") {
			var src CodeReg
			src, err = getRegister(words[2])
			if err != nil {
				return
			}
			code = MakeCode(op, reg, TYPE_REG, uint8(src))
			return
		}
		var operand uint8
		operand, err = getOperand(words[2])
		if err != nil {
			return
		}
		code = MakeCode(op, reg, TYPE_IMM, operand)
		return
	}

	return asm.parseFull(words)
}

// parseFull encodes the full `MNEMONIC REG TYPE OPERAND` form.
func (asm *Assembler) parseFull(words []string) (code Code, err error) {
	if len(words) != 4 {
		if _, ok := opMap[words[0]]; !ok {
			err = ErrOpcodeInvalid
			return
		}
		err = ErrTokenCount
		return
	}

	op, ok := opMap[words[0]]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	reg, err := getRegister(words[1])
	if err != nil {
		return
	}

	typ, ok := typeMap[words[2]]
	if !ok {
		err = ErrTypeInvalid
		return
	}

	operand, err := getOperand(words[3])
	if err != nil {
		return
	}

	code = MakeCode(op, reg, typ, operand)
	return
}
