// Package cpu implements the register machine and assembler for the yahvm system.
//
// The machine consists of a program counter (PC), sixteen signed 8-bit
// registers ($0-$f), and a condition flag set by the comparison
// instructions and consumed by the two branch instructions.
//
// Instructions are 32-bit words of which only the low 18 bits are
// significant:
//
//	17-14  opcode    PRT SET ADD SUB MUL DIV JMP JNP EQL CBP CLP
//	13-10  register  target register
//	  9-8  type      0 immediate, 1 register, 2 print register, 3 reserved
//	  7-0  operand   sign-magnitude: bit 7 sign, bits 6-0 magnitude
//
// The assembler translates a line-oriented assembly language into a
// Program, resolving #labels to the 1-based index of the instruction
// following the label. It also supports equates and compile-time
// expression evaluation.
package cpu
