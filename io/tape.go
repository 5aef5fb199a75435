package io

import (
	"fmt"
	"io"
)

// Tape records the values printed by the machine. Each value is written
// to Output, if set, as an `output: N` line.
type Tape struct {
	Output io.Writer
	Lines  []string // Printed lines since the last rewind.
}

var _ Channel = (*Tape)(nil)

// Rewind forgets the printed lines. Output already written stays written.
func (tc *Tape) Rewind() {
	tc.Lines = nil
}

// Send records a printed value, and writes it to the output stream.
func (tc *Tape) Send(value int8) (err error) {
	line := fmt.Sprintf("output: %d", value)
	tc.Lines = append(tc.Lines, line)

	if tc.Output == nil {
		return
	}

	_, err = fmt.Fprintln(tc.Output, line)
	if err != nil {
		err = ErrChannelClosed
	}

	return
}

// Last returns the most recently printed line, or "" if there is none.
func (tc *Tape) Last() string {
	if len(tc.Lines) == 0 {
		return ""
	}
	return tc.Lines[len(tc.Lines)-1]
}
