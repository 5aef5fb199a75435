package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTape_Send(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	assert.Equal("", tape.Last())

	assert.NoError(tape.Send(1))
	assert.NoError(tape.Send(-12))
	assert.NoError(tape.Send(127))

	assert.Equal([]string{"output: 1", "output: -12", "output: 127"}, tape.Lines)
	assert.Equal("output: 127", tape.Last())
	assert.Equal("output: 1\noutput: -12\noutput: 127\n", output.String())
}

func TestTape_Send_NoOutput(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{}

	assert.NoError(tape.Send(5))
	assert.Equal("output: 5", tape.Last())
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken")
}

func TestTape_Send_Closed(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Output: brokenWriter{}}

	err := tape.Send(5)
	assert.ErrorIs(err, ErrChannelClosed)
	assert.Equal("output: 5", tape.Last())
}

func TestTape_Rewind(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tape := &Tape{Output: output}

	tape.Send(3)
	tape.Rewind()

	assert.Nil(tape.Lines)
	assert.Equal("", tape.Last())
	assert.Equal("output: 3\n", output.String())
}
