package io

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Load(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}

	err := rom.Load([]byte{0x00, 0x00, 0x40, 0x01, 0x00, 0x00, 0x00, 0x0c})
	assert.NoError(err)
	assert.Equal([]uint32{0x4001, 0x000c}, rom.Data)
}

func TestRom_Load_Empty(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{1}}

	err := rom.Load(nil)
	assert.NoError(err)
	assert.Len(rom.Data, 0)
}

func TestRom_Load_Length(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{1}}

	for _, size := range []int{1, 2, 3, 5, 7} {
		err := rom.Load(make([]byte, size))
		assert.ErrorIs(err, ErrRomLength, "size %d", size)
	}

	// A failed load leaves the previous words alone.
	assert.Equal([]uint32{1}, rom.Data)
}

func TestRom_Receive(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0x4001, 0x8002, 0x000c}}

	var words []uint32
	for word := range rom.Receive() {
		words = append(words, word)
	}
	assert.Equal(rom.Data, words)

	count := 0
	for range rom.Receive() {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(2, count)
}

func TestRom_ReadWrite(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0x3ffff, 0x00001, 0x18002}}

	buf := &bytes.Buffer{}
	n, err := rom.WriteTo(buf)
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal([]byte{
		0x00, 0x03, 0xff, 0xff,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x01, 0x80, 0x02,
	}, buf.Bytes())

	other := &Rom{}
	n, err = other.ReadFrom(bytes.NewReader(buf.Bytes()))
	assert.NoError(err)
	assert.Equal(int64(12), n)
	assert.Equal(rom.Data, other.Data)

	other.Rewind()
	assert.Nil(other.Data)
}

func TestRom_WriteTo_Word(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint32{0x40000}}

	buf := &bytes.Buffer{}
	_, err := rom.WriteTo(buf)
	assert.ErrorIs(err, ErrRomWord)
	assert.Equal(0, buf.Len())
}

type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("unreadable")
}

func TestRom_ReadFrom_Error(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	_, err := rom.ReadFrom(brokenReader{})
	assert.Error(err)
	assert.Contains(err.Error(), "unreadable")
}
