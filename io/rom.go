package io

import (
	"encoding/binary"
	"io"
	"iter"

	"github.com/pkg/errors"
)

const (
	ROM_WORD_BYTES = 4       // Bytes per instruction word.
	ROM_WORD_MASK  = 0x3ffff // Significant bits of an instruction word.
)

// Rom is the binary program artifact: big-endian 32-bit words with no
// header, the length of the artifact giving the program length.
type Rom struct {
	Data []uint32
}

// Rewind discards the loaded words.
func (rc *Rom) Rewind() {
	rc.Data = nil
}

// Receive returns an iterator over the words of the artifact.
func (rc *Rom) Receive() iter.Seq[uint32] {
	return func(yield func(value uint32) bool) {
		for _, data := range rc.Data {
			if !yield(data) {
				return
			}
		}
	}
}

// Load replaces the words with those decoded from the artifact bytes.
func (rc *Rom) Load(data []byte) (err error) {
	if len(data)%ROM_WORD_BYTES != 0 {
		return errors.Wrapf(ErrRomLength, "Load %d bytes", len(data))
	}

	words := make([]uint32, 0, len(data)/ROM_WORD_BYTES)
	for n := 0; n < len(data); n += ROM_WORD_BYTES {
		words = append(words, binary.BigEndian.Uint32(data[n:]))
	}

	rc.Data = words
	return
}

// Bytes returns the artifact bytes of the words.
func (rc *Rom) Bytes() (data []byte) {
	data = make([]byte, 0, len(rc.Data)*ROM_WORD_BYTES)
	for _, word := range rc.Data {
		data = binary.BigEndian.AppendUint32(data, word)
	}
	return
}

// ReadFrom reads an entire artifact from r.
func (rc *Rom) ReadFrom(r io.Reader) (n int64, err error) {
	data, err := io.ReadAll(r)
	n = int64(len(data))
	if err != nil {
		err = errors.Wrap(err, "Load")
		return
	}

	err = rc.Load(data)
	return
}

// WriteTo writes the artifact to w.
func (rc *Rom) WriteTo(w io.Writer) (n int64, err error) {
	for _, word := range rc.Data {
		if (word & ^uint32(ROM_WORD_MASK)) != 0 {
			err = errors.Wrapf(ErrRomWord, "Save 0x%08x", word)
			return
		}
	}

	count, err := w.Write(rc.Bytes())
	n = int64(count)
	if err != nil {
		err = errors.Wrap(err, "Save")
	}
	return
}
