// Package io provides the I/O devices of the yahvm virtual machine.
// It includes the output channel printed values are sent to (Tape), and
// the binary program artifact (Rom).
package io

// Channel defines the interface for output channels. The only I/O the
// machine performs is printing integers.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Send writes a single printed value to the channel.
	Send(value int8) error
}
