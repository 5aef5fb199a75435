package io

import (
	"github.com/pkg/errors"

	"github.com/yahvm/yahvm/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelClosed = errors.New(f("channel closed"))

	// Artifact errors
	ErrRomLength = errors.New(f("artifact length is not a multiple of the instruction width"))
	ErrRomWord   = errors.New(f("artifact word out of range"))
)
