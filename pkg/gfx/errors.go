package gfx

import (
	"errors"
	"fmt"
)

// Device and layout errors.
var (
	ErrDevice                   = errors.New("graphics device error")
	ErrNoContext                = fmt.Errorf("%w: no current context", ErrDevice)
	ErrContextLost              = fmt.Errorf("%w: context lost", ErrDevice)
	ErrOutOfMemory              = fmt.Errorf("%w: out of memory", ErrDevice)
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
	ErrUnsupportedTextureTarget = errors.New("unsupported texture target")
)

// GL error codes as returned by glGetError.
const (
	codeNoError                     = 0
	codeInvalidEnum                 = 0x0500
	codeInvalidValue                = 0x0501
	codeInvalidOperation            = 0x0502
	codeStackOverflow               = 0x0503
	codeStackUnderflow              = 0x0504
	codeOutOfMemory                 = 0x0505
	codeInvalidFramebufferOperation = 0x0506
	codeContextLost                 = 0x0507
)

// CheckError converts a GL error code into an error wrapping ErrDevice.
// op names the failed call for the message.
func CheckError(op string, code uint32) error {
	switch code {
	case codeNoError:
		return nil
	case codeContextLost:
		return fmt.Errorf("%s: %w", op, ErrContextLost)
	case codeOutOfMemory:
		return fmt.Errorf("%s: %w", op, ErrOutOfMemory)
	}

	var name string
	switch code {
	case codeInvalidEnum:
		name = "INVALID_ENUM"
	case codeInvalidValue:
		name = "INVALID_VALUE"
	case codeInvalidOperation:
		name = "INVALID_OPERATION"
	case codeStackOverflow:
		name = "STACK_OVERFLOW"
	case codeStackUnderflow:
		name = "STACK_UNDERFLOW"
	case codeInvalidFramebufferOperation:
		name = "INVALID_FRAMEBUFFER_OPERATION"
	default:
		name = fmt.Sprintf("0x%04X", code)
	}
	return fmt.Errorf("%s: %w: %s", op, ErrDevice, name)
}
