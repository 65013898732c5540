// Package errors provides coded errors for mondrian.
//
// Every error a mondrian package returns on purpose is an [*Error] carrying a
// machine-readable [Code]. Codes survive wrapping, both by [Wrap] and by
// fmt.Errorf("...: %w"), so callers can branch on them wherever the error
// ends up:
//
//	_, err := engine.SplitOne(i, partition.Vertical, partition.TwoWay)
//	if errors.Is(err, errors.ErrCodeDegenerateSplit) {
//	    // tile too small: keep the old partition and tell the user
//	}
//
// A rejected partition mutation never changes the partition, so the previous
// state stays usable after any error coded here.
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Rejected input: scripts, flags, config files and output paths.
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidCommand Code = "INVALID_COMMAND"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPath    Code = "INVALID_PATH"

	// Rejected partition mutations.
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
	ErrCodeDegenerateSplit Code = "DEGENERATE_SPLIT"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error returns the message followed by the cause, if any. The code is not
// part of the text; use [GetCode] or [Is].
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with code and a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any coded error in err's chain has code. An
// INVALID_CONFIG error wrapping an INVALID_INPUT one matches both.
func Is(err error, code Code) bool {
	for {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
}

// GetCode returns the code of the outermost coded error in err's chain, or
// "" when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost coded error without its
// causes, short enough for a status line. Other errors are returned as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
