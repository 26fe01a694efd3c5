package encoder

import (
	"fmt"

	"github.com/Amitc146/Assembler/parser"
)

// EncodingError provides detailed context for encoding failures: the
// source location of the offending line and the underlying message.
type EncodingError struct {
	Pos     parser.Position
	Message string
	Wrapped error
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	location := ""
	if e.Pos.Filename != "" {
		location = fmt.Sprintf("%s:%d: ", e.Pos.Filename, e.Pos.Line)
	} else if e.Pos.Line > 0 {
		location = fmt.Sprintf("line %d: ", e.Pos.Line)
	}

	if e.Wrapped != nil {
		return fmt.Sprintf("%s%s: %v", location, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s%s", location, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EncodingError) Unwrap() error {
	return e.Wrapped
}

// NewEncodingError creates a new EncodingError at pos.
func NewEncodingError(pos parser.Position, message string) *EncodingError {
	return &EncodingError{Pos: pos, Message: message}
}

// WrapEncodingError wraps err with positional context. If err is already
// an EncodingError it is returned unchanged; a nil err yields nil.
func WrapEncodingError(pos parser.Position, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*EncodingError); ok {
		return err
	}
	return &EncodingError{Pos: pos, Message: "failed to encode line", Wrapped: err}
}
