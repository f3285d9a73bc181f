package evaluator

import "errors"

// Errors reported while evaluating a line. Unresolved identifiers and
// stack underflow are recovered from with a nil value; the rest stop the
// line.
var (
	ErrUnresolved      = errors.New("unresolved identifier")
	ErrStackUnderflow  = errors.New("operand stack underflow")
	ErrStackOverflow   = errors.New("operand stack overflow")
	ErrCallDepth       = errors.New("call depth exceeded")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNotCallable     = errors.New("not a function")
	ErrNotIndexable    = errors.New("not a list")
	ErrInvalidOperator = errors.New("unknown operator")
)
