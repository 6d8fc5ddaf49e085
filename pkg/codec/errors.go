package codec

import "fmt"

// Code identifies the kind of failure a codec operation reports, matching
// the original library's sz_response_t one-for-one.
type Code int

const (
	CodeNone Code = iota
	CodeNullContext
	CodeContextOpen
	CodeContextClosed
	CodeInvalidOperation
	CodeInvalidRoot
	CodeMalformedMagicHead
	CodeMalformedMagicVersion
	CodeWrongKind
	CodeBadName
	CodeEmptyArray
	CodeNullPointer
	CodeOutOfMemory
	CodeCannotRead
	CodeCannotWrite
	CodeEOF
	CodeInvalidStream
)

var codeMessages = map[Code]string{
	CodeNone:                  "no error",
	CodeNullContext:           "session is nil",
	CodeContextOpen:           "session is already open",
	CodeContextClosed:         "session is not open",
	CodeInvalidOperation:      "operation is not valid for the current session mode",
	CodeInvalidRoot:           "root header is invalid",
	CodeMalformedMagicHead:    "magic identifier bytes do not match",
	CodeMalformedMagicVersion: "stream format version is newer than supported",
	CodeWrongKind:             "chunk kind does not match what was expected",
	CodeBadName:               "chunk name does not match what was expected",
	CodeEmptyArray:            "array chunk has a declared length of zero",
	CodeNullPointer:           "required identity or argument is nil",
	CodeOutOfMemory:           "buffer allocation failed",
	CodeCannotRead:            "could not read the requested bytes from the stream",
	CodeCannotWrite:           "could not write the requested bytes to the stream",
	CodeEOF:                   "unexpected end of stream",
	CodeInvalidStream:         "no stream is bound to the session",
}

func (c Code) String() string {
	if s, ok := codeMessages[c]; ok {
		return s
	}
	return "unknown error"
}

// Error is the error type every codec operation returns on failure. Two
// Errors are equal under errors.Is when their Codes match, regardless of
// Detail — callers compare against the package's sentinel values
// (ErrWrongKind, ErrBadName, ...) rather than Code directly.
type Error struct {
	Code   Code
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Detail)
	}
	return e.Code.String()
}

// Is reports whether target is a *Error with the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func newErrorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Sentinel errors, one per Code, for use with errors.Is.
var (
	ErrNullContext           = &Error{Code: CodeNullContext}
	ErrContextOpen           = &Error{Code: CodeContextOpen}
	ErrContextClosed         = &Error{Code: CodeContextClosed}
	ErrInvalidOperation      = &Error{Code: CodeInvalidOperation}
	ErrInvalidRoot           = &Error{Code: CodeInvalidRoot}
	ErrMalformedMagicHead    = &Error{Code: CodeMalformedMagicHead}
	ErrMalformedMagicVersion = &Error{Code: CodeMalformedMagicVersion}
	ErrWrongKind             = &Error{Code: CodeWrongKind}
	ErrBadName               = &Error{Code: CodeBadName}
	ErrEmptyArray            = &Error{Code: CodeEmptyArray}
	ErrNullPointer           = &Error{Code: CodeNullPointer}
	ErrOutOfMemory           = &Error{Code: CodeOutOfMemory}
	ErrCannotRead            = &Error{Code: CodeCannotRead}
	ErrCannotWrite           = &Error{Code: CodeCannotWrite}
	ErrEOF                   = &Error{Code: CodeEOF}
	ErrInvalidStream         = &Error{Code: CodeInvalidStream}
)
