package bunaudit

import (
	"errors"
	"strings"
)

// Error is the bunaudit fatal-decode error domain type.
//
// Errors coming from the decode package should be able to be inspected as
// ([errors.As]) an *Error at some point in the error chain.
//
// Decode components should create an Error at the point a structural
// invariant is violated (bad magic, an offset past the end of the buffer, a
// short read) and intermediate layers should not wrap in another Error
// except to add additional [ErrorKind] information — use [fmt.Errorf] with a
// "%w" verb in preference to creating a containing Error.
//
// The finding engine and report assembler never return an error: only the
// decoder can fail fatally, per the two-category taxonomy in spec.md §7.
type Error struct {
	Inner   error
	Kind    ErrorKind
	Message string
	Op      string
}

// Assert this implements all the cool features.
var (
	_ error                       = (*Error)(nil)
	_ interface{ Is(error) bool } = (*Error)(nil)
	_ interface{ Unwrap() error } = (*Error)(nil)
)

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	b.WriteString("[")
	switch e.Kind {
	case ErrBadMagic,
		ErrUnsupportedVersion,
		ErrShortRead,
		ErrBadOffset:
		b.WriteString(string(e.Kind))
	default:
		b.WriteString("???")
	}
	b.WriteString("]: ")
	if e.Message != "" {
		b.WriteString(e.Message)
	}
	if e.Message != "" && e.Inner != nil {
		b.WriteString(": ")
	}
	if e.Op == "" && e.Message == "" {
		b.Reset()
	}
	if e.Inner != nil {
		b.WriteString(e.Inner.Error())
	}
	return b.String()
}

// Is enables [errors.Is].
//
// It compares the error kind. Callers should compare against a declared
// [ErrorKind] over a specific error.
func (e *Error) Is(kind error) bool {
	return errors.Is(e.Kind, kind)
}

// Unwrap enables [errors.Unwrap].
func (e *Error) Unwrap() error {
	return e.Inner
}

// ErrorKind represents the class of a fatal decode error.
type ErrorKind string

// Defined error kinds. Each of these, when returned from the decode package,
// means no report can be produced — see spec.md §7.
var (
	// ErrBadMagic means the header's 8-byte magic did not match.
	ErrBadMagic = ErrorKind("bad magic")
	// ErrUnsupportedVersion means format_version fell outside the
	// decoder's supported [FormatVersionMin, FormatVersionMax] range, and strict mode is in
	// effect.
	ErrUnsupportedVersion = ErrorKind("unsupported version")
	// ErrShortRead means fewer bytes remained in the input than a read
	// required, before the package table finished decoding.
	ErrShortRead = ErrorKind("short read")
	// ErrBadOffset means a computed offset, length, or count was out of
	// range of the input buffer, or overflowed during checked arithmetic.
	ErrBadOffset = ErrorKind("bad offset")
)

// Error implements error.
func (k ErrorKind) Error() string {
	return string(k)
}
