package level

import (
	"errors"
	"fmt"
)

// Kind classifies a descriptor failure.
type Kind int

const (
	KindParse  Kind = iota + 1 // Source is not well-formed
	KindSchema                 // Missing field or wrong type
	KindRange                  // Well-typed but numerically invalid
)

// String returns the error kind name.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "ParseError"
	case KindSchema:
		return "SchemaError"
	case KindRange:
		return "RangeError"
	default:
		return "UnknownError"
	}
}

// Error is returned for every descriptor that fails to load. Path names the
// offending field, e.g. "scroll_speed" or "obstacles[2].gap"; "$" is the
// document root.
type Error struct {
	Kind Kind
	Path string
	Msg  string
	Err  error // Underlying decoder error, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Path, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a level *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var le *Error
	if errors.As(err, &le) {
		return le.Kind == k
	}
	return false
}

// PathOf returns the field path of a level *Error, or "" for other errors.
func PathOf(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Path
	}
	return ""
}

func parseErr(err error) *Error {
	return &Error{Kind: KindParse, Path: rootPath, Msg: err.Error(), Err: err}
}

func schemaErr(path, format string, args ...any) *Error {
	return &Error{Kind: KindSchema, Path: path, Msg: fmt.Sprintf(format, args...)}
}

func rangeErr(path, format string, args ...any) *Error {
	return &Error{Kind: KindRange, Path: path, Msg: fmt.Sprintf(format, args...)}
}
