package parser

import "fmt"

// UnsafeInputError rejects input that references anything outside the
// fixed allow-list: unknown identifiers, attribute access, reflective
// double-underscore patterns, or illegal characters. It is never recovered
// from; the request is refused.
type UnsafeInputError struct {
	Detail string
}

func (e *UnsafeInputError) Error() string {
	return fmt.Sprintf("unsafe input: %s", e.Detail)
}

// AmbiguousEquationError rejects input with more than one top-level
// equality sign.
type AmbiguousEquationError struct {
	Count int
}

func (e *AmbiguousEquationError) Error() string {
	return fmt.Sprintf("ambiguous equation: found %d top-level '=' signs, expected at most one", e.Count)
}

// ParseError reports malformed expression syntax with the byte offset of
// the offending token.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}
