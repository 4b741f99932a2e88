// Package moerr defines the closed set of error kinds raised by the
// query core: a coded error value constructed through per-kind New
// functions rather than fmt.Errorf sprinkled across call sites.
package moerr

import (
	"context"
	"fmt"
)

// Kind is a coded error category.
type Kind uint16

const (
	Ok Kind = iota
	KindSchemaMismatch
	KindTypeMismatch
	KindOutOfRange
	KindUnreachablePredicate
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindSchemaMismatch:
		return "schema mismatch"
	case KindTypeMismatch:
		return "type mismatch"
	case KindOutOfRange:
		return "out of range"
	case KindUnreachablePredicate:
		return "unreachable predicate"
	case KindInternal:
		return "internal error"
	default:
		return "ok"
	}
}

// Error is the concrete error type returned by every New function
// below. It carries its Kind so callers can branch with errors.As
// instead of string matching.
type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string {
	return e.message
}

// Kind reports the coded category of the error.
func (e *Error) Kind() Kind {
	return e.kind
}

func newError(_ context.Context, kind Kind, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{kind: kind, message: fmt.Sprintf("%s: %s", kind, msg)}
}

// NewSchemaMismatch reports a row/column count or type mismatch on
// append, or a reference segment surfacing in a Data table (or vice
// versa).
func NewSchemaMismatch(ctx context.Context, format string, args ...any) *Error {
	return newError(ctx, KindSchemaMismatch, format, args...)
}

// NewTypeMismatch reports an attempt to compare incompatible column
// types, e.g. a string column against a numeric column in a join.
func NewTypeMismatch(ctx context.Context, format string, args ...any) *Error {
	return newError(ctx, KindTypeMismatch, format, args...)
}

// NewOutOfRange reports a column or chunk id outside the declared
// size of its owning table.
func NewOutOfRange(ctx context.Context, format string, args ...any) *Error {
	return newError(ctx, KindOutOfRange, format, args...)
}

// NewUnreachablePredicate reports an inclusivity combination that
// does not match one of the four recognized between-predicate
// variants.
func NewUnreachablePredicate(ctx context.Context, format string, args ...any) *Error {
	return newError(ctx, KindUnreachablePredicate, format, args...)
}

// NewInternalError reports a violated invariant that has no more
// specific kind.
func NewInternalError(ctx context.Context, format string, args ...any) *Error {
	return newError(ctx, KindInternal, format, args...)
}

// Is reports whether err was produced by moerr with the given kind.
func Is(err error, kind Kind) bool {
	me, ok := err.(*Error)
	return ok && me.kind == kind
}
