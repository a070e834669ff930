// Package vmerror defines the Jazz error taxonomy (spec §7) shared by every
// package that can raise or observe a dispatch failure. Errors are raised by
// panicking with a *Error value; machine.Run recovers exactly that type
// at the outermost call boundary and turns it back into a normal Go error,
// mirroring how the original Rust core used `panic!` for every one of these
// cases and relied on the caller to decide whether that was fatal.
package vmerror

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which member of the spec §7 taxonomy an Error represents.
type Kind int

const (
	KindRuntime Kind = iota
	KindLabelNotFound
	KindGlobalNotFound
	KindExpected
	KindArithmetic
	KindNotCallable
	KindFieldNotFound
	KindStackOverflow
)

func (k Kind) String() string {
	switch k {
	case KindRuntime:
		return "Runtime"
	case KindLabelNotFound:
		return "LabelNotFound"
	case KindGlobalNotFound:
		return "GlobalNotFound"
	case KindExpected:
		return "Expected"
	case KindArithmetic:
		return "Arithmetic"
	case KindNotCallable:
		return "NotCallable"
	case KindFieldNotFound:
		return "FieldNotFound"
	case KindStackOverflow:
		return "StackOverflow"
	default:
		return "Unknown"
	}
}

// Error is the single error type raised from anywhere in the dispatch path.
// It is always constructed through one of the New* helpers below so that a
// stack trace is attached at the point of failure, the way
// `github.com/pkg/errors` callers are expected to do it.
type Error struct {
	Kind    Kind
	Detail  string
	cause   error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// Format supports `%+v` to print the attached stack trace, matching the
// teacher's RuntimeError.Error() stack-trace rendering in spirit.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s", e.Error())
		if e.cause != nil {
			fmt.Fprintf(s, "\n%+v", e.cause)
		}
		return
	}
	fmt.Fprintf(s, "%s", e.Error())
}

func newError(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail, cause: errors.WithStack(errors.New(kind.String()))}
}

func Runtime(format string, args ...interface{}) *Error {
	return newError(KindRuntime, fmt.Sprintf(format, args...))
}

func LabelNotFound(label int) *Error {
	return newError(KindLabelNotFound, fmt.Sprintf("label `%d`", label))
}

func GlobalNotFound(global int) *Error {
	return newError(KindGlobalNotFound, fmt.Sprintf("global `%d`", global))
}

func Expected(expected, found string) *Error {
	return newError(KindExpected, fmt.Sprintf("expected `%s` found `%s`", expected, found))
}

func Arithmetic(detail string) *Error {
	return newError(KindArithmetic, detail)
}

func NotCallable(found string) *Error {
	return newError(KindNotCallable, fmt.Sprintf("value `%s` is not callable", found))
}

func FieldNotFound(name string) *Error {
	return newError(KindFieldNotFound, fmt.Sprintf("field `%s`", name))
}

func StackOverflow(limit int) *Error {
	return newError(KindStackOverflow, fmt.Sprintf("exceeded %d frames", limit))
}

// Throw panics with a *Error, the mechanism every instruction handler and
// Object implementation uses to signal failure up to machine.Run.
func Throw(err *Error) {
	panic(err)
}

// Recover converts a recovered panic value back into an error, re-panicking
// anything that isn't a *Error (a programming error, same as the teacher's
// pool.Get bounds panics and the original Rust `.unwrap()` calls).
func Recover(r interface{}) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(*Error); ok {
		return err
	}
	panic(r)
}
