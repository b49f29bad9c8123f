package loom

import (
	"fmt"
	"reflect"

	"github.com/xraph/go-utils/errs"
)

// =============================================================================
// ERROR CODES
// =============================================================================

const (
	// CodeBindingNotFound indicates no binding was found for a (type, qualifier)
	// key. Also used when a binding produced a value of the wrong type, since
	// callers treat both the same way: the requested binding is not available.
	CodeBindingNotFound = "BINDING_NOT_FOUND"

	// CodeArgumentMismatch indicates a producer argument could not be extracted
	CodeArgumentMismatch = "ARGUMENT_MISMATCH"

	// CodeInvalidProducer indicates a producer function is invalid or nil
	CodeInvalidProducer = "INVALID_PRODUCER"
)

// =============================================================================
// SENTINEL ERRORS
// =============================================================================

// ErrNilProducer is the panic value raised when a nil producer is registered.
var ErrNilProducer = errs.NewError(CodeInvalidProducer, "producer cannot be nil", nil)

// ErrBindingNotFoundSentinel is a sentinel error for binding not found (for error checking).
var ErrBindingNotFoundSentinel = errs.NewError(CodeBindingNotFound, "binding not found", nil)

// ErrArgumentMismatchSentinel is a sentinel error for argument extraction failures (for error checking).
var ErrArgumentMismatchSentinel = errs.NewError(CodeArgumentMismatch, "argument mismatch", nil)

// =============================================================================
// ERROR CONSTRUCTORS
// =============================================================================

// ErrBindingNotFound creates an error for when no binding exists at a
// (type, qualifier) key
func ErrBindingNotFound(typeName, qualifier string) *errs.Error {
	return errs.NewError(
		CodeBindingNotFound,
		fmt.Sprintf("no binding found for %s", keyString(typeName, qualifier)),
		nil,
	).WithContext("type", typeName).
		WithContext("qualifier", qualifier).(*errs.Error)
}

// ErrTypeMismatch creates an error for when a binding produced a value whose
// runtime type does not match the requested type. It carries the same code as
// ErrBindingNotFound: a binding producing the wrong type is as unavailable to
// the caller as a missing one.
func ErrTypeMismatch(typeName, qualifier string, produced any) *errs.Error {
	return errs.NewError(
		CodeBindingNotFound,
		fmt.Sprintf("binding %s produced %T, not the requested type", keyString(typeName, qualifier), produced),
		nil,
	).WithContext("type", typeName).
		WithContext("qualifier", qualifier).
		WithContext("produced_type", fmt.Sprintf("%T", produced)).(*errs.Error)
}

// ErrArgumentOutOfRange creates an error for a positional argument index that
// is outside the supplied argument list
func ErrArgumentOutOfRange(index, size int) *errs.Error {
	message := fmt.Sprintf("argument index %d out of range (%d supplied)", index, size)
	if size == 0 {
		message = fmt.Sprintf("argument index %d requested but no arguments were supplied", index)
	}

	return errs.NewError(CodeArgumentMismatch, message, nil).
		WithContext("index", index).
		WithContext("supplied", size).(*errs.Error)
}

// ErrArgumentType creates an error for a positional argument of the wrong
// runtime type
func ErrArgumentType(index int, want reflect.Type, got any) *errs.Error {
	return errs.NewError(
		CodeArgumentMismatch,
		fmt.Sprintf("argument %d is %T, want %s", index, got, want),
		nil,
	).WithContext("index", index).
		WithContext("want", want.String()).
		WithContext("got", fmt.Sprintf("%T", got)).(*errs.Error)
}

// ErrArgumentNotFound creates an error for when no supplied argument matches
// the requested type
func ErrArgumentNotFound(want reflect.Type, size int) *errs.Error {
	message := fmt.Sprintf("no argument of type %s among the %d supplied", want, size)
	if size == 0 {
		message = fmt.Sprintf("argument of type %s requested but no arguments were supplied", want)
	}

	return errs.NewError(CodeArgumentMismatch, message, nil).
		WithContext("want", want.String()).
		WithContext("supplied", size).(*errs.Error)
}
