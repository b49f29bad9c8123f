package loom

import "fmt"

// Args is the ordered list of opaque construction parameters passed from an
// Instance (or provider-creation) call through to the binding's producer.
// Producers read it with the typed helpers Arg and ArgOf rather than
// indexing it directly.
type Args []any

// Arg extracts the argument at position index as type T.
// Fails with an argument-mismatch error if the index is out of range
// (including when no arguments were supplied at all) or the argument's
// runtime type is not T.
//
// Example:
//
//	Factory(b, func(r loom.Resolver, args loom.Args) (*Session, error) {
//	    userID, err := loom.Arg[string](args, 0)
//	    if err != nil {
//	        return nil, err
//	    }
//
//	    return &Session{UserID: userID}, nil
//	})
func Arg[T any](args Args, index int) (T, error) {
	var zero T

	if index < 0 || index >= len(args) {
		return zero, ErrArgumentOutOfRange(index, len(args))
	}

	typed, ok := args[index].(T)
	if !ok {
		return zero, ErrArgumentType(index, typeOf[T](), args[index])
	}

	return typed, nil
}

// ArgOf extracts the first supplied argument whose runtime type is T,
// regardless of position. Fails with an argument-mismatch error if none of
// the supplied arguments matches.
func ArgOf[T any](args Args) (T, error) {
	for _, arg := range args {
		if typed, ok := arg.(T); ok {
			return typed, nil
		}
	}

	var zero T

	return zero, ErrArgumentNotFound(typeOf[T](), len(args))
}

// MustArg extracts the argument at position index as type T, panicking on
// failure. Use only in producers whose argument contract is fixed by the
// call site.
func MustArg[T any](args Args, index int) T {
	value, err := Arg[T](args, index)
	if err != nil {
		panic(fmt.Sprintf("argument %d: %v", index, err))
	}

	return value
}

// MustArgOf extracts the first argument of type T, panicking if none matches.
func MustArgOf[T any](args Args) T {
	value, err := ArgOf[T](args)
	if err != nil {
		panic(fmt.Sprintf("argument of type %s: %v", typeOf[T](), err))
	}

	return value
}
