// Package guard implements the constructor-guard pattern used by value objects,
// commands, and aggregates to reject zero-value instances that bypassed their
// designated constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// for a zero-value guard, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether the embedding struct was created through its
// constructor function. The zero value fails Validate; only NewConstructorGuard
// produces a passing guard.
//
// Example:
//
//	type Barcode struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewBarcode(value string) (Barcode, error) {
//	    if value == "" {
//	        return Barcode{}, errors.New("barcode is required")
//	    }
//	    return Barcode{value: value, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (b Barcode) Validate() error {
//	    return b.guard.Validate(errBarcodeNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the embedding object as properly
// constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value guard
// it returns notConstructedErr, or ErrDefaultConstructorGuard when nil is given.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.isConstructed {
		return nil
	}

	if notConstructedErr == nil {
		return ErrDefaultConstructorGuard
	}

	return notConstructedErr
}
