// Package guard provides the constructor guard pattern used by domain objects,
// commands, and queries to ensure instances are only created through their
// designated constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil validation error
// is supplied for an object that was not properly constructed. It guarantees
// validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was created through its constructor
// or as a zero value. Embedding a guard in a struct and setting it via
// NewConstructorGuard inside the constructor makes zero-value instances fail
// Validate, which keeps domain invariants from being bypassed by direct
// struct initialization.
//
// Example usage:
//
//	type BinItem struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewBinItem(quantity int) (BinItem, error) {
//	    if quantity <= 0 {
//	        return BinItem{}, errors.New("quantity must be positive")
//	    }
//	    return BinItem{quantity: quantity, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (i BinItem) Validate() error {
//	    return i.guard.Validate(ErrBinItemIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call this in the constructor of domain objects so they can be
// distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects. For zero-value objects it
// returns validationError, or ErrDefaultConstructorGuard when validationError
// is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
