// Package guard ensures value objects and entities are only created through
// their designated constructor functions. Embedding a ConstructorGuard in a struct makes zero-value
// instances detectable, so domain invariants established by constructors
// cannot be bypassed by direct struct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when a nil error is passed
// as the validation error, so validation always fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value of
// ConstructorGuard fails validation, distinguishing constructed objects from
// zero-value structs.
//
// Example:
//
//	type Money struct {
//	    amount   int
//	    currency string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int, currency string) (Money, error) {
//	    // ... validation ...
//	    return Money{amount: amount, currency: currency, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly constructed.
// Call this in the constructor of domain objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its constructor.
// Returns the provided validationError for zero-value guards, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
