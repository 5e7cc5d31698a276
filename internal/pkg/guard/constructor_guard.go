// Package guard provides a constructor guard for value objects, entities,
// commands and queries. Embedding a ConstructorGuard lets a type detect
// whether it was produced by its designated constructor or left as a zero
// value, which keeps invariants enforceable across package boundaries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied and the object was not constructed properly.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// The zero value fails validation, so a struct that embeds a guard cannot
// be used meaningfully without going through the factory function that
// sets it.
//
// Example:
//
//	type PostFlightCommand struct {
//	    flightID kernel.UUID
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewPostFlightCommand(flightID kernel.UUID) (PostFlightCommand, error) {
//	    // ...validation...
//	    return PostFlightCommand{flightID: flightID, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c PostFlightCommand) Validate() error {
//	    return c.guard.Validate(ErrPostFlightCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marking the enclosing object as
// properly constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
