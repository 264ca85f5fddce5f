// Package guard holds the constructor guard shared by value objects,
// commands and queries.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as created through its constructor.
// The zero value is "not constructed", so embedding it lets a type detect
// literal initialisation such as DriverDetails{}.
//
// Example:
//
//	type Note struct {
//	    text  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewNote(text string) Note {
//	    return Note{text: text, guard: guard.NewConstructorGuard()}
//	}
//
//	func (n Note) Validate() error {
//	    return n.guard.Validate(ErrNoteIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
