package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// ForbiddenError represents a denied action.
type ForbiddenError struct {
	Reason string
}

func (e ForbiddenError) Error() string {
	if e.Reason == "" {
		return "forbidden"
	}
	return e.Reason
}

func (e ForbiddenError) Is(target error) bool {
	_, ok := target.(ForbiddenError)
	if ok {
		return true
	}
	_, ok = target.(*ForbiddenError)
	return ok
}

// ErrForbidden is the sentinel error for authorization failures.
var ErrForbidden = ForbiddenError{}

// ValidationError carries a human-readable precondition failure. Each failed
// precondition produces its own message, never a generic bad-request.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	if e.Reason == "" {
		return "validation failed"
	}
	return e.Reason
}

func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrValidation is the sentinel error for precondition violations.
var ErrValidation = ValidationError{}

// ConflictError reports a uniqueness violation raced at the database. The
// repository boundary translates duplicate-key errors into this instead of
// letting them surface as a 500.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "already exists"
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ErrConflict is the sentinel error for integrity conflicts.
var ErrConflict = ConflictError{}

// NoDirectionsError is its own type so callers can branch on it without
// catching every other denial; the embedded ForbiddenError keeps it matching
// ErrForbidden.
type NoDirectionsError struct {
	ForbiddenError
}

// ErrNoDirectionsAssigned is raised by the resolver when a master has no
// affiliations to seed a default selection scope from.
var ErrNoDirectionsAssigned = NoDirectionsError{ForbiddenError{Reason: "no directions assigned to this reviewer"}}

// NoRoleError marks a member that has neither a role record nor an owned
// application. Callers treat it as unauthenticated, never as a crash.
type NoRoleError struct {
	ForbiddenError
}

var ErrNoRole = NoRoleError{ForbiddenError{Reason: "member has no role"}}
