// Package policy composes atomic permission predicates into per-action rules.
// Evaluation is two-phase: an action is first checked with a nil object
// (method phase), then again once the target is loaded (object phase).
// Object-scoped predicates pass the method phase and only decide once an
// object is present.
package policy

import "github.com/scirota/selection-api/internal/domain"

// Object is a snapshot of the authorization-relevant state of the target
// application (or booking). Building it is the caller's concern; predicates
// stay pure.
type Object struct {
	// OwnerID is the member owning the target application.
	OwnerID uint
	// IsFinal mirrors the application lock flag.
	IsFinal bool
	// BookedAffiliationID is the affiliation of the slave's booked-type
	// booking, nil when the slave is unbooked.
	BookedAffiliationID *uint
	// BookingMasterID is the master holding that booking, nil when unbooked.
	BookingMasterID *uint
}

// Predicate is a pure check over (actor, target). A nil obj means the method
// phase; object-scoped predicates must return true there.
type Predicate func(actor domain.RoleContext, obj *Object) bool

// And evaluates predicates left to right and short-circuits on the first
// false.
func And(ps ...Predicate) Predicate {
	return func(actor domain.RoleContext, obj *Object) bool {
		for _, p := range ps {
			if !p(actor, obj) {
				return false
			}
		}
		return true
	}
}

// Or evaluates predicates left to right and short-circuits on the first true.
func Or(ps ...Predicate) Predicate {
	return func(actor domain.RoleContext, obj *Object) bool {
		for _, p := range ps {
			if p(actor, obj) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(actor domain.RoleContext, obj *Object) bool {
		return !p(actor, obj)
	}
}
