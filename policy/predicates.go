package policy

import "github.com/scirota/selection-api/internal/domain"

// IsMaster passes for the master role. Returns false rather than failing when
// the actor carries no role.
func IsMaster(actor domain.RoleContext, _ *Object) bool {
	return actor.IsMaster()
}

// IsSlave passes for the slave role.
func IsSlave(actor domain.RoleContext, _ *Object) bool {
	return actor.IsSlave()
}

// IsAdmin passes for platform-level superusers regardless of role.
func IsAdmin(actor domain.RoleContext, _ *Object) bool {
	return actor.IsAdmin
}

// IsOwner passes when the target application belongs to the actor.
func IsOwner(actor domain.RoleContext, obj *Object) bool {
	if obj == nil {
		return true
	}
	return obj.OwnerID == actor.MemberID
}

// IsNotFinal passes while the target application is editable.
func IsNotFinal(_ domain.RoleContext, obj *Object) bool {
	if obj == nil {
		return true
	}
	return !obj.IsFinal
}

// IsBookedOnMasterDirection passes when the target slave holds a booked-type
// booking on one of the actor's administered affiliations.
func IsBookedOnMasterDirection(actor domain.RoleContext, obj *Object) bool {
	if obj == nil {
		return true
	}
	if obj.BookedAffiliationID == nil {
		return false
	}
	return actor.IsMaster() && actor.HasAffiliation(*obj.BookedAffiliationID)
}

// IsBookedByCurrentMaster passes when the actor created the target booking.
func IsBookedByCurrentMaster(actor domain.RoleContext, obj *Object) bool {
	if obj == nil {
		return true
	}
	if obj.BookingMasterID == nil {
		return false
	}
	return *obj.BookingMasterID == actor.MemberID
}
