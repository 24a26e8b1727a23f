package policy

import "github.com/scirota/selection-api/internal/domain"

// Action identifies one authorizable operation class.
type Action string

const (
	ActionApplicationList     Action = "application.list"
	ActionApplicationRetrieve Action = "application.retrieve"
	ActionApplicationCreate   Action = "application.create"
	ActionApplicationUpdate   Action = "application.update"
	ActionApplicationDestroy  Action = "application.destroy"
	ActionApplicationDownload Action = "application.download"
	ActionSetFinal            Action = "application.set_final"
	ActionGetDirections       Action = "application.get_directions"
	ActionSetDirections       Action = "application.set_directions"
	ActionGetWorkGroup        Action = "application.get_work_group"
	ActionSetWorkGroup        Action = "application.set_work_group"
	ActionGetCompetencies     Action = "application.get_competencies"
	ActionSetCompetencies     Action = "application.set_competencies"
	ActionMarkViewed          Action = "application.mark_viewed"

	ActionEducationList  Action = "education.list"
	ActionEducationWrite Action = "education.write"

	ActionBookingList   Action = "booking.list"
	ActionBookingCreate Action = "booking.create"
	ActionBookingDelete Action = "booking.delete"

	ActionWishlistList   Action = "wishlist.list"
	ActionWishlistCreate Action = "wishlist.create"
	ActionWishlistDelete Action = "wishlist.delete"

	ActionNoteList  Action = "note.list"
	ActionNoteWrite Action = "note.write"

	ActionWorkGroupManage  Action = "work_group.manage"
	ActionCompetenceCreate Action = "competence.create"
	ActionDirectionCreate  Action = "direction.create"
	ActionDirectionAssign  Action = "direction.assign_competences"
	ActionFileManage       Action = "file.manage"
	ActionRealtime         Action = "realtime"
)

// Rules is the single source of truth for authorization: one boolean
// expression per action. Keep this table as plain data so it stays
// independently testable against synthetic (actor, object) pairs.
var Rules = map[Action]Predicate{
	ActionApplicationList:     IsMaster,
	ActionApplicationRetrieve: Or(IsMaster, IsOwner),
	ActionApplicationCreate:   IsSlave,
	ActionApplicationUpdate: Or(
		And(Or(IsOwner, IsMaster), IsNotFinal),
		IsBookedOnMasterDirection,
	),
	ActionApplicationDestroy:  IsAdmin,
	ActionApplicationDownload: IsMaster,
	ActionSetFinal:            IsBookedOnMasterDirection,
	ActionGetDirections:       Or(IsOwner, IsMaster),
	ActionSetDirections:       And(IsNotFinal, IsOwner),
	ActionGetWorkGroup:        IsBookedOnMasterDirection,
	ActionSetWorkGroup:        IsBookedOnMasterDirection,
	ActionGetCompetencies:     Or(IsMaster, IsOwner),
	ActionSetCompetencies:     And(IsNotFinal, IsOwner),
	ActionMarkViewed:          IsMaster,

	ActionEducationList:  Or(IsMaster, IsOwner),
	ActionEducationWrite: Or(And(IsOwner, IsNotFinal), IsBookedOnMasterDirection),

	ActionBookingList:   Or(IsMaster, IsOwner),
	ActionBookingCreate: IsMaster,
	ActionBookingDelete: Or(IsBookedByCurrentMaster, IsAdmin),

	ActionWishlistList:   IsMaster,
	ActionWishlistCreate: IsMaster,
	ActionWishlistDelete: IsMaster,

	ActionNoteList:  IsMaster,
	ActionNoteWrite: IsMaster,

	ActionWorkGroupManage:  IsMaster,
	ActionCompetenceCreate: IsMaster,
	ActionDirectionCreate:  IsAdmin,
	ActionDirectionAssign:  IsMaster,
	ActionFileManage:       Or(IsMaster, IsSlave),
	ActionRealtime:         IsMaster,
}

// Allows evaluates the rule for action. Unknown actions deny. Pass a nil obj
// for the method phase and the loaded snapshot for the object phase.
func Allows(action Action, actor domain.RoleContext, obj *Object) bool {
	rule, ok := Rules[action]
	if !ok {
		return false
	}
	return rule(actor, obj)
}
