package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// NoteUsecase manages master annotations on applications. Visibility is
// affiliation-scoped: a note is readable by masters sharing at least one of
// its tagged affiliations, and only its author edits or deletes it.
type NoteUsecase struct {
	applications ApplicationRepository
	notes        NoteRepository
}

func NewNoteUsecase(applications ApplicationRepository, notes NoteRepository) *NoteUsecase {
	return &NoteUsecase{applications: applications, notes: notes}
}

func (uc *NoteUsecase) List(ctx context.Context, actor domain.RoleContext, applicationID uint) ([]domain.ApplicationNote, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.ActionNoteList, actor, nil); err != nil {
		return nil, err
	}
	return uc.notes.ListVisible(ctx, app.ID, actor.AffiliationIDs)
}

// Create tags the note with all of the author's affiliations so direct
// colleagues see it.
func (uc *NoteUsecase) Create(ctx context.Context, actor domain.RoleContext, applicationID uint, text string) (domain.ApplicationNote, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	if err := authorize(policy.ActionNoteWrite, actor, nil); err != nil {
		return domain.ApplicationNote{}, err
	}
	if text == "" {
		return domain.ApplicationNote{}, domain.ValidationError{Reason: "note text is required"}
	}
	return uc.notes.Create(ctx, domain.ApplicationNote{
		ApplicationID:  app.ID,
		AuthorID:       actor.MemberID,
		Text:           text,
		AffiliationIDs: actor.AffiliationIDs,
	})
}

func (uc *NoteUsecase) Update(ctx context.Context, actor domain.RoleContext, applicationID, noteID uint, text string) (domain.ApplicationNote, error) {
	note, err := uc.visibleNote(ctx, actor, applicationID, noteID)
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	if note.AuthorID != actor.MemberID {
		return domain.ApplicationNote{}, domain.ErrForbidden
	}
	if text == "" {
		return domain.ApplicationNote{}, domain.ValidationError{Reason: "note text is required"}
	}
	note.Text = text
	if err := uc.notes.Update(ctx, note); err != nil {
		return domain.ApplicationNote{}, err
	}
	return note, nil
}

func (uc *NoteUsecase) Delete(ctx context.Context, actor domain.RoleContext, applicationID, noteID uint) error {
	note, err := uc.visibleNote(ctx, actor, applicationID, noteID)
	if err != nil {
		return err
	}
	if note.AuthorID != actor.MemberID && !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return uc.notes.Delete(ctx, note.ID)
}

// visibleNote loads a note for write access: it must belong to the
// application and share an affiliation with the actor, otherwise it does not
// exist as far as the actor can tell.
func (uc *NoteUsecase) visibleNote(ctx context.Context, actor domain.RoleContext, applicationID, noteID uint) (domain.ApplicationNote, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	if err := authorize(policy.ActionNoteWrite, actor, nil); err != nil {
		return domain.ApplicationNote{}, err
	}
	note, err := uc.notes.Get(ctx, noteID)
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	if note.ApplicationID != app.ID {
		return domain.ApplicationNote{}, domain.NotFoundError{Resource: "note"}
	}
	visible := actor.IsAdmin
	for _, id := range note.AffiliationIDs {
		if actor.HasAffiliation(id) {
			visible = true
			break
		}
	}
	if !visible {
		return domain.ApplicationNote{}, domain.NotFoundError{Resource: "note"}
	}
	return note, nil
}
