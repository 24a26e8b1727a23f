package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// FileUsecase manages member-owned file metadata. Slaves see their own files
// plus templates uploaded by masters; masters see everything they uploaded
// plus all templates.
type FileUsecase struct {
	files        FileRepository
	applications ApplicationRepository
}

func NewFileUsecase(files FileRepository, applications ApplicationRepository) *FileUsecase {
	return &FileUsecase{files: files, applications: applications}
}

// ListByApplication returns the candidate's uploaded files for a reviewer
// assembling the paper trail.
func (uc *FileUsecase) ListByApplication(ctx context.Context, actor domain.RoleContext, applicationID uint) ([]domain.File, error) {
	app, err := uc.applications.Get(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := authorize(policy.ActionApplicationDownload, actor, nil); err != nil {
		return nil, err
	}
	return uc.files.ListByOwner(ctx, app.MemberID)
}

func (uc *FileUsecase) List(ctx context.Context, actor domain.RoleContext) ([]domain.File, error) {
	if err := authorize(policy.ActionFileManage, actor, nil); err != nil {
		return nil, err
	}
	return uc.files.ListVisible(ctx, actor.MemberID)
}

func (uc *FileUsecase) Get(ctx context.Context, actor domain.RoleContext, id uint) (domain.File, error) {
	f, err := uc.files.Get(ctx, id)
	if err != nil {
		return domain.File{}, err
	}
	if err := authorize(policy.ActionFileManage, actor, nil); err != nil {
		return domain.File{}, err
	}
	if f.MemberID != actor.MemberID && !f.IsTemplate && !actor.IsMaster() && !actor.IsAdmin {
		return domain.File{}, domain.ErrForbidden
	}
	return f, nil
}

// Create registers uploaded metadata. Only masters may mark a file as a
// template.
func (uc *FileUsecase) Create(ctx context.Context, actor domain.RoleContext, f domain.File) (domain.File, error) {
	if err := authorize(policy.ActionFileManage, actor, nil); err != nil {
		return domain.File{}, err
	}
	if f.FileName == "" {
		return domain.File{}, domain.ValidationError{Reason: "file name is required"}
	}
	f.MemberID = actor.MemberID
	if f.IsTemplate && !actor.IsMaster() && !actor.IsAdmin {
		f.IsTemplate = false
	}
	return uc.files.Create(ctx, f)
}

// Delete removes file metadata. Owners delete their own files; templates are
// shared, so any master may retire one.
func (uc *FileUsecase) Delete(ctx context.Context, actor domain.RoleContext, id uint) error {
	f, err := uc.files.Get(ctx, id)
	if err != nil {
		return err
	}
	if f.MemberID != actor.MemberID && !actor.IsAdmin && !(f.IsTemplate && actor.IsMaster()) {
		return domain.ErrForbidden
	}
	return uc.files.Delete(ctx, f.ID)
}
