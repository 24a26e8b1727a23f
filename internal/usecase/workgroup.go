package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// WorkGroupUsecase manages work groups inside the master's affiliations. A
// master only ever sees and edits groups of affiliations they administer.
type WorkGroupUsecase struct {
	workGroups   WorkGroupRepository
	affiliations AffiliationRepository
}

func NewWorkGroupUsecase(workGroups WorkGroupRepository, affiliations AffiliationRepository) *WorkGroupUsecase {
	return &WorkGroupUsecase{workGroups: workGroups, affiliations: affiliations}
}

func (uc *WorkGroupUsecase) List(ctx context.Context, actor domain.RoleContext) ([]domain.WorkGroup, error) {
	if err := authorize(policy.ActionWorkGroupManage, actor, nil); err != nil {
		return nil, err
	}
	return uc.workGroups.ListByAffiliations(ctx, actor.AffiliationIDs)
}

func (uc *WorkGroupUsecase) Get(ctx context.Context, actor domain.RoleContext, id uint) (domain.WorkGroup, error) {
	if err := authorize(policy.ActionWorkGroupManage, actor, nil); err != nil {
		return domain.WorkGroup{}, err
	}
	wg, err := uc.workGroups.Get(ctx, id)
	if err != nil {
		return domain.WorkGroup{}, err
	}
	if !actor.HasAffiliation(wg.AffiliationID) && !actor.IsAdmin {
		return domain.WorkGroup{}, domain.NotFoundError{Resource: "work group"}
	}
	return wg, nil
}

func (uc *WorkGroupUsecase) Create(ctx context.Context, actor domain.RoleContext, wg domain.WorkGroup) (domain.WorkGroup, error) {
	if err := authorize(policy.ActionWorkGroupManage, actor, nil); err != nil {
		return domain.WorkGroup{}, err
	}
	if wg.Name == "" {
		return domain.WorkGroup{}, domain.ValidationError{Reason: "work group name is required"}
	}
	if _, err := uc.affiliations.Get(ctx, wg.AffiliationID); err != nil {
		return domain.WorkGroup{}, err
	}
	if !actor.HasAffiliation(wg.AffiliationID) && !actor.IsAdmin {
		return domain.WorkGroup{}, domain.ValidationError{Reason: "you do not administer this affiliation"}
	}
	return uc.workGroups.Create(ctx, wg)
}

func (uc *WorkGroupUsecase) Update(ctx context.Context, actor domain.RoleContext, id uint, name, description string) (domain.WorkGroup, error) {
	wg, err := uc.Get(ctx, actor, id)
	if err != nil {
		return domain.WorkGroup{}, err
	}
	if name == "" {
		return domain.WorkGroup{}, domain.ValidationError{Reason: "work group name is required"}
	}
	wg.Name = name
	wg.Description = description
	if err := uc.workGroups.Update(ctx, wg); err != nil {
		return domain.WorkGroup{}, err
	}
	return wg, nil
}

// Delete removes the group. Members stay booked; their group reference is
// cleared by the storage-level constraint.
func (uc *WorkGroupUsecase) Delete(ctx context.Context, actor domain.RoleContext, id uint) error {
	wg, err := uc.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.workGroups.Delete(ctx, wg.ID)
}
