package usecase

import (
	"context"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/policy"
)

// DirectionUsecase lists the research directions. The catalogue is readable
// by anyone who passed authentication.
type DirectionUsecase struct {
	directions DirectionRepository
}

func NewDirectionUsecase(directions DirectionRepository) *DirectionUsecase {
	return &DirectionUsecase{directions: directions}
}

func (uc *DirectionUsecase) All(ctx context.Context) ([]domain.Direction, error) {
	return uc.directions.All(ctx)
}

func (uc *DirectionUsecase) Get(ctx context.Context, id uint) (domain.Direction, error) {
	return uc.directions.Get(ctx, id)
}

func (uc *DirectionUsecase) Create(ctx context.Context, actor domain.RoleContext, d domain.Direction) (domain.Direction, error) {
	if err := authorize(policy.ActionDirectionCreate, actor, nil); err != nil {
		return domain.Direction{}, err
	}
	if d.Name == "" {
		return domain.Direction{}, domain.ValidationError{Reason: "direction name must not be empty"}
	}
	return uc.directions.Create(ctx, d)
}
