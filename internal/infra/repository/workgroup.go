package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type WorkGroupRepository struct {
	db *gorm.DB
}

func NewWorkGroupRepository(db *gorm.DB) *WorkGroupRepository {
	return &WorkGroupRepository{db: db}
}

func (r *WorkGroupRepository) Get(ctx context.Context, id uint) (domain.WorkGroup, error) {
	var row models.WorkGroup
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.WorkGroup{}, domain.NotFoundError{Resource: "work group"}
		}
		return domain.WorkGroup{}, err
	}
	return workGroupToDomain(row), nil
}

func (r *WorkGroupRepository) ListByAffiliations(ctx context.Context, affiliationIDs []uint) ([]domain.WorkGroup, error) {
	if len(affiliationIDs) == 0 {
		return []domain.WorkGroup{}, nil
	}
	var rows []models.WorkGroup
	err := r.db.WithContext(ctx).
		Where("affiliation_id IN ?", affiliationIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.WorkGroup, 0, len(rows))
	for _, row := range rows {
		out = append(out, workGroupToDomain(row))
	}
	return out, nil
}

func (r *WorkGroupRepository) Create(ctx context.Context, wg domain.WorkGroup) (domain.WorkGroup, error) {
	row := models.WorkGroup{
		Name:          wg.Name,
		Description:   wg.Description,
		AffiliationID: wg.AffiliationID,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.WorkGroup{}, err
	}
	return workGroupToDomain(row), nil
}

func (r *WorkGroupRepository) Update(ctx context.Context, wg domain.WorkGroup) error {
	return r.db.WithContext(ctx).Model(&models.WorkGroup{}).
		Where("id = ?", wg.ID).
		Updates(map[string]any{"name": wg.Name, "description": wg.Description}).Error
}

// Delete detaches member applications in the same transaction.
func (r *WorkGroupRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Application{}).
			Where("work_group_id = ?", id).
			Update("work_group_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.WorkGroup{}, "id = ?", id).Error
	})
}

func workGroupToDomain(row models.WorkGroup) domain.WorkGroup {
	return domain.WorkGroup{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		AffiliationID: row.AffiliationID,
	}
}
