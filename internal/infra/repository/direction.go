package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type DirectionRepository struct {
	db *gorm.DB
}

func NewDirectionRepository(db *gorm.DB) *DirectionRepository {
	return &DirectionRepository{db: db}
}

func (r *DirectionRepository) All(ctx context.Context) ([]domain.Direction, error) {
	var rows []models.Direction
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Direction, 0, len(rows))
	for _, row := range rows {
		out = append(out, directionToDomain(row))
	}
	return out, nil
}

func (r *DirectionRepository) Get(ctx context.Context, id uint) (domain.Direction, error) {
	var row models.Direction
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Direction{}, domain.NotFoundError{Resource: "direction"}
		}
		return domain.Direction{}, err
	}
	return directionToDomain(row), nil
}

func (r *DirectionRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Direction, error) {
	if len(ids) == 0 {
		return []domain.Direction{}, nil
	}
	var rows []models.Direction
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Direction, 0, len(rows))
	for _, row := range rows {
		out = append(out, directionToDomain(row))
	}
	return out, nil
}

func (r *DirectionRepository) Create(ctx context.Context, d domain.Direction) (domain.Direction, error) {
	row := models.Direction{
		Name:        d.Name,
		Description: d.Description,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Direction{}, domain.ConflictError{Resource: "direction"}
		}
		return domain.Direction{}, err
	}
	return directionToDomain(row), nil
}

func directionToDomain(row models.Direction) domain.Direction {
	return domain.Direction{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
	}
}

type AffiliationRepository struct {
	db *gorm.DB
}

func NewAffiliationRepository(db *gorm.DB) *AffiliationRepository {
	return &AffiliationRepository{db: db}
}

func (r *AffiliationRepository) Get(ctx context.Context, id uint) (domain.Affiliation, error) {
	var row models.Affiliation
	err := r.db.WithContext(ctx).Preload("Direction").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Affiliation{}, domain.NotFoundError{Resource: "affiliation"}
		}
		return domain.Affiliation{}, err
	}
	return affiliationToDomain(row), nil
}

func (r *AffiliationRepository) ListByDirectionIDs(ctx context.Context, directionIDs []uint) ([]domain.Affiliation, error) {
	if len(directionIDs) == 0 {
		return []domain.Affiliation{}, nil
	}
	var rows []models.Affiliation
	err := r.db.WithContext(ctx).
		Preload("Direction").
		Where("direction_id IN ?", directionIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Affiliation, 0, len(rows))
	for _, row := range rows {
		out = append(out, affiliationToDomain(row))
	}
	return out, nil
}
