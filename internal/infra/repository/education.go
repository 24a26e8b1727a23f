package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type EducationRepository struct {
	db *gorm.DB
}

func NewEducationRepository(db *gorm.DB) *EducationRepository {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) Get(ctx context.Context, id uint) (domain.Education, error) {
	var row models.Education
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Education{}, domain.NotFoundError{Resource: "education"}
		}
		return domain.Education{}, err
	}
	return educationToDomain(row), nil
}

func (r *EducationRepository) ListByApplication(ctx context.Context, applicationID uint) ([]domain.Education, error) {
	var rows []models.Education
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("end_year, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Education, 0, len(rows))
	for _, row := range rows {
		out = append(out, educationToDomain(row))
	}
	return out, nil
}

func (r *EducationRepository) ListByApplications(ctx context.Context, applicationIDs []uint) (map[uint][]domain.Education, error) {
	if len(applicationIDs) == 0 {
		return map[uint][]domain.Education{}, nil
	}
	var rows []models.Education
	err := r.db.WithContext(ctx).
		Where("application_id IN ?", applicationIDs).
		Order("end_year, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[uint][]domain.Education{}
	for _, row := range rows {
		out[row.ApplicationID] = append(out[row.ApplicationID], educationToDomain(row))
	}
	return out, nil
}

func (r *EducationRepository) Create(ctx context.Context, edu domain.Education) (domain.Education, error) {
	row := educationToModel(edu)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.Education{}, err
	}
	return educationToDomain(row), nil
}

func (r *EducationRepository) Update(ctx context.Context, edu domain.Education) error {
	row := educationToModel(edu)
	result := r.db.WithContext(ctx).Model(&models.Education{}).
		Where("id = ?", edu.ID).
		Select("*").
		Omit("id", "application_id").
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "education"}
	}
	return nil
}

func (r *EducationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Education{}, "id = ?", id).Error
}

func educationToModel(edu domain.Education) models.Education {
	return models.Education{
		ID:             edu.ID,
		ApplicationID:  edu.ApplicationID,
		EducationType:  edu.EducationType,
		University:     edu.University,
		Specialization: edu.Specialization,
		AvgScore:       edu.AvgScore,
		EndYear:        edu.EndYear,
		IsEnded:        edu.IsEnded,
		ThemeOfDiploma: edu.ThemeOfDiploma,
	}
}

func educationToDomain(row models.Education) domain.Education {
	return domain.Education{
		ID:             row.ID,
		ApplicationID:  row.ApplicationID,
		EducationType:  row.EducationType,
		University:     row.University,
		Specialization: row.Specialization,
		AvgScore:       row.AvgScore,
		EndYear:        row.EndYear,
		IsEnded:        row.IsEnded,
		ThemeOfDiploma: row.ThemeOfDiploma,
	}
}
