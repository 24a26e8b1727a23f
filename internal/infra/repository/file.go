package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type FileRepository struct {
	db *gorm.DB
}

func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Get(ctx context.Context, id uint) (domain.File, error) {
	var row models.File
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.File{}, domain.NotFoundError{Resource: "file"}
		}
		return domain.File{}, err
	}
	return fileToDomain(row), nil
}

// ListVisible returns the member's own files plus every template.
func (r *FileRepository) ListVisible(ctx context.Context, memberID uint) ([]domain.File, error) {
	var rows []models.File
	err := r.db.WithContext(ctx).
		Where("member_id = ? OR is_template = ?", memberID, true).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return filesToDomain(rows), nil
}

func (r *FileRepository) ListByOwner(ctx context.Context, memberID uint) ([]domain.File, error) {
	var rows []models.File
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return filesToDomain(rows), nil
}

func (r *FileRepository) Create(ctx context.Context, f domain.File) (domain.File, error) {
	row := models.File{
		MemberID:   f.MemberID,
		FileName:   f.FileName,
		FilePath:   f.FilePath,
		IsTemplate: f.IsTemplate,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.File{}, err
	}
	return fileToDomain(row), nil
}

func (r *FileRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.File{}, "id = ?", id).Error
}

func fileToDomain(row models.File) domain.File {
	return domain.File{
		ID:         row.ID,
		MemberID:   row.MemberID,
		FileName:   row.FileName,
		FilePath:   row.FilePath,
		IsTemplate: row.IsTemplate,
		CreateDate: row.CreateDate,
	}
}

func filesToDomain(rows []models.File) []domain.File {
	out := make([]domain.File, 0, len(rows))
	for _, row := range rows {
		out = append(out, fileToDomain(row))
	}
	return out
}
