package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Get(ctx context.Context, id uint) (domain.ApplicationNote, error) {
	var row models.ApplicationNote
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ApplicationNote{}, domain.NotFoundError{Resource: "note"}
		}
		return domain.ApplicationNote{}, err
	}
	return r.withAffiliations(ctx, row)
}

func (r *NoteRepository) ListVisible(ctx context.Context, applicationID uint, affiliationIDs []uint) ([]domain.ApplicationNote, error) {
	if len(affiliationIDs) == 0 {
		return []domain.ApplicationNote{}, nil
	}
	var rows []models.ApplicationNote
	err := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Where(
			"id IN (?)",
			r.db.Model(&models.NoteAffiliation{}).
				Select("note_id").
				Where("affiliation_id IN ?", affiliationIDs),
		).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ApplicationNote, 0, len(rows))
	for _, row := range rows {
		note, err := r.withAffiliations(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, nil
}

func (r *NoteRepository) Create(ctx context.Context, note domain.ApplicationNote) (domain.ApplicationNote, error) {
	row := models.ApplicationNote{
		ApplicationID: note.ApplicationID,
		AuthorID:      note.AuthorID,
		Text:          note.Text,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		for _, affiliationID := range note.AffiliationIDs {
			link := models.NoteAffiliation{NoteID: row.ID, AffiliationID: affiliationID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	return r.withAffiliations(ctx, row)
}

func (r *NoteRepository) Update(ctx context.Context, note domain.ApplicationNote) error {
	return r.db.WithContext(ctx).Model(&models.ApplicationNote{}).
		Where("id = ?", note.ID).
		Update("text", note.Text).Error
}

func (r *NoteRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.NoteAffiliation{}, "note_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ApplicationNote{}, "id = ?", id).Error
	})
}

func (r *NoteRepository) withAffiliations(ctx context.Context, row models.ApplicationNote) (domain.ApplicationNote, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.NoteAffiliation{}).
		Where("note_id = ?", row.ID).
		Order("affiliation_id").
		Pluck("affiliation_id", &ids).Error
	if err != nil {
		return domain.ApplicationNote{}, err
	}
	return domain.ApplicationNote{
		ID:             row.ID,
		ApplicationID:  row.ApplicationID,
		AuthorID:       row.AuthorID,
		Text:           row.Text,
		AffiliationIDs: ids,
		CreateDate:     row.CreateDate,
	}, nil
}
