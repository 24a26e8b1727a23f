package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

const competenceArenaKey = "competence:all"

// CompetenceRepository reads the competence forest. The full flat list is the
// input of every tree projection, so it sits behind a process-local cache;
// writes flush it.
type CompetenceRepository struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func NewCompetenceRepository(db *gorm.DB) *CompetenceRepository {
	return &CompetenceRepository{
		db:    db,
		cache: gocache.New(10*time.Minute, 15*time.Minute),
	}
}

func (r *CompetenceRepository) All(ctx context.Context) ([]domain.Competence, error) {
	if cached, found := r.cache.Get(competenceArenaKey); found {
		return cached.([]domain.Competence), nil
	}

	var rows []models.Competence
	err := r.db.WithContext(ctx).Order("id").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	var links []models.DirectionCompetence
	err = r.db.WithContext(ctx).Order("competence_id, direction_id").Find(&links).Error
	if err != nil {
		return nil, err
	}
	directionsByCompetence := map[uint][]uint{}
	for _, link := range links {
		directionsByCompetence[link.CompetenceID] = append(directionsByCompetence[link.CompetenceID], link.DirectionID)
	}

	out := make([]domain.Competence, 0, len(rows))
	for _, row := range rows {
		c := competenceToDomain(row)
		c.DirectionIDs = directionsByCompetence[row.ID]
		out = append(out, c)
	}

	r.cache.Set(competenceArenaKey, out, gocache.DefaultExpiration)
	return out, nil
}

func (r *CompetenceRepository) Get(ctx context.Context, id uint) (domain.Competence, error) {
	var row models.Competence
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Competence{}, domain.NotFoundError{Resource: "competence"}
		}
		return domain.Competence{}, err
	}
	return competenceToDomain(row), nil
}

func (r *CompetenceRepository) Create(ctx context.Context, c domain.Competence) (domain.Competence, error) {
	row := models.Competence{
		Name:        c.Name,
		ParentID:    c.ParentID,
		IsEstimated: c.IsEstimated,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		return domain.Competence{}, err
	}
	r.cache.Delete(competenceArenaKey)
	return competenceToDomain(row), nil
}

func (r *CompetenceRepository) ByDirection(ctx context.Context, directionID uint, picked bool) ([]domain.Competence, error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	assigned, err := r.DirectionCompetenceIDs(ctx, directionID)
	if err != nil {
		return nil, err
	}
	member := make(map[uint]bool, len(assigned))
	for _, id := range assigned {
		member[id] = true
	}
	out := []domain.Competence{}
	for _, c := range all {
		if member[c.ID] == picked {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *CompetenceRepository) DirectionCompetenceIDs(ctx context.Context, directionID uint) ([]uint, error) {
	key := fmt.Sprintf("competence:direction:%d", directionID)
	if cached, found := r.cache.Get(key); found {
		return cached.([]uint), nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.DirectionCompetence{}).
		Where("direction_id = ?", directionID).
		Order("competence_id").
		Pluck("competence_id", &ids).Error
	if err != nil {
		return nil, err
	}
	r.cache.Set(key, ids, gocache.DefaultExpiration)
	return ids, nil
}

// ResolveIDs returns the subset of ids that exist, silently dropping unknown
// ones.
func (r *CompetenceRepository) ResolveIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return []uint{}, nil
	}
	var out []uint
	err := r.db.WithContext(ctx).Model(&models.Competence{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &out).Error
	return out, err
}

func (r *CompetenceRepository) UpdateDirectionSet(ctx context.Context, directionID uint, add, remove []uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(remove) > 0 {
			err := tx.Delete(&models.DirectionCompetence{},
				"direction_id = ? AND competence_id IN ?", directionID, remove).Error
			if err != nil {
				return err
			}
		}
		for _, id := range add {
			link := models.DirectionCompetence{DirectionID: directionID, CompetenceID: id}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.cache.Delete(competenceArenaKey)
	r.cache.Delete(fmt.Sprintf("competence:direction:%d", directionID))
	return nil
}

func competenceToDomain(row models.Competence) domain.Competence {
	return domain.Competence{
		ID:          row.ID,
		Name:        row.Name,
		ParentID:    row.ParentID,
		IsEstimated: row.IsEstimated,
	}
}
