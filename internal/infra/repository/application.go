package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, app domain.Application) (domain.Application, error) {
	row := applicationToModel(app)
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Application{}, domain.ConflictError{Resource: "application"}
		}
		return domain.Application{}, err
	}
	return applicationToDomain(row), nil
}

func (r *ApplicationRepository) Get(ctx context.Context, id uint) (domain.Application, error) {
	var row models.Application
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Application{}, domain.NotFoundError{Resource: "application"}
		}
		return domain.Application{}, err
	}
	return applicationToDomain(row), nil
}

func (r *ApplicationRepository) GetByMember(ctx context.Context, memberID uint) (domain.Application, error) {
	var row models.Application
	err := r.db.WithContext(ctx).Where("member_id = ?", memberID).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Application{}, domain.NotFoundError{Resource: "application"}
		}
		return domain.Application{}, err
	}
	return applicationToDomain(row), nil
}

func (r *ApplicationRepository) Update(ctx context.Context, app domain.Application) error {
	row := applicationToModel(app)
	result := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", app.ID).
		Select("*").
		Omit("id", "member_id", "is_final", "work_group_id", "fullness", "final_score", "create_date").
		Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "application"}
	}
	return nil
}

func (r *ApplicationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error
}

func (r *ApplicationRepository) List(ctx context.Context, filter domain.ApplicationFilter) ([]domain.Application, error) {
	query := r.db.WithContext(ctx).Model(&models.Application{})

	if len(filter.DirectionIDs) > 0 {
		query = query.Where(
			"id IN (?)",
			r.db.Model(&models.ApplicationDirection{}).
				Select("application_id").
				Where("direction_id IN ?", filter.DirectionIDs),
		)
	}
	if len(filter.DraftYears) > 0 {
		query = query.Where("draft_year IN ?", filter.DraftYears)
	}
	if len(filter.DraftSeasons) > 0 {
		query = query.Where("draft_season IN ?", filter.DraftSeasons)
	}
	if len(filter.BookingAffiliationIDs) > 0 {
		query = query.Where(
			"member_id IN (?)",
			r.db.Model(&models.Booking{}).
				Select("slave_id").
				Where("booking_type = ? AND affiliation_id IN ?", domain.BookingBooked, filter.BookingAffiliationIDs),
		)
	}
	if len(filter.WishlistAffiliationIDs) > 0 {
		query = query.Where(
			"member_id IN (?)",
			r.db.Model(&models.Booking{}).
				Select("slave_id").
				Where("booking_type = ? AND affiliation_id IN ?", domain.BookingInWishlist, filter.WishlistAffiliationIDs),
		)
	}

	offset := 0
	if filter.Page > 1 {
		offset = (filter.Page - 1) * filter.PageSize
	}

	if len(filter.PreferDirectionIDs) > 0 {
		query = query.Order(clause.Expr{
			SQL: "CASE WHEN applications.id IN (?) THEN 0 ELSE 1 END",
			Vars: []interface{}{
				r.db.Model(&models.ApplicationDirection{}).
					Select("application_id").
					Where("direction_id IN ?", filter.PreferDirectionIDs),
			},
		})
	}

	var rows []models.Application
	err := query.
		Order("final_score DESC, id").
		Offset(offset).
		Limit(filter.PageSize).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Application, 0, len(rows))
	for _, row := range rows {
		out = append(out, applicationToDomain(row))
	}
	return out, nil
}

func (r *ApplicationRepository) SaveScores(ctx context.Context, id uint, fullness int, finalScore float64) error {
	return r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{"fullness": fullness, "final_score": finalScore}).Error
}

func (r *ApplicationRepository) SetFinal(ctx context.Context, id uint, isFinal bool) error {
	return r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("is_final", isFinal).Error
}

func (r *ApplicationRepository) SetWorkGroup(ctx context.Context, id uint, workGroupID *uint) error {
	return r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("work_group_id", workGroupID).Error
}

func (r *ApplicationRepository) DirectionIDs(ctx context.Context, id uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ApplicationDirection{}).
		Where("application_id = ?", id).
		Order("direction_id").
		Pluck("direction_id", &ids).Error
	return ids, err
}

func (r *ApplicationRepository) SetDirections(ctx context.Context, id uint, directionIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ApplicationDirection{}, "application_id = ?", id).Error; err != nil {
			return err
		}
		for _, did := range directionIDs {
			link := models.ApplicationDirection{ApplicationID: id, DirectionID: did}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ApplicationRepository) DirectionsByApplications(ctx context.Context, ids []uint) (map[uint][]domain.Direction, error) {
	if len(ids) == 0 {
		return map[uint][]domain.Direction{}, nil
	}
	var links []models.ApplicationDirection
	err := r.db.WithContext(ctx).
		Preload("Direction").
		Where("application_id IN ?", ids).
		Order("direction_id").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	out := map[uint][]domain.Direction{}
	for _, link := range links {
		out[link.ApplicationID] = append(out[link.ApplicationID], directionToDomain(link.Direction))
	}
	return out, nil
}

func (r *ApplicationRepository) Assessments(ctx context.Context, id uint) ([]domain.CompetencyAssessment, error) {
	var rows []models.ApplicationCompetency
	err := r.db.WithContext(ctx).
		Where("application_id = ?", id).
		Order("competence_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.CompetencyAssessment, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.CompetencyAssessment{
			ApplicationID: row.ApplicationID,
			CompetenceID:  row.CompetenceID,
			Level:         row.Level,
		})
	}
	return out, nil
}

func (r *ApplicationRepository) UpsertAssessments(ctx context.Context, id uint, assessments []domain.CompetencyAssessment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range assessments {
			row := models.ApplicationCompetency{
				ApplicationID: id,
				CompetenceID:  a.CompetenceID,
				Level:         a.Level,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "application_id"}, {Name: "competence_id"}},
				DoUpdates: clause.Assignments(map[string]any{"level": a.Level}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ApplicationRepository) MarkViewed(ctx context.Context, memberID, applicationID uint) error {
	row := models.ViewedApplication{MemberID: memberID, ApplicationID: applicationID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
}

func (r *ApplicationRepository) ViewedSet(ctx context.Context, memberID uint, applicationIDs []uint) (map[uint]bool, error) {
	if len(applicationIDs) == 0 {
		return map[uint]bool{}, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.ViewedApplication{}).
		Where("member_id = ? AND application_id IN ?", memberID, applicationIDs).
		Pluck("application_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func applicationToModel(app domain.Application) models.Application {
	return models.Application{
		ID:                     app.ID,
		MemberID:               app.MemberID,
		BirthDay:               app.BirthDay,
		BirthPlace:             app.BirthPlace,
		Nationality:            app.Nationality,
		Commissariat:           app.Commissariat,
		HealthGroup:            app.HealthGroup,
		DraftYear:              app.DraftYear,
		DraftSeason:            app.DraftSeason,
		ScientificAchievements: app.ScientificAchievements,
		Scholarships:           app.Scholarships,
		CandidateExams:         app.CandidateExams,
		SportingAchievements:   app.SportingAchievements,
		Hobby:                  app.Hobby,
		OtherInformation:       app.OtherInformation,
		ReadyToSecret:          app.ReadyToSecret,
		Merits:                 app.Merits,
		Fullness:               app.Fullness,
		FinalScore:             app.FinalScore,
		IsFinal:                app.IsFinal,
		WorkGroupID:            app.WorkGroupID,
	}
}

func applicationToDomain(row models.Application) domain.Application {
	return domain.Application{
		ID:                     row.ID,
		MemberID:               row.MemberID,
		BirthDay:               row.BirthDay,
		BirthPlace:             row.BirthPlace,
		Nationality:            row.Nationality,
		Commissariat:           row.Commissariat,
		HealthGroup:            row.HealthGroup,
		DraftYear:              row.DraftYear,
		DraftSeason:            row.DraftSeason,
		ScientificAchievements: row.ScientificAchievements,
		Scholarships:           row.Scholarships,
		CandidateExams:         row.CandidateExams,
		SportingAchievements:   row.SportingAchievements,
		Hobby:                  row.Hobby,
		OtherInformation:       row.OtherInformation,
		ReadyToSecret:          row.ReadyToSecret,
		Merits:                 row.Merits,
		Fullness:               row.Fullness,
		FinalScore:             row.FinalScore,
		IsFinal:                row.IsFinal,
		WorkGroupID:            row.WorkGroupID,
		CreateDate:             row.CreateDate,
		UpdateDate:             row.UpdateDate,
	}
}
