package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

const memberCacheTTL = 300 // seconds

// MemberRepository reads accounts, with a short memcached layer in front:
// every authenticated request resolves its member, so the row is the hottest
// read in the system.
type MemberRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewMemberRepository(db *gorm.DB, mc *memcache.Client) *MemberRepository {
	return &MemberRepository{db: db, mc: mc}
}

func memberCacheKey(id uint) string {
	return fmt.Sprintf("member:%d", id)
}

func (r *MemberRepository) Get(ctx context.Context, id uint) (domain.Member, error) {
	if r.mc != nil {
		if item, err := r.mc.Get(memberCacheKey(id)); err == nil {
			var member domain.Member
			if err := json.Unmarshal(item.Value, &member); err == nil {
				return member, nil
			}
		}
	}

	var row models.Member
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Member{}, domain.NotFoundError{Resource: "member"}
		}
		return domain.Member{}, err
	}

	member := memberToDomain(row)
	if r.mc != nil {
		if b, err := json.Marshal(member); err == nil {
			r.mc.Set(&memcache.Item{Key: memberCacheKey(id), Value: b, Expiration: memberCacheTTL})
		}
	}
	return member, nil
}

func (r *MemberRepository) GetByIDs(ctx context.Context, ids []uint) ([]domain.Member, error) {
	var rows []models.Member
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberToDomain(row))
	}
	return out, nil
}

func (r *MemberRepository) GetByLogin(ctx context.Context, login string) (domain.Member, string, error) {
	var row models.Member
	err := r.db.WithContext(ctx).Where("login = ?", login).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Member{}, "", domain.NotFoundError{Resource: "member"}
		}
		return domain.Member{}, "", err
	}
	return memberToDomain(row), row.PasswordHash, nil
}

func (r *MemberRepository) Affiliations(ctx context.Context, memberID uint) ([]domain.Affiliation, error) {
	var links []models.MemberAffiliation
	err := r.db.WithContext(ctx).
		Preload("Affiliation.Direction").
		Where("member_id = ?", memberID).
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Affiliation, 0, len(links))
	for _, link := range links {
		out = append(out, affiliationToDomain(link.Affiliation))
	}
	return out, nil
}

func memberToDomain(row models.Member) domain.Member {
	return domain.Member{
		ID:         row.ID,
		Login:      row.Login,
		FirstName:  row.FirstName,
		LastName:   row.LastName,
		FatherName: row.FatherName,
		Phone:      row.Phone,
		Role:       row.Role,
		IsAdmin:    row.IsAdmin,
	}
}

func affiliationToDomain(row models.Affiliation) domain.Affiliation {
	return domain.Affiliation{
		ID: row.ID,
		Direction: domain.Direction{
			ID:          row.Direction.ID,
			Name:        row.Direction.Name,
			Description: row.Direction.Description,
		},
		Company: row.Company,
		Platoon: row.Platoon,
	}
}
