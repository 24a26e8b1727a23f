package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/infra/database/models"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Get(ctx context.Context, id uint) (domain.Booking, error) {
	var row models.Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Booking{}, domain.NotFoundError{Resource: "booking"}
		}
		return domain.Booking{}, err
	}
	return bookingToDomain(row), nil
}

func (r *BookingRepository) ListBySlave(ctx context.Context, slaveID uint, bookingType string) ([]domain.Booking, error) {
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("slave_id = ? AND booking_type = ?", slaveID, bookingType).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return bookingsToDomain(rows), nil
}

func (r *BookingRepository) ListBySlaves(ctx context.Context, slaveIDs []uint) ([]domain.Booking, error) {
	if len(slaveIDs) == 0 {
		return []domain.Booking{}, nil
	}
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("slave_id IN ?", slaveIDs).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return bookingsToDomain(rows), nil
}

func (r *BookingRepository) GetBookedBySlave(ctx context.Context, slaveID uint) (*domain.Booking, error) {
	var row models.Booking
	err := r.db.WithContext(ctx).
		Where("slave_id = ? AND booking_type = ?", slaveID, domain.BookingBooked).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	booking := bookingToDomain(row)
	return &booking, nil
}

// CreateBooked re-verifies the single-booked invariant inside a transaction.
// The slave's member row is locked first so two racing masters serialize on
// it; whichever commits second sees the winner's row and gets a conflict.
func (r *BookingRepository) CreateBooked(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	row := models.Booking{
		SlaveID:       b.SlaveID,
		MasterID:      b.MasterID,
		AffiliationID: b.AffiliationID,
		BookingType:   domain.BookingBooked,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slave models.Member
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", b.SlaveID).
			Take(&slave).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "member"}
			}
			return err
		}

		var count int64
		err = tx.Model(&models.Booking{}).
			Where("slave_id = ? AND booking_type = ?", b.SlaveID, domain.BookingBooked).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ConflictError{Resource: "booking"}
		}

		return tx.Create(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Booking{}, domain.ConflictError{Resource: "booking"}
		}
		return domain.Booking{}, err
	}
	return bookingToDomain(row), nil
}

func (r *BookingRepository) CreateWishlist(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	row := models.Booking{
		SlaveID:       b.SlaveID,
		MasterID:      b.MasterID,
		AffiliationID: b.AffiliationID,
		BookingType:   domain.BookingInWishlist,
	}
	err := r.db.WithContext(ctx).Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Booking{}, domain.ConflictError{Resource: "wishlist entry"}
		}
		return domain.Booking{}, err
	}
	return bookingToDomain(row), nil
}

// DeleteBookedCascade removes the booking and, in the same transaction,
// detaches the slave's application from its work group and drops the lock
// flag.
func (r *BookingRepository) DeleteBookedCascade(ctx context.Context, b domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Booking{}, "id = ?", b.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Application{}).
			Where("member_id = ?", b.SlaveID).
			Updates(map[string]any{"work_group_id": nil, "is_final": false}).Error
	})
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id).Error
}

func bookingToDomain(row models.Booking) domain.Booking {
	return domain.Booking{
		ID:            row.ID,
		SlaveID:       row.SlaveID,
		MasterID:      row.MasterID,
		AffiliationID: row.AffiliationID,
		BookingType:   row.BookingType,
		CreateDate:    row.CreateDate,
	}
}

func bookingsToDomain(rows []models.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(rows))
	for _, row := range rows {
		out = append(out, bookingToDomain(row))
	}
	return out
}
