package repository

import (
	"context"
	"errors"
	"time"

	"medimeet-api/internal/domain/entity"
	domainRepo "medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return translateError(r.db.WithContext(ctx).Omit("User", "Doctor").Create(booking).Error)
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Preload("User.Role").Preload("Doctor").Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, filter entity.BookingFilter) ([]entity.Booking, error) {
	var bookings []entity.Booking
	query := r.db.WithContext(ctx).Preload("User.Role").Preload("Doctor")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	err := query.Order("appointment_date DESC, created_at DESC").Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByDoctorsAndDate(ctx context.Context, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error) {
	if len(doctorIDs) == 0 {
		return []entity.Booking{}, nil
	}

	var bookings []entity.Booking
	err := r.db.WithContext(ctx).
		Where("doctor_id IN ? AND appointment_date = ?", doctorIDs, date).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot entity.TimeSlot) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("doctor_id = ? AND appointment_date = ? AND time_slot = ?", doctorID, date, slot).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Booking{})
	return result.RowsAffected, result.Error
}
