package repository

import (
	"context"
	"errors"

	"medimeet-api/internal/domain/entity"
	domainRepo "medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return translateError(r.db.WithContext(ctx).Omit("User").Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error) {
	var doctors []entity.Doctor
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Doctor{})
	if filter.Specialization != "" {
		query = query.Where("specialization = ?", filter.Specialization)
	}
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at ASC, id ASC").
		Limit(limit).Offset(offset).
		Find(&doctors).Error
	if err != nil {
		return nil, 0, err
	}
	return doctors, total, nil
}

func (r *doctorRepository) FindBySpecialization(ctx context.Context, specialization string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := r.db.WithContext(ctx).
		Where("specialization = ?", specialization).
		Order("created_at ASC, id ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Update writes every profile column except user_id, which only LinkUser
// sets, so a concurrent doctor sign-up is never overwritten.
func (r *doctorRepository) Update(ctx context.Context, doctor *entity.Doctor) error {
	return translateError(r.db.WithContext(ctx).Omit("User", "UserID").Save(doctor).Error)
}

// LinkUser only fills an empty user_id so two sign-ups cannot claim the same
// doctor profile.
func (r *doctorRepository) LinkUser(ctx context.Context, doctorID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Doctor{}).
		Where("id = ? AND user_id IS NULL", doctorID).
		Update("user_id", userID)
	return result.RowsAffected, translateError(result.Error)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{})
	return result.RowsAffected, result.Error
}
