package repository

import (
	"context"
	"errors"

	"medimeet-api/internal/domain/entity"
	domainRepo "medimeet-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRecordRepository struct {
	db *gorm.DB
}

func NewAppointmentRecordRepository(db *gorm.DB) domainRepo.AppointmentRecordRepository {
	return &appointmentRecordRepository{db: db}
}

func (r *appointmentRecordRepository) Create(ctx context.Context, record *entity.AppointmentRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *appointmentRecordRepository) FindAll(ctx context.Context) ([]entity.AppointmentRecord, error) {
	var records []entity.AppointmentRecord
	err := r.db.WithContext(ctx).Order("appointment_date DESC, created_at DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *appointmentRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppointmentRecord, error) {
	var record entity.AppointmentRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *appointmentRecordRepository) Update(ctx context.Context, record *entity.AppointmentRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *appointmentRecordRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.AppointmentRecord{})
	return result.RowsAffected, result.Error
}
