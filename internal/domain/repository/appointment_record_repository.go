package repository

import (
	"context"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRecordRepository interface {
	Create(ctx context.Context, record *entity.AppointmentRecord) error
	FindAll(ctx context.Context) ([]entity.AppointmentRecord, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AppointmentRecord, error)
	Update(ctx context.Context, record *entity.AppointmentRecord) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
