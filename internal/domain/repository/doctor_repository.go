package repository

import (
	"context"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Doctor, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Doctor, error)
	FindAll(ctx context.Context, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error)
	// FindBySpecialization returns doctors ordered by creation time, oldest
	// first, with ID as tie-breaker.
	FindBySpecialization(ctx context.Context, specialization string) ([]entity.Doctor, error)
	Update(ctx context.Context, doctor *entity.Doctor) error
	// LinkUser attaches a login account to a doctor that has none yet.
	// Returns affected rows: 0 means the doctor is missing or already linked.
	LinkUser(ctx context.Context, doctorID, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
