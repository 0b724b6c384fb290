package repository

import (
	"context"
	"time"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
)

type BookingRepository interface {
	// Create inserts the booking. A second booking for the same doctor, date
	// and slot fails with a DuplicateError on ConstraintBookingSlot.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, filter entity.BookingFilter) ([]entity.Booking, error)
	FindByDoctorsAndDate(ctx context.Context, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error)
	ExistsForSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, slot entity.TimeSlot) (bool, error)
	// UpdateStatus changes the status only if it still equals from.
	// Returns affected rows: 0 means the booking is gone or was changed concurrently.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}
