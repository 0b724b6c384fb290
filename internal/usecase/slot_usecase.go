package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"medimeet-api/internal/converter"
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"
	"medimeet-api/internal/service"
	"medimeet-api/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorOrSpecialtyRequired = errors.New("doctor or specialty is required")
	ErrInvalidDoctorID           = errors.New("invalid doctor id")
	ErrInvalidAppointmentDate    = errors.New("invalid appointment date, use YYYY-MM-DD")
	ErrInvalidTimeSlot           = errors.New("invalid time slot")
)

type SlotUsecase interface {
	GetAvailableSlots(ctx context.Context, req *dto.SlotQuery) (*dto.SlotListResponse, error)
}

type slotUsecase struct {
	log         *logrus.Logger
	doctorRepo  repository.DoctorRepository
	bookingRepo repository.BookingRepository
	slotCache   service.SlotCache
	metrics     *metrics.Metrics
	loc         *time.Location
}

func NewSlotUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	bookingRepo repository.BookingRepository,
	slotCache service.SlotCache,
	m *metrics.Metrics,
	loc *time.Location,
) SlotUsecase {
	return &slotUsecase{
		log:         log,
		doctorRepo:  doctorRepo,
		bookingRepo: bookingRepo,
		slotCache:   slotCache,
		metrics:     m,
		loc:         loc,
	}
}

// GetAvailableSlots resolves the eight daily slots for one doctor, or for a
// whole specialty where a slot stays available while any doctor of the
// specialty is free. An unknown doctor or an empty specialty yields no slots.
func (u *slotUsecase) GetAvailableSlots(ctx context.Context, req *dto.SlotQuery) (*dto.SlotListResponse, error) {
	date, err := entity.ParseCalendarDate(req.AppointmentDate, u.loc)
	if err != nil {
		return nil, ErrInvalidAppointmentDate
	}

	var (
		key   string
		scope string
		load  service.SlotLoader
	)

	switch specialty := strings.TrimSpace(req.Specialty); {
	case req.Doctor != "":
		doctorID, err := uuid.Parse(req.Doctor)
		if err != nil {
			return nil, ErrInvalidDoctorID
		}
		scope = "doctor"
		key = service.DoctorSlotsKey(doctorID, date)
		load = func(ctx context.Context) ([]entity.SlotAvailability, error) {
			return u.resolveForDoctor(ctx, doctorID, date)
		}
	case specialty != "":
		scope = "specialty"
		key = service.SpecialtySlotsKey(specialty, date)
		load = func(ctx context.Context) ([]entity.SlotAvailability, error) {
			return u.resolveForSpecialty(ctx, specialty, date)
		}
	default:
		return nil, ErrDoctorOrSpecialtyRequired
	}

	u.metrics.SlotQueries.WithLabelValues(scope).Inc()

	slots, err := u.slotCache.GetOrLoad(ctx, key, load)
	if err != nil {
		u.log.Warnf("Failed to resolve slots for %s: %+v", key, err)
		return nil, err
	}

	return converter.SlotsToResponse(slots), nil
}

func (u *slotUsecase) resolveForDoctor(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.SlotAvailability, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return []entity.SlotAvailability{}, nil
	}
	return u.resolve(ctx, []uuid.UUID{doctor.ID}, date)
}

func (u *slotUsecase) resolveForSpecialty(ctx context.Context, specialty string, date time.Time) ([]entity.SlotAvailability, error) {
	doctors, err := u.doctorRepo.FindBySpecialization(ctx, specialty)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(doctors))
	for i := range doctors {
		ids[i] = doctors[i].ID
	}
	return u.resolve(ctx, ids, date)
}

func (u *slotUsecase) resolve(ctx context.Context, doctorIDs []uuid.UUID, date time.Time) ([]entity.SlotAvailability, error) {
	if len(doctorIDs) == 0 {
		return []entity.SlotAvailability{}, nil
	}

	bookings, err := u.bookingRepo.FindByDoctorsAndDate(ctx, doctorIDs, date)
	if err != nil {
		return nil, err
	}
	return entity.ResolveSlotAvailability(doctorIDs, bookings), nil
}
