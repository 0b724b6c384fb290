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
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNoAvailableDoctor   = errors.New("no available doctor for this slot")
	ErrSlotAlreadyBooked   = errors.New("slot already booked")
	ErrInvalidUserID       = errors.New("invalid user id")
	ErrBookingForOtherUser = errors.New("patients can only book for themselves")
	ErrBookingForbidden    = errors.New("you are not allowed to access this booking")
	ErrRoleMismatch        = errors.New("requested role does not match the authenticated user")
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetBookings(ctx context.Context, actor entity.Actor, query *dto.BookingListQuery) (*dto.BookingListResponse, error)
	UpdateBookingStatus(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	DeleteBooking(ctx context.Context, actor entity.Actor, id uuid.UUID) error
}

type bookingUsecase struct {
	log          *logrus.Logger
	bookingRepo  repository.BookingRepository
	doctorRepo   repository.DoctorRepository
	userRepo     repository.UserRepository
	slotCache    service.SlotCache
	auditService service.AuditService
	metrics      *metrics.Metrics
	loc          *time.Location
}

func NewBookingUsecase(
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	slotCache service.SlotCache,
	auditService service.AuditService,
	m *metrics.Metrics,
	loc *time.Location,
) BookingUsecase {
	return &bookingUsecase{
		log:          log,
		bookingRepo:  bookingRepo,
		doctorRepo:   doctorRepo,
		userRepo:     userRepo,
		slotCache:    slotCache,
		auditService: auditService,
		metrics:      m,
		loc:          loc,
	}
}

// bookingTarget is a validated CreateBookingRequest.
type bookingTarget struct {
	userID    uuid.UUID
	doctorID  *uuid.UUID
	specialty string
	date      time.Time
	slot      entity.TimeSlot
	reason    string
}

// CreateBooking books a slot with the requested doctor, or auto-assigns the
// first free doctor of the specialty in creation order.
//
// Flow:
// 1. Validate the whole request before touching storage
// 2. Resolve the candidate doctors (one, or the specialty in order)
// 3. Per candidate: skip if the slot is taken, otherwise insert
// 4. A unique violation on insert means another request won the slot;
//    treat it like a taken slot
func (u *bookingUsecase) CreateBooking(ctx context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	target, err := u.parseBookingRequest(actor, req)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, target.userID)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", target.userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	candidates, err := u.candidateDoctors(ctx, target)
	if err != nil {
		return nil, err
	}

	assignment := "auto"
	if target.doctorID != nil {
		assignment = "explicit"
	}

	for i := range candidates {
		doctor := &candidates[i]

		booking, err := u.tryBook(ctx, doctor, target)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			continue
		}

		u.metrics.BookingsCreated.WithLabelValues(assignment).Inc()
		u.slotCache.InvalidateDate(ctx, doctor.ID, doctor.Specialization, target.date)
		u.auditService.LogCreate(ctx, &actor.UserID, entity.AuditActionBookingCreate, "booking", booking.ID.String(), converter.BookingToResponse(booking))

		u.log.Infof("Booking created: id=%s, doctor=%s, date=%s, slot=%s", booking.ID, doctor.ID, entity.FormatCalendarDate(target.date), target.slot)

		booking.User = *user
		booking.Doctor = doctor
		return converter.BookingToResponse(booking), nil
	}

	if target.doctorID != nil {
		u.metrics.BookingConflicts.WithLabelValues("slot_already_booked").Inc()
		return nil, ErrSlotAlreadyBooked
	}
	u.metrics.BookingConflicts.WithLabelValues("no_available_doctor").Inc()
	return nil, ErrNoAvailableDoctor
}

func (u *bookingUsecase) parseBookingRequest(actor entity.Actor, req *dto.CreateBookingRequest) (*bookingTarget, error) {
	date, err := entity.ParseCalendarDate(req.AppointmentDate, u.loc)
	if err != nil {
		return nil, ErrInvalidAppointmentDate
	}

	slot, ok := entity.ParseTimeSlot(req.TimeSlot)
	if !ok {
		return nil, ErrInvalidTimeSlot
	}

	target := &bookingTarget{
		userID:    actor.UserID,
		specialty: strings.TrimSpace(req.Specialty),
		date:      date,
		slot:      slot,
		reason:    strings.TrimSpace(req.Reason),
	}

	if req.Doctor != "" {
		doctorID, err := uuid.Parse(req.Doctor)
		if err != nil {
			return nil, ErrInvalidDoctorID
		}
		target.doctorID = &doctorID
	} else if target.specialty == "" {
		return nil, ErrDoctorOrSpecialtyRequired
	}

	if req.User != "" {
		userID, err := uuid.Parse(req.User)
		if err != nil {
			return nil, ErrInvalidUserID
		}
		target.userID = userID
	}
	if actor.Role == entity.RolePatient && target.userID != actor.UserID {
		return nil, ErrBookingForOtherUser
	}

	return target, nil
}

func (u *bookingUsecase) candidateDoctors(ctx context.Context, target *bookingTarget) ([]entity.Doctor, error) {
	if target.doctorID != nil {
		doctor, err := u.doctorRepo.FindByID(ctx, *target.doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", *target.doctorID, err)
			return nil, err
		}
		if doctor == nil {
			return nil, ErrDoctorNotFound
		}
		return []entity.Doctor{*doctor}, nil
	}

	doctors, err := u.doctorRepo.FindBySpecialization(ctx, target.specialty)
	if err != nil {
		u.log.Warnf("Failed to find doctors for specialty %s: %+v", target.specialty, err)
		return nil, err
	}
	return doctors, nil
}

// tryBook returns nil, nil when the doctor is already booked at the slot.
func (u *bookingUsecase) tryBook(ctx context.Context, doctor *entity.Doctor, target *bookingTarget) (*entity.Booking, error) {
	taken, err := u.bookingRepo.ExistsForSlot(ctx, doctor.ID, target.date, target.slot)
	if err != nil {
		u.log.Warnf("Failed to check slot %s for doctor %s: %+v", target.slot, doctor.ID, err)
		return nil, err
	}
	if taken {
		return nil, nil
	}

	specialty := target.specialty
	if specialty == "" {
		specialty = doctor.Specialization
	}

	doctorID := doctor.ID
	booking := &entity.Booking{
		UserID:          target.userID,
		DoctorID:        &doctorID,
		Specialty:       specialty,
		AppointmentDate: target.date,
		TimeSlot:        target.slot,
		TicketPrice:     doctor.TicketPrice,
		Status:          entity.BookingStatusPending,
		IsPaid:          false,
		Reason:          target.reason,
	}

	if err := u.bookingRepo.Create(ctx, booking); err != nil {
		if repository.IsDuplicate(err, repository.ConstraintBookingSlot) {
			u.log.Infof("Slot %s on %s for doctor %s was taken concurrently", target.slot, entity.FormatCalendarDate(target.date), doctor.ID)
			return nil, nil
		}
		u.log.Warnf("Failed to create booking: %+v", err)
		return nil, err
	}

	return booking, nil
}

// GetBookings lists bookings visible to the caller: everything for admins
// (optionally filtered), the doctor's own bookings for doctors and the
// patient's own bookings for patients.
func (u *bookingUsecase) GetBookings(ctx context.Context, actor entity.Actor, query *dto.BookingListQuery) (*dto.BookingListResponse, error) {
	if query.Role != "" && entity.RoleName(query.Role) != actor.Role {
		return nil, ErrRoleMismatch
	}

	var filter entity.BookingFilter
	switch actor.Role {
	case entity.RoleAdmin:
		if query.UserID != "" {
			userID, err := uuid.Parse(query.UserID)
			if err != nil {
				return nil, ErrInvalidUserID
			}
			filter.UserID = &userID
		}
		if query.DoctorID != "" {
			doctorID, err := uuid.Parse(query.DoctorID)
			if err != nil {
				return nil, ErrInvalidDoctorID
			}
			filter.DoctorID = &doctorID
		}
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByUserID(ctx, actor.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor for user %s: %+v", actor.UserID, err)
			return nil, err
		}
		if doctor == nil {
			return &dto.BookingListResponse{Bookings: []dto.BookingResponse{}}, nil
		}
		filter.DoctorID = &doctor.ID
	case entity.RolePatient:
		filter.UserID = &actor.UserID
	default:
		return nil, ErrBookingForbidden
	}

	bookings, err := u.bookingRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to find bookings: %+v", err)
		return nil, err
	}

	return &dto.BookingListResponse{
		Bookings: converter.BookingsToResponses(bookings),
		Total:    len(bookings),
	}, nil
}

// UpdateBookingStatus accepts or rejects a pending booking. Only admins and
// the doctor holding the booking may do so.
func (u *bookingUsecase) UpdateBookingStatus(ctx context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	next, ok := entity.ParseBookingStatus(req.Status)
	if !ok || next == entity.BookingStatusPending {
		return nil, entity.ErrInvalidBookingStatus
	}

	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if err := u.authorizeStatusChange(ctx, actor, booking); err != nil {
		return nil, err
	}

	previous := booking.Status
	if err := booking.TransitionTo(next); err != nil {
		return nil, err
	}

	rows, err := u.bookingRepo.UpdateStatus(ctx, id, previous, next)
	if err != nil {
		u.log.Warnf("Failed to update status of booking %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Deleted or decided by someone else since we read it.
		current, err := u.bookingRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, ErrBookingNotFound
		}
		return nil, entity.ErrBookingStatusFinal
	}
	booking.UpdatedAt = time.Now()

	u.metrics.BookingStatusChanges.WithLabelValues(string(next)).Inc()
	u.auditService.LogUpdate(ctx, &actor.UserID, entity.AuditActionBookingStatusChange, "booking", id.String(),
		map[string]string{"status": string(previous)},
		map[string]string{"status": string(next)},
	)

	u.log.Infof("Booking %s status changed: %s -> %s by %s", id, previous, next, actor.UserID)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) authorizeStatusChange(ctx context.Context, actor entity.Actor, booking *entity.Booking) error {
	switch actor.Role {
	case entity.RoleAdmin:
		return nil
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByUserID(ctx, actor.UserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor for user %s: %+v", actor.UserID, err)
			return err
		}
		if doctor != nil && booking.IsAssignedTo(doctor.ID) {
			return nil
		}
	}
	return ErrBookingForbidden
}

// DeleteBooking removes a booking in any status and frees its slot.
func (u *bookingUsecase) DeleteBooking(ctx context.Context, actor entity.Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrBookingForbidden
	}

	booking, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find booking %s: %+v", id, err)
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	rows, err := u.bookingRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete booking %s: %+v", id, err)
		return err
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	if booking.DoctorID != nil {
		specialty := booking.Specialty
		if booking.Doctor != nil {
			specialty = booking.Doctor.Specialization
		}
		u.slotCache.InvalidateDate(ctx, *booking.DoctorID, specialty, booking.AppointmentDate)
	}
	u.auditService.LogDelete(ctx, &actor.UserID, entity.AuditActionBookingDelete, "booking", id.String(), converter.BookingToResponse(booking))

	u.log.Infof("Booking %s deleted by %s", id, actor.UserID)
	return nil
}
