package handler

import (
	"net/http"

	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/usecase"
	"medimeet-api/pkg/response"
	"medimeet-api/pkg/validator"
)

// Error codes of booking responses.
const (
	CodeNoAvailableDoctor = "NO_AVAILABLE_DOCTOR"
	CodeSlotAlreadyBooked = "SLOT_ALREADY_BOOKED"
	CodeValidation        = "VALIDATION_ERROR"
	CodeStatusFinal       = "BOOKING_STATUS_FINAL"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	slotUsecase    usecase.SlotUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, slotUsecase usecase.SlotUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		slotUsecase:    slotUsecase,
		validator:      validator,
	}
}

// GetAvailableSlots handles slot availability lookup
// @Summary Get available slots
// @Description Availability of the eight daily slots for a doctor or a specialty
// @Tags Bookings
// @Produce json
// @Param doctor query string false "Doctor ID"
// @Param specialty query string false "Specialty name"
// @Param appointmentDate query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /bookings/slots [get]
func (h *BookingHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := dto.SlotQuery{
		Doctor:          q.Get("doctor"),
		Specialty:       q.Get("specialty"),
		AppointmentDate: q.Get("appointmentDate"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	slots, err := h.slotUsecase.GetAvailableSlots(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorOrSpecialtyRequired,
			usecase.ErrInvalidDoctorID,
			usecase.ErrInvalidAppointmentDate:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeValidation, err.Error())
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

// CreateBooking handles booking creation
// @Summary Create booking
// @Description Book a slot with a doctor, or with any free doctor of a specialty
// @Tags Bookings
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case usecase.ErrNoAvailableDoctor:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeNoAvailableDoctor, err.Error())
		case usecase.ErrSlotAlreadyBooked:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeSlotAlreadyBooked, err.Error())
		case usecase.ErrDoctorOrSpecialtyRequired,
			usecase.ErrInvalidDoctorID,
			usecase.ErrInvalidUserID,
			usecase.ErrInvalidAppointmentDate,
			usecase.ErrInvalidTimeSlot:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeValidation, err.Error())
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrBookingForOtherUser:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create booking")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Booking created successfully", booking)
}

// GetBookings handles booking listing scoped to the caller's role
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param role query string false "Caller role (must match token)"
// @Param userId query string false "Filter by user (admin only)"
// @Param doctorId query string false "Filter by doctor (admin only)"
// @Success 200 {object} response.Response
// @Router /bookings [get]
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	query := dto.BookingListQuery{
		Role:     q.Get("role"),
		UserID:   q.Get("userId"),
		DoctorID: q.Get("doctorId"),
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	bookings, err := h.bookingUsecase.GetBookings(r.Context(), actor, &query)
	if err != nil {
		switch err {
		case usecase.ErrRoleMismatch, usecase.ErrBookingForbidden:
			response.Forbidden(w, err.Error())
		case usecase.ErrInvalidUserID, usecase.ErrInvalidDoctorID:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeValidation, err.Error())
		default:
			response.InternalServerError(w, "Failed to get bookings")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// UpdateBookingStatus handles accepting or rejecting a booking
// @Summary Update booking status
// @Tags Bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateBookingStatusRequest true "Status Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	bookingID, ok := pathUUID(r, "id")
	if !ok {
		response.NotFound(w, "Booking not found")
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.UpdateBookingStatus(r.Context(), actor, bookingID, &req)
	if err != nil {
		switch err {
		case entity.ErrInvalidBookingStatus:
			response.ErrorWithCode(w, http.StatusBadRequest, CodeValidation, err.Error())
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingForbidden:
			response.Forbidden(w, err.Error())
		case entity.ErrBookingStatusFinal:
			response.ErrorWithCode(w, http.StatusConflict, CodeStatusFinal, err.Error())
		default:
			response.InternalServerError(w, "Failed to update booking status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking status updated successfully", booking)
}

// DeleteBooking handles booking deletion
// @Summary Delete booking
// @Tags Bookings
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	// A malformed ID cannot name an existing booking.
	bookingID, ok := pathUUID(r, "id")
	if !ok {
		response.NotFound(w, "Booking not found")
		return
	}

	if err := h.bookingUsecase.DeleteBooking(r.Context(), actor, bookingID); err != nil {
		switch err {
		case usecase.ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case usecase.ErrBookingForbidden:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete booking")
		}
		return
	}

	response.Success(w, http.StatusOK, "Booking deleted successfully", nil)
}
