package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateBookingRequest books a slot with a named doctor, or with the first
// free doctor of a specialty when Doctor is empty.
type CreateBookingRequest struct {
	User            string `json:"user" validate:"omitempty,uuid"`
	Doctor          string `json:"doctor" validate:"omitempty,uuid"`
	Specialty       string `json:"specialty" validate:"omitempty,max=100"`
	AppointmentDate string `json:"appointmentDate" validate:"required,caldate"`
	TimeSlot        string `json:"timeSlot" validate:"required,timeslot"`
	Reason          string `json:"reason" validate:"omitempty,max=2000"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// BookingListQuery carries the GET /bookings query string.
type BookingListQuery struct {
	Role     string `json:"role" validate:"omitempty,oneof=admin doctor patient"`
	UserID   string `json:"userId" validate:"omitempty,uuid"`
	DoctorID string `json:"doctorId" validate:"omitempty,uuid"`
}

// SlotQuery carries the GET /bookings/slots query string.
type SlotQuery struct {
	Doctor          string `json:"doctor" validate:"omitempty,uuid"`
	Specialty       string `json:"specialty" validate:"omitempty,max=100"`
	AppointmentDate string `json:"appointmentDate" validate:"required,caldate"`
}

// Response DTOs

type BookingUserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

type BookingDoctorSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization"`
	Photo          string    `json:"photo,omitempty"`
}

type BookingResponse struct {
	ID              uuid.UUID             `json:"id"`
	UserID          uuid.UUID             `json:"userId"`
	User            *BookingUserSummary   `json:"user,omitempty"`
	DoctorID        *uuid.UUID            `json:"doctorId"`
	Doctor          *BookingDoctorSummary `json:"doctor,omitempty"`
	Specialty       string                `json:"specialty,omitempty"`
	AppointmentDate string                `json:"appointmentDate"`
	TimeSlot        string                `json:"timeSlot"`
	TicketPrice     string                `json:"ticketPrice"`
	Status          string                `json:"status"`
	IsPaid          bool                  `json:"isPaid"`
	Reason          string                `json:"reason,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

type SlotResponse struct {
	Slot      string `json:"slot"`
	Available bool   `json:"available"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}
