package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidBookingStatus = errors.New("status must be accepted or rejected")
	ErrBookingStatusFinal   = errors.New("booking status can no longer change")
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusAccepted BookingStatus = "accepted"
	BookingStatusRejected BookingStatus = "rejected"
)

// ParseBookingStatus validates a status value coming from outside the system.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusRejected:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking reserves one time slot of one doctor on one calendar day.
// At most one booking exists per (DoctorID, AppointmentDate, TimeSlot); the
// database enforces this with uq_bookings_doctor_date_slot.
type Booking struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	DoctorID        *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_bookings_doctor_date_slot" json:"doctor_id,omitempty"`
	Specialty       string          `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	AppointmentDate time.Time       `gorm:"type:date;not null;uniqueIndex:uq_bookings_doctor_date_slot" json:"appointment_date"`
	TimeSlot        TimeSlot        `gorm:"type:varchar(16);not null;uniqueIndex:uq_bookings_doctor_date_slot" json:"time_slot"`
	TicketPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"ticket_price"`
	Status          BookingStatus   `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	IsPaid          bool            `gorm:"not null;default:false" json:"is_paid"`
	Reason          string          `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User   User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctor *Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// IsPending checks if booking is in pending status
func (b *Booking) IsPending() bool {
	return b.Status == BookingStatusPending
}

// IsAssignedTo reports whether the booking is held by the given doctor.
func (b *Booking) IsAssignedTo(doctorID DoctorID) bool {
	return b.DoctorID != nil && *b.DoctorID == doctorID
}

// TransitionTo moves a pending booking to accepted or rejected. Both targets
// are terminal.
func (b *Booking) TransitionTo(next BookingStatus) error {
	if next != BookingStatusAccepted && next != BookingStatusRejected {
		return ErrInvalidBookingStatus
	}
	if !b.IsPending() {
		return ErrBookingStatusFinal
	}
	b.Status = next
	return nil
}

// BookingFilter narrows booking listings. Zero values mean "any".
type BookingFilter struct {
	UserID   *uuid.UUID
	DoctorID *uuid.UUID
}
