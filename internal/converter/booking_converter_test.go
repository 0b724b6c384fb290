package converter

import (
	"testing"
	"time"

	"medimeet-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingToResponse(t *testing.T) {
	doctorID := uuid.New()
	booking := &entity.Booking{
		ID:              uuid.New(),
		UserID:          uuid.New(),
		DoctorID:        &doctorID,
		Specialty:       "Cardiology",
		AppointmentDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:        "10-11am",
		TicketPrice:     decimal.RequireFromString("150.5"),
		Status:          entity.BookingStatusPending,
		Doctor:          &entity.Doctor{ID: doctorID, Name: "Dr House", Specialization: "Cardiology"},
	}

	resp := BookingToResponse(booking)

	require.NotNil(t, resp)
	assert.Equal(t, "2024-06-01", resp.AppointmentDate)
	assert.Equal(t, "150.50", resp.TicketPrice)
	assert.Equal(t, "pending", resp.Status)
	assert.False(t, resp.IsPaid)
	assert.Nil(t, resp.User, "user relation not loaded")
	require.NotNil(t, resp.Doctor)
	assert.Equal(t, "Dr House", resp.Doctor.Name)

	assert.Nil(t, BookingToResponse(nil))
}

func TestSlotsToResponse(t *testing.T) {
	slots := entity.ResolveSlotAvailability([]entity.DoctorID{uuid.New()}, nil)

	resp := SlotsToResponse(slots)

	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "9-10am", resp.Slots[0].Slot)
	assert.True(t, resp.Slots[0].Available)
	assert.Equal(t, "4-5pm", resp.Slots[7].Slot)
}
