package converter

import (
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO.
// User and doctor summaries are attached when the relations are loaded.
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	response := &dto.BookingResponse{
		ID:              booking.ID,
		UserID:          booking.UserID,
		User:            UserToSummary(&booking.User),
		DoctorID:        booking.DoctorID,
		Specialty:       booking.Specialty,
		AppointmentDate: entity.FormatCalendarDate(booking.AppointmentDate),
		TimeSlot:        string(booking.TimeSlot),
		TicketPrice:     booking.TicketPrice.StringFixed(2),
		Status:          string(booking.Status),
		IsPaid:          booking.IsPaid,
		Reason:          booking.Reason,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}

	if booking.Doctor != nil {
		response.Doctor = &dto.BookingDoctorSummary{
			ID:             booking.Doctor.ID,
			Name:           booking.Doctor.Name,
			Specialization: booking.Doctor.Specialization,
			Photo:          booking.Doctor.Photo,
		}
	}

	return response
}

// BookingsToResponses converts a slice of Booking entities to slice of BookingResponse DTOs
func BookingsToResponses(bookings []entity.Booking) []dto.BookingResponse {
	responses := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		responses[i] = *BookingToResponse(&bookings[i])
	}
	return responses
}

func SlotsToResponse(slots []entity.SlotAvailability) *dto.SlotListResponse {
	responses := make([]dto.SlotResponse, len(slots))
	for i, s := range slots {
		responses[i] = dto.SlotResponse{Slot: string(s.Slot), Available: s.Available}
	}
	return &dto.SlotListResponse{Slots: responses}
}
