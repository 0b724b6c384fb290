package converter

import (
	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/domain/entity"
)

func AppointmentRecordToResponse(record *entity.AppointmentRecord) *dto.AppointmentRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.AppointmentRecordResponse{
		ID:              record.ID,
		PatientName:     record.PatientName,
		DoctorName:      record.DoctorName,
		AppointmentDate: entity.FormatCalendarDate(record.AppointmentDate),
		TimeSlot:        string(record.TimeSlot),
		Reason:          record.Reason,
		Status:          string(record.Status),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
}

func AppointmentRecordsToResponses(records []entity.AppointmentRecord) []dto.AppointmentRecordResponse {
	responses := make([]dto.AppointmentRecordResponse, len(records))
	for i := range records {
		responses[i] = *AppointmentRecordToResponse(&records[i])
	}
	return responses
}
