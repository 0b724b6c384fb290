package dto

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentRecordRequest is used for both create and full update.
type AppointmentRecordRequest struct {
	PatientName     string `json:"patientName" validate:"required,min=2,max=255"`
	DoctorName      string `json:"doctorName" validate:"required,min=2,max=255"`
	AppointmentDate string `json:"appointmentDate" validate:"required,caldate"`
	TimeSlot        string `json:"timeSlot" validate:"required,timeslot"`
	Reason          string `json:"reason" validate:"omitempty,max=2000"`
	Status          string `json:"status" validate:"omitempty,recordstatus"`
}

type AppointmentRecordResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientName     string    `json:"patientName"`
	DoctorName      string    `json:"doctorName"`
	AppointmentDate string    `json:"appointmentDate"`
	TimeSlot        string    `json:"timeSlot"`
	Reason          string    `json:"reason,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type AppointmentRecordListResponse struct {
	Records []AppointmentRecordResponse `json:"records"`
	Total   int                         `json:"total"`
}
