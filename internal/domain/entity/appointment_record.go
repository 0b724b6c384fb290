package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecordStatus is the status vocabulary of manually kept appointment records.
// It is independent of BookingStatus.
type RecordStatus string

const (
	RecordStatusConfirmed RecordStatus = "confirmed"
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusCancelled RecordStatus = "cancelled"
	RecordStatusCompleted RecordStatus = "completed"
)

func ParseRecordStatus(s string) (RecordStatus, bool) {
	switch RecordStatus(s) {
	case RecordStatusConfirmed, RecordStatusPending, RecordStatusCancelled, RecordStatusCompleted:
		return RecordStatus(s), true
	}
	return "", false
}

// AppointmentRecord is an admin-maintained log entry of an appointment that
// may have been arranged outside the booking flow.
type AppointmentRecord struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientName     string       `gorm:"type:varchar(255);not null" json:"patient_name"`
	DoctorName      string       `gorm:"type:varchar(255);not null" json:"doctor_name"`
	AppointmentDate time.Time    `gorm:"type:date;not null;index" json:"appointment_date"`
	TimeSlot        TimeSlot     `gorm:"type:varchar(16);not null" json:"time_slot"`
	Reason          string       `gorm:"type:text" json:"reason,omitempty"`
	Status          RecordStatus `gorm:"type:varchar(16);not null;default:'confirmed'" json:"status"`
	CreatedAt       time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppointmentRecord) TableName() string {
	return "appointment_records"
}
