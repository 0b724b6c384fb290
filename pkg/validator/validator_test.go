package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingForm struct {
	Doctor          string `json:"doctor" validate:"omitempty,uuid"`
	AppointmentDate string `json:"appointmentDate" validate:"required,caldate"`
	TimeSlot        string `json:"timeSlot" validate:"required,timeslot"`
	Status          string `json:"status" validate:"omitempty,bookingstatus"`
	RecordStatus    string `json:"recordStatus" validate:"omitempty,recordstatus"`
	Internal        string `json:"-" validate:"omitempty,max=3"`
}

func TestValidate_CustomTags(t *testing.T) {
	v := NewValidator()

	ok := bookingForm{AppointmentDate: "2024-06-01", TimeSlot: "12-1pm", Status: "accepted", RecordStatus: "completed"}
	assert.NoError(t, v.Validate(&ok))

	ok.AppointmentDate = "2024-06-01T09:00:00+07:00"
	assert.NoError(t, v.Validate(&ok))

	bad := bookingForm{
		Doctor:          "nope",
		AppointmentDate: "01/06/2024",
		TimeSlot:        "9-10pm",
		Status:          "cancelled",
		RecordStatus:    "accepted",
		Internal:        "toolong",
	}
	err := v.Validate(&bad)
	require.Error(t, err)

	msgs := v.FormatValidationErrors(err)
	assert.Equal(t, "doctor must be a valid UUID", msgs["doctor"])
	assert.Equal(t, "appointmentDate must be a date in YYYY-MM-DD format", msgs["appointmentDate"])
	assert.Contains(t, msgs["timeSlot"], "9-10am, 10-11am")
	assert.Equal(t, "status must be pending, accepted or rejected", msgs["status"])
	assert.Equal(t, "recordStatus must be confirmed, pending, cancelled or completed", msgs["recordStatus"])
	assert.Equal(t, "Internal must be at most 3 characters", msgs["Internal"])
}

func TestValidate_Required(t *testing.T) {
	v := NewValidator()

	msgs := v.FormatValidationErrors(v.Validate(&bookingForm{}))

	assert.Equal(t, map[string]string{
		"appointmentDate": "appointmentDate is required",
		"timeSlot":        "timeSlot is required",
	}, msgs)
}

func TestFormatValidationErrors_OtherErrors(t *testing.T) {
	assert.Empty(t, NewValidator().FormatValidationErrors(assert.AnError))
}
