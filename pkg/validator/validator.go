package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"medimeet-api/internal/domain/entity"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("timeslot", validateTimeSlot)
	v.RegisterValidation("caldate", validateCalendarDate)
	v.RegisterValidation("bookingstatus", validateBookingStatus)
	v.RegisterValidation("recordstatus", validateRecordStatus)
	return &CustomValidator{validator: v}
}

func validateTimeSlot(fl validator.FieldLevel) bool {
	_, ok := entity.ParseTimeSlot(fl.Field().String())
	return ok
}

// caldate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := entity.ParseCalendarDate(fl.Field().String(), nil)
	return err == nil
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	_, ok := entity.ParseBookingStatus(fl.Field().String())
	return ok
}

func validateRecordStatus(fl validator.FieldLevel) bool {
	_, ok := entity.ParseRecordStatus(fl.Field().String())
	return ok
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "required_without":
				errors[field] = field + " is required when " + e.Param() + " is empty"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "uuid":
				errors[field] = field + " must be a valid UUID"
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "timeslot":
				errors[field] = field + " must be one of: 9-10am, 10-11am, 11-12am, 12-1pm, 1-2pm, 2-3pm, 3-4pm, 4-5pm"
			case "caldate":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "bookingstatus":
				errors[field] = field + " must be pending, accepted or rejected"
			case "recordstatus":
				errors[field] = field + " must be confirmed, pending, cancelled or completed"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}
