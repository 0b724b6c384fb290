package repository

import "errors"

// ErrDuplicate is matched by any DuplicateError.
var ErrDuplicate = errors.New("duplicate key")

// DuplicateError reports a unique constraint violation. Constraint carries the
// name of the violated index when the store reports one.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	if e.Constraint == "" {
		return ErrDuplicate.Error()
	}
	return ErrDuplicate.Error() + ": " + e.Constraint
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// IsDuplicate reports whether err is a unique violation on the named
// constraint. An empty constraint matches any unique violation.
func IsDuplicate(err error, constraint string) bool {
	var dup *DuplicateError
	if !errors.As(err, &dup) {
		return false
	}
	return constraint == "" || dup.Constraint == constraint
}

// Unique constraint names created by the migrations.
const (
	ConstraintBookingSlot  = "uq_bookings_doctor_date_slot"
	ConstraintUserEmail    = "uq_users_email"
	ConstraintDoctorEmail  = "uq_doctors_email"
	ConstraintDoctorUserID = "uq_doctors_user_id"
	ConstraintBlogSlug     = "uq_blog_posts_slug"
)
