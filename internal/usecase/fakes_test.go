package usecase

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/domain/repository"
	"medimeet-api/internal/service"
	"medimeet-api/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// In-memory repositories. Unique indexes are enforced the way the database
// does it, so conflicting writes fail with a DuplicateError.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testMetrics() *metrics.Metrics {
	return metrics.NewMetrics("test", prometheus.NewRegistry())
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) add(name string, roleID int) entity.User {
	active := true
	u := entity.User{ID: uuid.New(), RoleID: roleID, Name: name, Email: name + "@example.com", IsActive: &active, CreatedAt: time.Now()}
	r.mu.Lock()
	r.users[u.ID] = u
	r.mu.Unlock()
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return &repository.DuplicateError{Constraint: repository.ConstraintUserEmail}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]entity.Doctor
	clock   time.Time
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{
		doctors: make(map[uuid.UUID]entity.Doctor),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// add stores a doctor with a creation time after every earlier one.
func (r *fakeDoctorRepo) add(name, specialization string) entity.Doctor {
	d := entity.Doctor{Name: name, Email: name + "@clinic.test", Specialization: specialization}
	if err := r.Create(context.Background(), &d); err != nil {
		panic(err)
	}
	return d
}

func (r *fakeDoctorRepo) Create(_ context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.Email == doctor.Email {
			return &repository.DuplicateError{Constraint: repository.ConstraintDoctorEmail}
		}
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	r.clock = r.clock.Add(time.Minute)
	doctor.CreatedAt = r.clock
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r *fakeDoctorRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return &d, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) sorted(match func(entity.Doctor) bool) []entity.Doctor {
	out := []entity.Doctor{}
	for _, d := range r.doctors {
		if match(d) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (r *fakeDoctorRepo) FindAll(_ context.Context, filter entity.DoctorFilter, limit, offset int) ([]entity.Doctor, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(func(d entity.Doctor) bool {
		if filter.Specialization != "" && d.Specialization != filter.Specialization {
			return false
		}
		return filter.Featured == nil || d.Featured == *filter.Featured
	})
	return page(all, limit, offset), int64(len(all)), nil
}

func (r *fakeDoctorRepo) FindBySpecialization(_ context.Context, specialization string) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(d entity.Doctor) bool { return d.Specialization == specialization }), nil
}

func (r *fakeDoctorRepo) Update(_ context.Context, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if d.ID != doctor.ID && d.Email == doctor.Email {
			return &repository.DuplicateError{Constraint: repository.ConstraintDoctorEmail}
		}
	}
	r.doctors[doctor.ID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) LinkUser(_ context.Context, doctorID, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[doctorID]
	if !ok || d.UserID != nil {
		return 0, nil
	}
	d.UserID = &userID
	r.doctors[doctorID] = d
	return 1, nil
}

func (r *fakeDoctorRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[id]; !ok {
		return 0, nil
	}
	delete(r.doctors, id)
	return 1, nil
}

type slotKey struct {
	doctorID uuid.UUID
	date     time.Time
	slot     entity.TimeSlot
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]entity.Booking
	slots    map[slotKey]uuid.UUID

	// beforeCreate runs before the unique check of every insert.
	beforeCreate func(*entity.Booking)
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: make(map[uuid.UUID]entity.Booking),
		slots:    make(map[slotKey]uuid.UUID),
	}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	if r.beforeCreate != nil {
		r.beforeCreate(booking)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.DoctorID != nil {
		key := slotKey{*booking.DoctorID, booking.AppointmentDate, booking.TimeSlot}
		if _, taken := r.slots[key]; taken {
			return &repository.DuplicateError{Constraint: repository.ConstraintBookingSlot}
		}
		if booking.ID == uuid.Nil {
			booking.ID = uuid.New()
		}
		r.slots[key] = booking.ID
	} else if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, filter entity.BookingFilter) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Booking{}
	for _, b := range r.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.DoctorID != nil && !b.IsAssignedTo(*filter.DoctorID) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByDoctorsAndDate(_ context.Context, doctorIDs []uuid.UUID, date time.Time) ([]entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entity.Booking{}
	for _, b := range r.bookings {
		if !b.AppointmentDate.Equal(date) {
			continue
		}
		for _, id := range doctorIDs {
			if b.IsAssignedTo(id) {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ExistsForSlot(_ context.Context, doctorID uuid.UUID, date time.Time, slot entity.TimeSlot) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, taken := r.slots[slotKey{doctorID, date, slot}]
	return taken, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return 0, nil
	}
	b.Status = to
	r.bookings[id] = b
	return 1, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return 0, nil
	}
	if b.DoctorID != nil {
		delete(r.slots, slotKey{*b.DoctorID, b.AppointmentDate, b.TimeSlot})
	}
	delete(r.bookings, id)
	return 1, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeAuditLogRepo struct {
	mu   sync.Mutex
	logs []entity.AuditLog
}

func (r *fakeAuditLogRepo) Create(_ context.Context, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.logs) + 1)
	log.CreatedAt = time.Now()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *fakeAuditLogRepo) FindAll(_ context.Context, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	newest := make([]entity.AuditLog, len(r.logs))
	for i, l := range r.logs {
		newest[len(r.logs)-1-i] = l
	}
	return page(newest, limit, offset), int64(len(newest)), nil
}

func (r *fakeAuditLogRepo) FindByID(_ context.Context, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *fakeAuditLogRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.logs))
	for i, l := range r.logs {
		out[i] = l.Action
	}
	return out
}

// recordingSlotCache loads straight from storage and remembers invalidations.
type recordingSlotCache struct {
	mu          sync.Mutex
	loads       int
	invalidated []string
}

func (c *recordingSlotCache) GetOrLoad(ctx context.Context, key string, load service.SlotLoader) ([]entity.SlotAvailability, error) {
	c.mu.Lock()
	c.loads++
	c.mu.Unlock()
	return load(ctx)
}

func (c *recordingSlotCache) InvalidateDate(_ context.Context, doctorID uuid.UUID, specialty string, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, service.DoctorSlotsKey(doctorID, date))
	if specialty != "" {
		c.invalidated = append(c.invalidated, service.SpecialtySlotsKey(specialty, date))
	}
}

func (c *recordingSlotCache) InvalidateDoctor(_ context.Context, doctorID uuid.UUID, specialty string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, "doctor:"+doctorID.String(), "specialty:"+specialty)
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
