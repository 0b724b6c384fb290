package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medimeet-api/internal/delivery/dto"
	"medimeet-api/internal/delivery/http/middleware"
	"medimeet-api/internal/domain/entity"
	"medimeet-api/internal/usecase"
	"medimeet-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingUsecase struct {
	create       func(entity.Actor, *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	list         func(entity.Actor, *dto.BookingListQuery) (*dto.BookingListResponse, error)
	updateStatus func(entity.Actor, uuid.UUID, *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error)
	remove       func(entity.Actor, uuid.UUID) error
}

func (s *stubBookingUsecase) CreateBooking(_ context.Context, actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	return s.create(actor, req)
}

func (s *stubBookingUsecase) GetBookings(_ context.Context, actor entity.Actor, query *dto.BookingListQuery) (*dto.BookingListResponse, error) {
	return s.list(actor, query)
}

func (s *stubBookingUsecase) UpdateBookingStatus(_ context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
	return s.updateStatus(actor, id, req)
}

func (s *stubBookingUsecase) DeleteBooking(_ context.Context, actor entity.Actor, id uuid.UUID) error {
	return s.remove(actor, id)
}

type stubSlotUsecase struct {
	slots func(*dto.SlotQuery) (*dto.SlotListResponse, error)
}

func (s *stubSlotUsecase) GetAvailableSlots(_ context.Context, req *dto.SlotQuery) (*dto.SlotListResponse, error) {
	return s.slots(req)
}

var patient = entity.Actor{UserID: uuid.MustParse("0b6f3f4e-2f4c-4f43-8a55-3d6f1f0c1a01"), Role: entity.RolePatient}

// asActor stands in for the auth middleware.
func asActor(actor entity.Actor) mux.MiddlewareFunc {
	roleIDs := map[entity.RoleName]int{
		entity.RoleAdmin:   entity.RoleIDAdmin,
		entity.RoleDoctor:  entity.RoleIDDoctor,
		entity.RolePatient: entity.RoleIDPatient,
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.UserIDKey, actor.UserID)
			ctx = context.WithValue(ctx, middleware.RoleIDKey, roleIDs[actor.Role])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bookingRouter(bookings *stubBookingUsecase, slots *stubSlotUsecase, actor *entity.Actor) *mux.Router {
	h := NewBookingHandler(bookings, slots, validator.NewValidator())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/slots", h.GetAvailableSlots).Methods(http.MethodGet)

	protected := r.PathPrefix("/bookings").Subrouter()
	if actor != nil {
		protected.Use(asActor(*actor))
	}
	protected.HandleFunc("", h.CreateBooking).Methods(http.MethodPost)
	protected.HandleFunc("", h.GetBookings).Methods(http.MethodGet)
	protected.HandleFunc("/{id}/status", h.UpdateBookingStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/{id}", h.DeleteBooking).Methods(http.MethodDelete)
	return r
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Error   map[string]interface{} `json:"error"`
}

func serve(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

const validBooking = `{"specialty":"Cardiology","appointmentDate":"2024-06-01","timeSlot":"9-10am","reason":"checkup"}`

func TestCreateBooking_Success(t *testing.T) {
	var got *dto.CreateBookingRequest
	var gotActor entity.Actor
	stub := &stubBookingUsecase{create: func(actor entity.Actor, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
		gotActor, got = actor, req
		return &dto.BookingResponse{ID: uuid.New(), TimeSlot: req.TimeSlot, Status: "pending", TicketPrice: "150.00"}, nil
	}}

	code, env := serve(t, bookingRouter(stub, nil, &patient), http.MethodPost, "/bookings", validBooking)

	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)
	assert.Equal(t, patient, gotActor)
	assert.Equal(t, "Cardiology", got.Specialty)

	var booking dto.BookingResponse
	require.NoError(t, json.Unmarshal(env.Data, &booking))
	assert.Equal(t, "pending", booking.Status)
	assert.Equal(t, "150.00", booking.TicketPrice)
}

func TestCreateBooking_ErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		wantCode string
	}{
		{usecase.ErrNoAvailableDoctor, http.StatusBadRequest, CodeNoAvailableDoctor},
		{usecase.ErrSlotAlreadyBooked, http.StatusBadRequest, CodeSlotAlreadyBooked},
		{usecase.ErrDoctorOrSpecialtyRequired, http.StatusBadRequest, CodeValidation},
		{usecase.ErrDoctorNotFound, http.StatusNotFound, ""},
		{usecase.ErrUserNotFound, http.StatusNotFound, ""},
		{usecase.ErrBookingForOtherUser, http.StatusForbidden, ""},
		{assert.AnError, http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			stub := &stubBookingUsecase{create: func(entity.Actor, *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
				return nil, tc.err
			}}

			code, env := serve(t, bookingRouter(stub, nil, &patient), http.MethodPost, "/bookings", validBooking)

			assert.Equal(t, tc.status, code)
			assert.False(t, env.Success)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, env.Error["code"])
			}
			if tc.status == http.StatusInternalServerError {
				assert.NotContains(t, env.Message, assert.AnError.Error())
			}
		})
	}
}

func TestCreateBooking_RejectedBeforeUsecase(t *testing.T) {
	stub := &stubBookingUsecase{create: func(entity.Actor, *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
		t.Fatal("usecase must not be called")
		return nil, nil
	}}

	code, env := serve(t, bookingRouter(stub, nil, &patient), http.MethodPost, "/bookings", `{"specialty":"Cardiology","appointmentDate":"2024-06-01","timeSlot":"5-6pm"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "timeSlot")

	code, env = serve(t, bookingRouter(stub, nil, &patient), http.MethodPost, "/bookings", `{"doctor":"x","appointmentDate":"someday","timeSlot":"9-10am"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Error, "doctor")
	assert.Contains(t, env.Error, "appointmentDate")

	code, _ = serve(t, bookingRouter(stub, nil, &patient), http.MethodPost, "/bookings", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, bookingRouter(stub, nil, nil), http.MethodPost, "/bookings", validBooking)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestGetAvailableSlots(t *testing.T) {
	slots := &stubSlotUsecase{slots: func(req *dto.SlotQuery) (*dto.SlotListResponse, error) {
		if req.Specialty == "" && req.Doctor == "" {
			return nil, usecase.ErrDoctorOrSpecialtyRequired
		}
		out := &dto.SlotListResponse{Slots: []dto.SlotResponse{}}
		for i, slot := range entity.TimeSlots() {
			out.Slots = append(out.Slots, dto.SlotResponse{Slot: string(slot), Available: i != 0})
		}
		return out, nil
	}}
	router := bookingRouter(&stubBookingUsecase{}, slots, nil)

	code, env := serve(t, router, http.MethodGet, "/bookings/slots?specialty=Cardiology&appointmentDate=2024-06-01", "")
	require.Equal(t, http.StatusOK, code)
	var list dto.SlotListResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.Slots, 8)
	assert.Equal(t, dto.SlotResponse{Slot: "9-10am", Available: false}, list.Slots[0])
	assert.Equal(t, "4-5pm", list.Slots[7].Slot)

	code, env = serve(t, router, http.MethodGet, "/bookings/slots?appointmentDate=2024-06-01", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, CodeValidation, env.Error["code"])

	code, _ = serve(t, router, http.MethodGet, "/bookings/slots?specialty=Cardiology", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = serve(t, router, http.MethodGet, "/bookings/slots?doctor=not-a-uuid&appointmentDate=2024-06-01", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetBookings(t *testing.T) {
	stub := &stubBookingUsecase{list: func(actor entity.Actor, q *dto.BookingListQuery) (*dto.BookingListResponse, error) {
		if q.Role != "" && q.Role != string(actor.Role) {
			return nil, usecase.ErrRoleMismatch
		}
		return &dto.BookingListResponse{Bookings: []dto.BookingResponse{}, Total: 0}, nil
	}}
	router := bookingRouter(stub, nil, &patient)

	code, _ := serve(t, router, http.MethodGet, "/bookings?role=patient", "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(t, router, http.MethodGet, "/bookings?role=admin", "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = serve(t, router, http.MethodGet, "/bookings?role=nurse", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUpdateBookingStatus(t *testing.T) {
	doctor := entity.Actor{UserID: uuid.New(), Role: entity.RoleDoctor}
	bookingID := uuid.New()

	cases := []struct {
		name   string
		target string
		body   string
		err    error
		status int
	}{
		{"accepted", "/bookings/" + bookingID.String() + "/status", `{"status":"accepted"}`, nil, http.StatusOK},
		{"unknown status", "/bookings/" + bookingID.String() + "/status", `{"status":"cancelled"}`, nil, http.StatusBadRequest},
		{"back to pending", "/bookings/" + bookingID.String() + "/status", `{"status":"pending"}`, nil, http.StatusBadRequest},
		{"already final", "/bookings/" + bookingID.String() + "/status", `{"status":"rejected"}`, entity.ErrBookingStatusFinal, http.StatusConflict},
		{"not assigned", "/bookings/" + bookingID.String() + "/status", `{"status":"rejected"}`, usecase.ErrBookingForbidden, http.StatusForbidden},
		{"missing", "/bookings/" + bookingID.String() + "/status", `{"status":"rejected"}`, usecase.ErrBookingNotFound, http.StatusNotFound},
		{"malformed id", "/bookings/123/status", `{"status":"accepted"}`, nil, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubBookingUsecase{updateStatus: func(actor entity.Actor, id uuid.UUID, req *dto.UpdateBookingStatusRequest) (*dto.BookingResponse, error) {
				assert.Equal(t, doctor, actor)
				assert.Equal(t, bookingID, id)
				if tc.err != nil {
					return nil, tc.err
				}
				return &dto.BookingResponse{ID: id, Status: req.Status}, nil
			}}

			code, env := serve(t, bookingRouter(stub, nil, &doctor), http.MethodPatch, tc.target, tc.body)

			assert.Equal(t, tc.status, code)
			if tc.err == entity.ErrBookingStatusFinal {
				assert.Equal(t, CodeStatusFinal, env.Error["code"])
			}
		})
	}
}

func TestDeleteBooking(t *testing.T) {
	admin := entity.Actor{UserID: uuid.New(), Role: entity.RoleAdmin}
	existing := uuid.New()
	stub := &stubBookingUsecase{remove: func(_ entity.Actor, id uuid.UUID) error {
		if id != existing {
			return usecase.ErrBookingNotFound
		}
		return nil
	}}
	router := bookingRouter(stub, nil, &admin)

	code, env := serve(t, router, http.MethodDelete, "/bookings/"+existing.String(), "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)

	code, _ = serve(t, router, http.MethodDelete, "/bookings/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = serve(t, router, http.MethodDelete, "/bookings/nope", "")
	assert.Equal(t, http.StatusNotFound, code)
}
