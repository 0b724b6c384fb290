package http

import (
	"net/http"

	"medimeet-api/internal/delivery/http/handler"
	"medimeet-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router                   *mux.Router
	authHandler              *handler.AuthHandler
	userHandler              *handler.UserHandler
	doctorHandler            *handler.DoctorHandler
	bookingHandler           *handler.BookingHandler
	blogPostHandler          *handler.BlogPostHandler
	appointmentRecordHandler *handler.AppointmentRecordHandler
	auditLogHandler          *handler.AuditLogHandler
	authMiddleware           *middleware.AuthMiddleware
	corsMiddleware           *middleware.CORSMiddleware
	requestLogger            *middleware.RequestLogger
	rateLimiter              *middleware.RateLimiter
	metricsGatherer          prometheus.Gatherer
}

// Handlers groups the HTTP handlers the router mounts.
type Handlers struct {
	Auth              *handler.AuthHandler
	User              *handler.UserHandler
	Doctor            *handler.DoctorHandler
	Booking           *handler.BookingHandler
	BlogPost          *handler.BlogPostHandler
	AppointmentRecord *handler.AppointmentRecordHandler
	AuditLog          *handler.AuditLogHandler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestLogger *middleware.RequestLogger,
	rateLimiter *middleware.RateLimiter,
	metricsGatherer prometheus.Gatherer,
) *Router {
	return &Router{
		router:                   mux.NewRouter(),
		authHandler:              handlers.Auth,
		userHandler:              handlers.User,
		doctorHandler:            handlers.Doctor,
		bookingHandler:           handlers.Booking,
		blogPostHandler:          handlers.BlogPost,
		appointmentRecordHandler: handlers.AppointmentRecord,
		auditLogHandler:          handlers.AuditLog,
		authMiddleware:           authMiddleware,
		corsMiddleware:           corsMiddleware,
		requestLogger:            requestLogger,
		rateLimiter:              rateLimiter,
		metricsGatherer:          metricsGatherer,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	api.Handle("/metrics", promhttp.HandlerFor(r.metricsGatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Auth routes (public, rate limited)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.rateLimiter.Limit)
	auth.HandleFunc("/signup", r.authHandler.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/doctor-signup", r.authHandler.DoctorSignup).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Public catalogue
	api.HandleFunc("/doctors", r.doctorHandler.GetDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/bookings/slots", r.bookingHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/blog", r.blogPostHandler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/blog/{slug}", r.blogPostHandler.GetPost).Methods(http.MethodGet)

	// Booking routes (protected)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Handle("", r.rateLimiter.Limit(http.HandlerFunc(r.bookingHandler.CreateBooking))).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.GetBookings).Methods(http.MethodGet)
	bookings.Handle("/{id}/status", middleware.RequireAdminOrDoctor(http.HandlerFunc(r.bookingHandler.UpdateBookingStatus))).Methods(http.MethodPatch)
	bookings.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.bookingHandler.DeleteBooking))).Methods(http.MethodDelete)

	// Admin routes (protected - admin only)
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.GetUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)

	// Blog management (admin)
	admin.HandleFunc("/blog", r.blogPostHandler.CreatePost).Methods(http.MethodPost)
	admin.HandleFunc("/blog/{id}", r.blogPostHandler.UpdatePost).Methods(http.MethodPut)
	admin.HandleFunc("/blog/{id}", r.blogPostHandler.DeletePost).Methods(http.MethodDelete)

	// Appointment records (admin)
	admin.HandleFunc("/records", r.appointmentRecordHandler.GetRecords).Methods(http.MethodGet)
	admin.HandleFunc("/records", r.appointmentRecordHandler.CreateRecord).Methods(http.MethodPost)
	admin.HandleFunc("/records/{id}", r.appointmentRecordHandler.GetRecord).Methods(http.MethodGet)
	admin.HandleFunc("/records/{id}", r.appointmentRecordHandler.UpdateRecord).Methods(http.MethodPut)
	admin.HandleFunc("/records/{id}", r.appointmentRecordHandler.DeleteRecord).Methods(http.MethodDelete)

	// Audit trail (admin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	// Preflight requests match no method-restricted route.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.router.Use(r.requestLogger.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
