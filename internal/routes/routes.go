package routes

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"COURSEHUB_BACK-END/internal/config"
	"COURSEHUB_BACK-END/internal/handlers"
	"COURSEHUB_BACK-END/internal/metrics"
	"COURSEHUB_BACK-END/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth         *handlers.AuthHandler
	Courses      *handlers.CourseHandler
	Registration *handlers.RegistrationHandler
	Contact      *handlers.ContactHandler
	Health       *handlers.HealthHandler
}

// SetupRoutes configures all application routes on mux
func SetupRoutes(mux *http.ServeMux, h Handlers, jwtCfg *config.JWTConfig, limiter *middleware.RateLimiter, m *metrics.Metrics) {
	// Health check routes
	mux.HandleFunc("GET /healthz", h.Health.HealthCheck)
	mux.HandleFunc("GET /livez", h.Health.LivenessCheck)
	mux.HandleFunc("GET /readyz", h.Health.ReadinessCheck)

	// Authentication routes
	mux.HandleFunc("POST /api/auth/register", limiter.Limit(h.Auth.Register))
	mux.HandleFunc("POST /api/auth/login", limiter.Limit(h.Auth.Login))
	mux.HandleFunc("GET /api/auth/profile", middleware.AuthMiddleware(h.Auth.GetProfile, jwtCfg))

	// Catalogue
	mux.HandleFunc("GET /api/courses", h.Courses.ListCourses)
	mux.HandleFunc("GET /api/courses/{id}", h.Courses.GetCourse)

	// Enrollment
	mux.HandleFunc("POST /api/course-registrations", middleware.OptionalAuth(h.Registration.CreateRegistration, jwtCfg))
	mux.HandleFunc("GET /api/users/{userId}/registrations", middleware.OptionalAuth(h.Registration.ListUserRegistrations, jwtCfg))

	// Contact form
	mux.HandleFunc("POST /api/contact", h.Contact.SendMessage)

	// Ops
	mux.Handle("GET /metrics", m.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// Root route
	mux.HandleFunc("GET /{$}", rootHandler)
}

// Wrap applies the request-scoped middleware chain. Metrics sits closest to
// the mux so it sees the matched pattern.
func Wrap(mux *http.ServeMux, m *metrics.Metrics) http.Handler {
	return middleware.RequestLogger(m.Middleware(mux))
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("CourseHub backend is running."))
}
