package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"orgauth/internal/handlers"
	"orgauth/internal/middleware"
	"orgauth/internal/response"
)

// Options carries the cross-cutting pieces the router is wrapped with. Metrics may be nil.
type Options struct {
	Authenticator  *middleware.Authenticator
	Metrics        *middleware.Metrics
	Logger         logrus.FieldLogger
	AllowedOrigins []string
}

func SetupRoutes(h *handlers.Handler, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.SendError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.SendError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Handle("/metrics", opts.Metrics.Handler()).Methods("GET")
	}

	r.HandleFunc("/health", h.Health).Methods("GET")

	// Auth routes (public)
	r.HandleFunc("/auth/register", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")

	// Protected routes (require Authorization: Bearer <access_token>)
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(opts.Authenticator.JWTMiddleware)

	if h.RevocationEnabled() {
		protected.HandleFunc("/logout", h.Logout).Methods("POST")
	}
	protected.HandleFunc("/users/{id}", h.GetUser).Methods("GET")
	protected.HandleFunc("/organisations", h.ListOrganisations).Methods("GET")
	protected.HandleFunc("/organisations", h.CreateOrganisation).Methods("POST")
	protected.HandleFunc("/organisations/{orgId}", h.GetOrganisation).Methods("GET")
	protected.HandleFunc("/organisations/{orgId}/users", h.ListOrganisationUsers).Methods("GET")
	protected.HandleFunc("/organisations/{orgId}/users", h.AddOrganisationUser).Methods("POST")

	return middleware.CORS(opts.AllowedOrigins)(middleware.RequestLogger(opts.Logger)(r))
}
