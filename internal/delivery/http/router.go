package http

import (
	"net/http"

	"holo-api/internal/delivery/http/handler"
	"holo-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	healthHandler       *handler.HealthHandler
	authHandler         *handler.AuthHandler
	accountHandler      *handler.AccountHandler
	relationshipHandler *handler.RelationshipHandler
	profileHandler      *handler.ProfileHandler
	contentHandler      *handler.ContentHandler
	phraseHandler       *handler.PhraseHandler
	metricsHandler      http.Handler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	rateLimiter         *middleware.RateLimiter
}

type RouterConfig struct {
	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	AccountHandler      *handler.AccountHandler
	RelationshipHandler *handler.RelationshipHandler
	ProfileHandler      *handler.ProfileHandler
	ContentHandler      *handler.ContentHandler
	PhraseHandler       *handler.PhraseHandler
	MetricsHandler      http.Handler
	AuthMiddleware      *middleware.AuthMiddleware
	CORSMiddleware      *middleware.CORSMiddleware
	LoggingMiddleware   *middleware.LoggingMiddleware
	MetricsMiddleware   *middleware.MetricsMiddleware
	RateLimiter         *middleware.RateLimiter
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		router:              mux.NewRouter(),
		healthHandler:       cfg.HealthHandler,
		authHandler:         cfg.AuthHandler,
		accountHandler:      cfg.AccountHandler,
		relationshipHandler: cfg.RelationshipHandler,
		profileHandler:      cfg.ProfileHandler,
		contentHandler:      cfg.ContentHandler,
		phraseHandler:       cfg.PhraseHandler,
		metricsHandler:      cfg.MetricsHandler,
		authMiddleware:      cfg.AuthMiddleware,
		corsMiddleware:      cfg.CORSMiddleware,
		loggingMiddleware:   cfg.LoggingMiddleware,
		metricsMiddleware:   cfg.MetricsMiddleware,
		rateLimiter:         cfg.RateLimiter,
	}
}

// Setup registers every route. CORS wraps the router itself so that
// preflight requests are answered before method matching.
func (r *Router) Setup() http.Handler {
	// Outermost first
	r.router.Use(r.loggingMiddleware.Recover)
	r.router.Use(r.loggingMiddleware.Handle)
	if r.metricsMiddleware != nil {
		r.router.Use(r.metricsMiddleware.Handle)
	}

	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	if r.rateLimiter != nil {
		api.Use(r.rateLimiter.Handle)
	}

	// Health check
	api.HandleFunc("/health", r.healthHandler.Check).Methods(http.MethodGet)

	// Phrases (public)
	api.HandleFunc("/phrases/{tcaType}", r.phraseHandler.GetRandomPhrase).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Everything below requires a bearer token
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	protected.HandleFunc("/auth/logout-all", r.authHandler.LogoutAll).Methods(http.MethodPost)

	// Own account
	protected.HandleFunc("/users/me/password", r.accountHandler.ChangePassword).Methods(http.MethodPut)
	protected.HandleFunc("/users/me", r.accountHandler.DeleteAccount).Methods(http.MethodDelete)
	protected.HandleFunc("/users/me/audit-logs", r.accountHandler.GetMyAuditLogs).Methods(http.MethodGet)

	// Patient content (patient only)
	content := protected.PathPrefix("/users/me").Subrouter()
	content.Use(middleware.RequirePatient)
	content.HandleFunc("/avatars", r.contentHandler.CreateAvatar).Methods(http.MethodPost)
	content.HandleFunc("/avatars", r.contentHandler.ListAvatars).Methods(http.MethodGet)
	content.HandleFunc("/drawings", r.contentHandler.CreateDrawing).Methods(http.MethodPost)
	content.HandleFunc("/drawings", r.contentHandler.ListDrawings).Methods(http.MethodGet)
	content.HandleFunc("/conversations", r.contentHandler.CreateConversationLog).Methods(http.MethodPost)
	content.HandleFunc("/conversations", r.contentHandler.ListConversationLogs).Methods(http.MethodGet)

	// Therapist routes (psychologist only)
	therapists := protected.PathPrefix("/therapists/{therapistId:[0-9]+}").Subrouter()
	therapists.Use(middleware.RequirePsychologist)
	therapists.HandleFunc("/patients", r.relationshipHandler.AssignPatient).Methods(http.MethodPost)
	therapists.HandleFunc("/patients", r.relationshipHandler.ListPatients).Methods(http.MethodGet)
	therapists.HandleFunc("/patients/{patientId:[0-9]+}", r.relationshipHandler.RemovePatient).Methods(http.MethodDelete)
	therapists.HandleFunc("/patients/{patientId:[0-9]+}/drawings", r.contentHandler.ListPatientDrawings).Methods(http.MethodGet)
	therapists.HandleFunc("/patients/{patientId:[0-9]+}/conversations", r.contentHandler.ListPatientConversationLogs).Methods(http.MethodGet)

	// Relationship and profile routes scoped inside the usecases
	protected.HandleFunc("/patients/{patientId:[0-9]+}/therapists", r.relationshipHandler.ListTherapists).Methods(http.MethodGet)
	protected.HandleFunc("/patients/{patientId:[0-9]+}/profile", r.profileHandler.UpdatePatientProfile).Methods(http.MethodPut)
	protected.HandleFunc("/psychologists/{psychologistId:[0-9]+}/profile", r.profileHandler.UpdatePsychologistProfile).Methods(http.MethodPut)

	return r.corsMiddleware.Handle(r.router)
}
