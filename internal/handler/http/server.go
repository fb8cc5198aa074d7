package http

import (
	"LinkGate-Backend/internal/config"
	"LinkGate-Backend/internal/service"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Version версия API, отдается в /health и /metrics
const Version = "1.0.0"

// ReservedSlugs - первые сегменты путей, которые роутер обслуживает раньше /{shortId}
var ReservedSlugs = []string{"health", "ready", "metrics", "swagger", "api"}

// Server HTTP сервер с обработчиками
type Server struct {
	linksHandler    *LinksHandler
	redirectHandler *RedirectHandler
	healthHandler   *HealthHandler
	allowedOrigins  []string
	log             *zap.Logger
}

// NewServer создает новый HTTP сервер
func NewServer(
	links *service.LinkService,
	storage Pinger,
	sweeper SweeperStats,
	cfg *config.Config,
	log *zap.Logger,
) (*Server, error) {
	pages, err := NewPages(log)
	if err != nil {
		return nil, fmt.Errorf("failed to load page templates: %w", err)
	}

	links.ReserveSlugs(ReservedSlugs...)

	return &Server{
		linksHandler:    NewLinksHandler(links, pages, log, cfg.URLShortener.BaseURL, cfg.Admin.Token),
		redirectHandler: NewRedirectHandler(links, pages, log),
		healthHandler:   NewHealthHandler(storage, sweeper, log, Version),
		allowedOrigins:  cfg.HTTPServer.AllowedOrigins,
		log:             log,
	}, nil
}

// SetupRoutes настраивает маршруты
func (s *Server) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	logged := func(h http.Handler) http.Handler {
		return requestID(accessLog(s.log)(h))
	}
	r.Use(requestID, accessLog(s.log))

	// Health checks
	r.HandleFunc("/health", s.healthHandler.Health).Methods(http.MethodGet)
	r.HandleFunc("/ready", s.healthHandler.Ready).Methods(http.MethodGet)
	r.HandleFunc("/metrics", s.healthHandler.Metrics).Methods(http.MethodGet)

	// Swagger документация
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/shorten", s.linksHandler.CreateLink).Methods(http.MethodPost)
	api.HandleFunc("/admin/links/{shortId}", s.linksHandler.DeleteLink).Methods(http.MethodDelete)

	// HTML форма
	r.HandleFunc("/", s.linksHandler.IndexForm).Methods(http.MethodGet)
	r.HandleFunc("/", s.linksHandler.SubmitForm).Methods(http.MethodPost)

	// Redirect endpoint - должен быть последним
	r.HandleFunc("/{shortId}", s.redirectHandler.HandleRedirect).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/{shortId}", s.redirectHandler.HandlePassword).Methods(http.MethodPost)

	// middleware из r.Use не применяется к NotFoundHandler
	r.NotFoundHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.redirectHandler.pages.NotFound(w)
	}))
	r.MethodNotAllowedHandler = logged(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}))

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.allowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", AdminTokenHeader, RequestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(zap.NewStdLog(s.log)),
		handlers.PrintRecoveryStack(true),
	)

	return recovery(cors(r))
}
