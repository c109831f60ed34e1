package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/conference-registration-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth         *auth.AuthHandler
	Registration *RegistrationHandler
	Conference   *ConferenceHandler
	Admin        *AdminHandler
	Health       *HealthHandler
	Metrics      http.Handler
}

type RouterOptions struct {
	EnableCORS     bool
	AllowedOrigins []string
}

var adminSecurity = []map[string][]string{{"cookieAuth": {}}, {"bearerAuth": {}}}

func secured(o *huma.Operation) {
	o.Security = adminSecurity
}

func RegisterRoutes(r *chi.Mux, h Handlers, opts RouterOptions) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	config := huma.DefaultConfig("Conference Registration API", "1.0.0")
	// Keep bodies to the documented envelopes, without a "$schema" link.
	config.CreateHooks = nil
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	// Public routes
	huma.Get(api, "/health", h.Health.HandleHealth)
	huma.Get(api, "/conferences", h.Conference.HandleList)
	huma.Get(api, "/conferences/dates", h.Conference.HandleDates)
	huma.Register(api, huma.Operation{
		OperationID:   "register",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Register for a conference",
		DefaultStatus: http.StatusCreated,
	}, h.Registration.HandleRegister)

	// Admin routes
	huma.Post(api, "/admin/login", h.Auth.HandleLogin)
	huma.Get(api, "/admin/participants", h.Admin.HandleParticipants, secured)
	huma.Post(api, "/admin/checkin", h.Admin.HandleCheckin, secured)

	if h.Metrics != nil {
		r.With(h.Auth.AuthMiddleware).Handle("/metrics", h.Metrics)
	}

	return api
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthOutput struct {
	Body struct {
		Status string `json:"status"`
	}
}

func (h *HealthHandler) HandleHealth(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if err := h.db.Ping(ctx); err != nil {
		return nil, huma.Error503ServiceUnavailable("database unavailable")
	}
	out := &HealthOutput{}
	out.Body.Status = "ok"
	return out, nil
}
