// Package api provides HTTP handlers for the fleet management REST API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
	"tiretrack/internal/middleware"
	"tiretrack/internal/service/directory"
	"tiretrack/internal/service/fleet"
	"tiretrack/internal/service/reporting"
	"tiretrack/internal/service/security"
)

// Handler holds the API's service dependencies.
type Handler struct {
	validator security.CredentialValidator
	companies *directory.CompanyService
	users     *directory.UserService
	audit     *directory.AuditService
	fleet     *fleet.Service
	reports   *reporting.Service
}

func NewHandler(
	validator security.CredentialValidator,
	companies *directory.CompanyService,
	users *directory.UserService,
	audit *directory.AuditService,
	fleetSvc *fleet.Service,
	reports *reporting.Service,
) *Handler {
	return &Handler{
		validator: validator,
		companies: companies,
		users:     users,
		audit:     audit,
		fleet:     fleetSvc,
		reports:   reports,
	}
}

// Routes mounts the versioned API. authn wraps everything except login.
func (h *Handler) Routes(authn func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/auth/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(authn)

		r.Get("/auth/me", h.me)

		// Company and user management are rejected at the route for
		// identities that can never pass; the services check again so
		// callers that bypass HTTP stay covered.
		r.Route("/companies", func(r chi.Router) {
			r.Use(middleware.RequireOwner)
			r.Get("/", h.listCompanies)
			r.Post("/", h.createCompany)
			r.Get("/{id}", h.getCompany)
			r.Patch("/{id}", h.updateCompany)
			r.Delete("/{id}", h.deleteCompany)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.RequireSuperAdmin)
			r.Get("/", h.listUsers)
			r.Post("/", h.registerUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}/active", h.setUserActive)
			r.Delete("/{id}", h.deleteUser)
		})

		r.Route("/fleet", func(r chi.Router) {
			r.Get("/vehicles", h.listVehicles)
			r.Post("/vehicles", h.createVehicle)
			r.Delete("/vehicles/{id}", h.deleteVehicle)
			r.Get("/tires", h.listTireModels)
			r.Post("/tires", h.createTireModel)
			r.Delete("/tires/{id}", h.deleteTireModel)
			r.Get("/stock", h.listStock)
			r.Put("/stock", h.setStock)
		})

		r.Get("/reports/{companyID}", h.companyReport)
		r.Get("/reports/{companyID}/history", h.reportHistory)
		r.Get("/audit", h.listAudit)
	})

	return r
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := httpStatusFromDomainError(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details stay in the logs.
		msg = "internal server error"
	}
	writeJSON(w, code, map[string]any{
		"code":    code,
		"message": msg,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, domain.ErrValidation("invalid request body: %v", err))
		return false
	}
	return true
}

// pageFromQuery extracts a PageRequest from max_results/page_token params.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			p.MaxResults = n
		}
	}
	return p
}
