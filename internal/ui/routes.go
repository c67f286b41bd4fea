package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
	"tiretrack/internal/ui/assets"
)

func MountRoutes(r chi.Router, h *Handler) {
	r.Use(h.EnsureCSRFToken)

	r.Get(string(domain.DestLogin), h.LoginPage)
	r.With(h.RequireCSRF).Post(string(domain.DestLogin), h.LoginSubmit)
	r.With(h.RequireCSRF).Post("/logout", h.Logout)

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(staticFS))))
	}

	r.Group(func(r chi.Router) {
		r.Use(h.RequireSession)
		r.Use(h.RequireCSRF)

		r.Get("/", h.Home)
		r.Get("/dashboard", h.Dashboard)

		r.Get("/companies", h.CompaniesList)
		r.Post("/companies", h.CompanyCreate)
		r.Post("/companies/{companyID}/status", h.CompanyToggleStatus)
		r.Post("/companies/{companyID}/delete", h.CompanyDelete)

		r.Get("/users", h.UsersList)
		r.Post("/users", h.UserRegister)
		r.Post("/users/{userID}/active", h.UserToggleActive)
		r.Post("/users/{userID}/delete", h.UserDelete)

		r.Get("/vehicles", h.VehiclesList)
		r.Post("/vehicles", h.VehicleCreate)
		r.Post("/vehicles/{vehicleID}/delete", h.VehicleDelete)

		r.Get("/tires", h.TiresList)
		r.Post("/tires", h.TireCreate)
		r.Post("/tires/{tireID}/delete", h.TireDelete)

		r.Get("/inventory", h.InventoryList)
		r.Post("/inventory", h.StockSet)

		r.Get("/reports", h.ReportsPage)
	})
}
