package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
)

type companyJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	TaxID       string    `json:"tax_id"`
	Status      string    `json:"status"`
	ActiveUsers int64     `json:"active_users"`
	CreatedAt   time.Time `json:"created_at"`
}

func companyToAPI(c domain.Company) companyJSON {
	return companyJSON{
		ID:          c.ID,
		Name:        c.Name,
		TaxID:       c.TaxID,
		Status:      c.Status,
		ActiveUsers: c.ActiveUsers,
		CreatedAt:   c.CreatedAt,
	}
}

type createCompanyJSON struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

type updateCompanyJSON struct {
	Name   *string `json:"name,omitempty"`
	TaxID  *string `json:"tax_id,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (h *Handler) listCompanies(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	companies, total, err := h.companies.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]companyJSON, 0, len(companies))
	for _, c := range companies {
		items = append(items, companyToAPI(c))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"companies":       items,
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var body createCompanyJSON
	if !decodeJSON(w, r, &body) {
		return
	}
	company, err := h.companies.Create(r.Context(), &domain.CreateCompanyRequest{
		Name:  body.Name,
		TaxID: body.TaxID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, companyToAPI(*company))
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	company, err := h.companies.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyToAPI(*company))
}

func (h *Handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	var body updateCompanyJSON
	if !decodeJSON(w, r, &body) {
		return
	}
	company, err := h.companies.Update(r.Context(), chi.URLParam(r, "id"), &domain.UpdateCompanyRequest{
		Name:   body.Name,
		TaxID:  body.TaxID,
		Status: body.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyToAPI(*company))
}

func (h *Handler) deleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := h.companies.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
