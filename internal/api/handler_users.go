package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
)

// userJSON never carries the password hash.
type userJSON struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	AccessKind string    `json:"access_kind"`
	CompanyID  *string   `json:"company_id,omitempty"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
}

func userToAPI(u domain.User) userJSON {
	return userJSON{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		AccessKind: string(u.AccessKind),
		CompanyID:  u.CompanyID,
		Active:     u.Active,
		CreatedAt:  u.CreatedAt,
	}
}

type registerUserJSON struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	Role       string  `json:"role"`
	AccessKind string  `json:"access_kind"`
	CompanyID  *string `json:"company_id,omitempty"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	users, total, err := h.users.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]userJSON, 0, len(users))
	for _, u := range users {
		items = append(items, userToAPI(u))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users":           items,
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var body registerUserJSON
	if !decodeJSON(w, r, &body) {
		return
	}
	user, err := h.users.Register(r.Context(), &domain.RegisterUserRequest{
		Name:       body.Name,
		Email:      body.Email,
		Password:   body.Password,
		Role:       domain.Role(body.Role),
		AccessKind: domain.AccessKind(body.AccessKind),
		CompanyID:  body.CompanyID,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, userToAPI(*user))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, userToAPI(*user))
}

func (h *Handler) setUserActive(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Active bool `json:"active"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	if err := h.users.SetActive(r.Context(), chi.URLParam(r, "id"), body.Active); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
