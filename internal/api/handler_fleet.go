package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
)

type vehicleJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Plate     string    `json:"plate"`
	AxleCount int64     `json:"axle_count"`
	CreatedAt time.Time `json:"created_at"`
}

func vehicleToAPI(v domain.Vehicle) vehicleJSON {
	return vehicleJSON{
		ID:        v.ID,
		Name:      v.Name,
		Plate:     v.Plate,
		AxleCount: v.AxleCount,
		CreatedAt: v.CreatedAt,
	}
}

type tireModelJSON struct {
	ID        string    `json:"id"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	Dimension string    `json:"dimension"`
	CreatedAt time.Time `json:"created_at"`
}

func tireModelToAPI(t domain.TireModel) tireModelJSON {
	return tireModelJSON{
		ID:        t.ID,
		Brand:     t.Brand,
		Model:     t.Model,
		Dimension: t.Dimension,
		CreatedAt: t.CreatedAt,
	}
}

type stockJSON struct {
	ID          string    `json:"id"`
	TireModelID string    `json:"tire_model_id"`
	TireLabel   string    `json:"tire_label"`
	Quantity    int64     `json:"quantity"`
	MinQuantity int64     `json:"min_quantity"`
	Low         bool      `json:"low"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func stockToAPI(s domain.StockLevel) stockJSON {
	return stockJSON{
		ID:          s.ID,
		TireModelID: s.TireModelID,
		TireLabel:   s.TireLabel,
		Quantity:    s.Quantity,
		MinQuantity: s.MinQuantity,
		Low:         s.Low(),
		UpdatedAt:   s.UpdatedAt,
	}
}

func (h *Handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	vehicles, total, err := h.fleet.ListVehicles(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]vehicleJSON, 0, len(vehicles))
	for _, v := range vehicles {
		items = append(items, vehicleToAPI(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"vehicles":        items,
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name      string `json:"name"`
		Plate     string `json:"plate"`
		AxleCount int64  `json:"axle_count"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	vehicle, err := h.fleet.CreateVehicle(r.Context(), &domain.CreateVehicleRequest{
		Name:      body.Name,
		Plate:     body.Plate,
		AxleCount: body.AxleCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicleToAPI(*vehicle))
}

func (h *Handler) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.fleet.DeleteVehicle(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listTireModels(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	tires, total, err := h.fleet.ListTireModels(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]tireModelJSON, 0, len(tires))
	for _, t := range tires {
		items = append(items, tireModelToAPI(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tire_models":     items,
		"total":           total,
		"next_page_token": domain.NextPageToken(page.Offset(), page.Limit(), total),
	})
}

func (h *Handler) createTireModel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Brand     string `json:"brand"`
		Model     string `json:"model"`
		Dimension string `json:"dimension"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	tire, err := h.fleet.CreateTireModel(r.Context(), &domain.CreateTireModelRequest{
		Brand:     body.Brand,
		Model:     body.Model,
		Dimension: body.Dimension,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tireModelToAPI(*tire))
}

func (h *Handler) deleteTireModel(w http.ResponseWriter, r *http.Request) {
	if err := h.fleet.DeleteTireModel(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	lines, err := h.fleet.ListStock(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]stockJSON, 0, len(lines))
	for _, line := range lines {
		items = append(items, stockToAPI(line))
	}
	writeJSON(w, http.StatusOK, map[string]any{"stock": items})
}

func (h *Handler) setStock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TireModelID string `json:"tire_model_id"`
		Quantity    int64  `json:"quantity"`
		MinQuantity int64  `json:"min_quantity"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	line, err := h.fleet.SetStock(r.Context(), &domain.SetStockRequest{
		TireModelID: body.TireModelID,
		Quantity:    body.Quantity,
		MinQuantity: body.MinQuantity,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stockToAPI(*line))
}
