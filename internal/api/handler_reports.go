package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"tiretrack/internal/domain"
)

type reportJSON struct {
	CompanyID     string      `json:"company_id"`
	CompanyName   string      `json:"company_name"`
	VehicleCount  int64       `json:"vehicle_count"`
	TireModels    int64       `json:"tire_models"`
	UnitsInStock  int64       `json:"units_in_stock"`
	LowStockLines []stockJSON `json:"low_stock_lines"`
	GeneratedAt   time.Time   `json:"generated_at"`
}

type snapshotJSON struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	VehicleCount int64     `json:"vehicle_count"`
	TireModels   int64     `json:"tire_models"`
	UnitsInStock int64     `json:"units_in_stock"`
	LowStock     int64     `json:"low_stock"`
	TakenAt      time.Time `json:"taken_at"`
}

type auditEntryJSON struct {
	ID            int64     `json:"id"`
	PrincipalName string    `json:"principal_name"`
	Action        string    `json:"action"`
	Detail        string    `json:"detail"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handler) companyReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.CompanyReport(r.Context(), chi.URLParam(r, "companyID"))
	if err != nil {
		writeError(w, err)
		return
	}

	lines := make([]stockJSON, 0, len(report.LowStockLines))
	for _, line := range report.LowStockLines {
		lines = append(lines, stockToAPI(line))
	}
	writeJSON(w, http.StatusOK, reportJSON{
		CompanyID:     report.CompanyID,
		CompanyName:   report.CompanyName,
		VehicleCount:  report.VehicleCount,
		TireModels:    report.TireModels,
		UnitsInStock:  report.UnitsInStock,
		LowStockLines: lines,
		GeneratedAt:   report.GeneratedAt,
	})
}

func (h *Handler) reportHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}
	snapshots, err := h.reports.History(r.Context(), chi.URLParam(r, "companyID"), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]snapshotJSON, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, snapshotJSON{
			ID:           s.ID,
			CompanyID:    s.CompanyID,
			VehicleCount: s.VehicleCount,
			TireModels:   s.TireModels,
			UnitsInStock: s.UnitsInStock,
			LowStock:     s.LowStock,
			TakenAt:      s.TakenAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"snapshots": items})
}

func (h *Handler) listAudit(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{}
	q := r.URL.Query()
	if v := q.Get("principal"); v != "" {
		filter.PrincipalName = &v
	}
	if v := q.Get("action"); v != "" {
		filter.Action = &v
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, domain.ErrValidation("since must be RFC 3339: %v", err))
			return
		}
		filter.Since = &since
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	entries, total, err := h.audit.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]auditEntryJSON, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryJSON{
			ID:            e.ID,
			PrincipalName: e.PrincipalName,
			Action:        e.Action,
			Detail:        e.Detail,
			Status:        e.Status,
			CreatedAt:     e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": items,
		"total":   total,
	})
}
