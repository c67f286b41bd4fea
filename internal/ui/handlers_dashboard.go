package ui

import (
	"fmt"
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/ui"+string(domain.DestDashboard), http.StatusSeeOther)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)

	var cards []Node
	switch ident.AccessKind {
	case domain.AccessTenant:
		report, err := h.Reports.CompanyReport(r.Context(), *ident.CompanyID)
		if err != nil {
			renderError(w, err)
			return
		}
		cards = []Node{
			statCardRow(
				statCard("Vehicles", fmt.Sprintf("%d", report.VehicleCount)),
				statCard("Tire models", fmt.Sprintf("%d", report.TireModels)),
				statCard("Units in stock", fmt.Sprintf("%d", report.UnitsInStock)),
				statCard("Low stock lines", fmt.Sprintf("%d", len(report.LowStockLines))),
			),
		}
		if len(report.LowStockLines) > 0 {
			rows := make([]Node, 0, len(report.LowStockLines))
			for _, line := range report.LowStockLines {
				rows = append(rows, Tr(
					Td(Text(line.TireLabel)),
					Td(Text(fmt.Sprintf("%d", line.Quantity))),
					Td(Text(fmt.Sprintf("%d", line.MinQuantity))),
				))
			}
			cards = append(cards, Div(
				Class(cardClass()),
				H2(Class("f4 mb-2"), Text("Low stock")),
				Table(
					Class("width-full"),
					THead(Tr(Th(Text("Tire")), Th(Text("Quantity")), Th(Text("Minimum")))),
					TBody(Group(rows)),
				),
			))
		}
	case domain.AccessOwner:
		_, total, err := h.Companies.List(r.Context(), domain.PageRequest{MaxResults: 1})
		if err != nil {
			renderError(w, err)
			return
		}
		cards = []Node{
			statCardRow(statCard("Client companies", fmt.Sprintf("%d", total))),
			Div(
				Class(cardClass()),
				P(Class(mutedClass()), Text("Use the sidebar to manage companies and run per-fleet reports.")),
			),
		}
	default:
		cards = []Node{emptyStateCard("Your account has no dashboard content yet.")}
	}

	renderHTML(w, http.StatusOK, h.appPage("Dashboard", domain.DestDashboard, ident, cards...))
}

func statCard(label, value string) Node {
	return Div(
		Class("Box p-3 stat-card"),
		P(Class(mutedClass()), Text(label)),
		Strong(Class("f2"), Text(value)),
	)
}

func statCardRow(cards ...Node) Node {
	return Div(Class("d-flex flex-wrap gap-2 mb-3"), Group(cards))
}
