package ui

import (
	"fmt"
	"net/http"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

func (h *Handler) ReportsPage(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)

	companyID := r.URL.Query().Get("company")
	if ident.AccessKind == domain.AccessTenant {
		companyID = *ident.CompanyID
	}

	var body []Node
	if ident.AccessKind == domain.AccessOwner {
		picker, err := h.companyPickerCard(r, companyID)
		if err != nil {
			renderError(w, err)
			return
		}
		body = append(body, picker)
	}

	if companyID == "" {
		body = append(body, emptyStateCard("Pick a company to see its fleet report."))
		renderHTML(w, http.StatusOK, h.appPage("Reports", domain.DestReports, ident, body...))
		return
	}

	report, err := h.Reports.CompanyReport(r.Context(), companyID)
	if err != nil {
		renderError(w, err)
		return
	}
	history, err := h.Reports.History(r.Context(), companyID, 30)
	if err != nil {
		renderError(w, err)
		return
	}

	body = append(body,
		Div(
			Class(cardClass()),
			H2(Class("f4 mb-2"), Text(report.CompanyName)),
			P(Class(mutedClass()), Text("Generated "+formatTime(report.GeneratedAt))),
			statCardRow(
				statCard("Vehicles", fmt.Sprintf("%d", report.VehicleCount)),
				statCard("Tire models", fmt.Sprintf("%d", report.TireModels)),
				statCard("Units in stock", fmt.Sprintf("%d", report.UnitsInStock)),
				statCard("Low stock lines", fmt.Sprintf("%d", len(report.LowStockLines))),
			),
		),
		historyCard(history),
	)

	renderHTML(w, http.StatusOK, h.appPage("Reports", domain.DestReports, ident, body...))
}

func (h *Handler) companyPickerCard(r *http.Request, selected string) (Node, error) {
	companies, _, err := h.Companies.List(r.Context(), domain.PageRequest{MaxResults: 200})
	if err != nil {
		return nil, err
	}
	options := make([]Node, 0, len(companies)+1)
	options = append(options, Option(Value(""), Text("— choose a company —")))
	for _, c := range companies {
		opt := Option(Value(c.ID), Text(c.Name))
		if c.ID == selected {
			opt = Option(Value(c.ID), Selected(), Text(c.Name))
		}
		options = append(options, opt)
	}
	return Div(
		Class(cardClass("toolbar")),
		Form(
			Method("get"),
			Action("/ui/reports"),
			Class("d-flex flex-items-end gap-2"),
			formField("Company", Select(Name("company"), Class("form-select"), Group(options))),
			Button(Type("submit"), Class("btn"), Text("Show report")),
		),
	), nil
}

func historyCard(history []domain.ReportSnapshot) Node {
	if len(history) == 0 {
		return emptyStateCard("No snapshots yet. Nightly snapshots appear here once the scheduler has run.")
	}
	rows := make([]Node, 0, len(history))
	for _, s := range history {
		rows = append(rows, Tr(
			Td(Text(formatTime(s.TakenAt))),
			Td(Text(fmt.Sprintf("%d", s.VehicleCount))),
			Td(Text(fmt.Sprintf("%d", s.TireModels))),
			Td(Text(fmt.Sprintf("%d", s.UnitsInStock))),
			Td(Text(fmt.Sprintf("%d", s.LowStock))),
		))
	}
	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("History")),
		Table(
			Class("width-full"),
			THead(Tr(
				Th(Text("Taken")), Th(Text("Vehicles")), Th(Text("Tire models")),
				Th(Text("Units in stock")), Th(Text("Low stock")),
			)),
			TBody(Group(rows)),
		),
	)
}
