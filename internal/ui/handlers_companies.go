package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

func (h *Handler) CompaniesList(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)
	page := pageFromRequest(r, 25)

	companies, total, err := h.Companies.List(r.Context(), page)
	if err != nil {
		renderError(w, err)
		return
	}

	body := []Node{
		companyCreateCard(csrfField(r)),
		quickFilterCard("Filter companies…"),
	}
	if len(companies) == 0 {
		body = append(body, emptyStateCard("No client companies registered yet."))
	} else {
		rows := make([]Node, 0, len(companies))
		for _, c := range companies {
			tone := "success"
			if c.Status != domain.StatusActive {
				tone = "secondary"
			}
			rows = append(rows, Tr(
				Td(Strong(Text(c.Name))),
				Td(Text(c.TaxID)),
				Td(statusLabel(c.Status, tone)),
				Td(Text(fmt.Sprintf("%d", c.ActiveUsers))),
				Td(Text(formatTime(c.CreatedAt))),
				Td(
					Class("text-right"),
					Div(
						Class("d-flex flex-justify-end gap-2"),
						companyStatusToggle(c, csrfField(r)),
						dangerButton("/ui/companies/"+c.ID+"/delete", "Delete", csrfField(r)),
					),
				),
			))
		}
		body = append(body, Div(
			Class(cardClass()),
			Table(
				Class("width-full"),
				THead(Tr(
					Th(Text("Name")), Th(Text("Tax ID")), Th(Text("Status")),
					Th(Text("Active users")), Th(Text("Created")), Th(),
				)),
				TBody(Group(rows)),
			),
		), paginationCard("/ui/companies", page, total))
	}

	renderHTML(w, http.StatusOK, h.appPage("Companies", domain.DestCompanies, ident, body...))
}

func (h *Handler) CompanyCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, domain.ErrValidation("invalid form"))
		return
	}
	_, err := h.Companies.Create(r.Context(), &domain.CreateCompanyRequest{
		Name:  strings.TrimSpace(r.Form.Get("name")),
		TaxID: strings.TrimSpace(r.Form.Get("tax_id")),
	})
	if err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/companies", http.StatusSeeOther)
}

func (h *Handler) CompanyToggleStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "companyID")
	company, err := h.Companies.GetByID(r.Context(), id)
	if err != nil {
		renderError(w, err)
		return
	}
	status := domain.StatusActive
	if company.Status == domain.StatusActive {
		status = domain.StatusInactive
	}
	if _, err := h.Companies.Update(r.Context(), id, &domain.UpdateCompanyRequest{Status: &status}); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/companies", http.StatusSeeOther)
}

func (h *Handler) CompanyDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Companies.Delete(r.Context(), chi.URLParam(r, "companyID")); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/companies", http.StatusSeeOther)
}

func companyCreateCard(csrf Node) Node {
	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("Register company")),
		Form(
			Method("post"),
			Action("/ui/companies"),
			Class("d-flex flex-wrap gap-2 flex-items-end"),
			csrf,
			formField("Name", Input(Type("text"), Name("name"), Class("form-control"), Required())),
			formField("Tax ID", Input(Type("text"), Name("tax_id"), Class("form-control"), Required())),
			Button(Type("submit"), Class("btn btn-primary"), Text("Register")),
		),
	)
}

func companyStatusToggle(c domain.Company, csrf Node) Node {
	label := "Deactivate"
	if c.Status != domain.StatusActive {
		label = "Activate"
	}
	return Form(
		Method("post"),
		Action("/ui/companies/"+c.ID+"/status"),
		csrf,
		Button(Type("submit"), Class("btn btn-sm"), Text(label)),
	)
}

func formField(label string, control Node) Node {
	return Div(
		Class("form-group my-0"),
		Label(Class("d-block text-small color-fg-muted"), Text(label)),
		control,
	)
}
