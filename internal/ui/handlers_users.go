package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

func (h *Handler) UsersList(w http.ResponseWriter, r *http.Request) {
	ident := identity(r)
	page := pageFromRequest(r, 25)

	users, total, err := h.Users.List(r.Context(), page)
	if err != nil {
		renderError(w, err)
		return
	}

	body := []Node{
		h.userRegisterCard(r),
		quickFilterCard("Filter users…"),
	}
	if len(users) == 0 {
		body = append(body, emptyStateCard("No user accounts yet."))
	} else {
		rows := make([]Node, 0, len(users))
		for _, u := range users {
			tone := "success"
			statusText := "active"
			if !u.Active {
				tone = "secondary"
				statusText = "disabled"
			}
			company := "-"
			if u.CompanyID != nil {
				company = *u.CompanyID
			}
			rows = append(rows, Tr(
				Td(Strong(Text(u.Name)), Br(), Span(Class(mutedClass()), Text(u.Email))),
				Td(Text(string(u.Role))),
				Td(Text(string(u.AccessKind))),
				Td(Class("text-small"), Text(company)),
				Td(statusLabel(statusText, tone)),
				Td(
					Class("text-right"),
					Div(
						Class("d-flex flex-justify-end gap-2"),
						userActiveToggle(u, csrfField(r)),
						dangerButton("/ui/users/"+u.ID+"/delete", "Delete", csrfField(r)),
					),
				),
			))
		}
		body = append(body, Div(
			Class(cardClass()),
			Table(
				Class("width-full"),
				THead(Tr(
					Th(Text("User")), Th(Text("Role")), Th(Text("Access")),
					Th(Text("Company")), Th(Text("Status")), Th(),
				)),
				TBody(Group(rows)),
			),
		), paginationCard("/ui/users", page, total))
	}

	renderHTML(w, http.StatusOK, h.appPage("Users", domain.DestUsers, ident, body...))
}

func (h *Handler) UserRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, domain.ErrValidation("invalid form"))
		return
	}
	var companyID *string
	if v := strings.TrimSpace(r.Form.Get("company_id")); v != "" {
		companyID = &v
	}
	_, err := h.Users.Register(r.Context(), &domain.RegisterUserRequest{
		Name:       strings.TrimSpace(r.Form.Get("name")),
		Email:      strings.TrimSpace(r.Form.Get("email")),
		Password:   r.Form.Get("password"),
		Role:       domain.Role(r.Form.Get("role")),
		AccessKind: domain.AccessKind(r.Form.Get("access_kind")),
		CompanyID:  companyID,
	})
	if err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
}

func (h *Handler) UserToggleActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "userID")
	user, err := h.Users.GetByID(r.Context(), id)
	if err != nil {
		renderError(w, err)
		return
	}
	if err := h.Users.SetActive(r.Context(), id, !user.Active); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
}

func (h *Handler) UserDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Users.Delete(r.Context(), chi.URLParam(r, "userID")); err != nil {
		renderError(w, err)
		return
	}
	http.Redirect(w, r, "/ui/users", http.StatusSeeOther)
}

func (h *Handler) userRegisterCard(r *http.Request) Node {
	companyOptions := []Node{Option(Value(""), Text("— none (owner) —"))}
	companies, _, err := h.Companies.List(r.Context(), domain.PageRequest{MaxResults: 200})
	if err == nil {
		for _, c := range companies {
			companyOptions = append(companyOptions, Option(Value(c.ID), Text(c.Name)))
		}
	}

	return Div(
		Class(cardClass()),
		H2(Class("f4 mb-2"), Text("Register user")),
		Form(
			Method("post"),
			Action("/ui/users"),
			Class("d-flex flex-wrap gap-2 flex-items-end"),
			csrfField(r),
			formField("Name", Input(Type("text"), Name("name"), Class("form-control"), Required())),
			formField("Email", Input(Type("email"), Name("email"), Class("form-control"), Required())),
			formField("Password", Input(Type("password"), Name("password"), Class("form-control"), Required())),
			formField("Role", Select(
				Name("role"),
				Class("form-select"),
				Option(Value(string(domain.RoleOperator)), Text("Operator")),
				Option(Value(string(domain.RoleAdmin)), Text("Admin")),
				Option(Value(string(domain.RoleSuperAdmin)), Text("Super admin")),
			)),
			formField("Access", Select(
				Name("access_kind"),
				Class("form-select"),
				Option(Value(string(domain.AccessTenant)), Text("Tenant")),
				Option(Value(string(domain.AccessOwner)), Text("Owner")),
			)),
			formField("Company", Select(Name("company_id"), Class("form-select"), Group(companyOptions))),
			Button(Type("submit"), Class("btn btn-primary"), Text("Register")),
		),
	)
}

func userActiveToggle(u domain.User, csrf Node) Node {
	label := "Disable"
	if !u.Active {
		label = "Enable"
	}
	return Form(
		Method("post"),
		Action("/ui/users/"+u.ID+"/active"),
		csrf,
		Button(Type("submit"), Class("btn btn-sm"), Text(label)),
	)
}
