package ui

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"tiretrack/internal/service/security"
)

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if h.Sessions.IsAuthenticated() {
		http.Redirect(w, r, h.landingPath(), http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(strings.TrimSpace(r.URL.Query().Get("error"))))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, loginURL+"?error=invalid+form", http.StatusSeeOther)
		return
	}
	email := strings.TrimSpace(r.Form.Get("email"))
	password := r.Form.Get("password")
	if email == "" || password == "" {
		http.Redirect(w, r, loginURL+"?error=email+and+password+are+required", http.StatusSeeOther)
		return
	}

	err := h.Sessions.Login(r.Context(), email, password)
	switch {
	case err == nil:
		http.Redirect(w, r, h.landingPath(), http.StatusSeeOther)
	case errors.Is(err, security.ErrAlreadyAuthenticated):
		http.Redirect(w, r, h.landingPath(), http.StatusSeeOther)
	case errors.Is(err, security.ErrLoginInFlight):
		http.Redirect(w, r, loginURL+"?error=a+sign-in+is+already+in+progress", http.StatusSeeOther)
	case errors.Is(err, security.ErrInvalidCredentials):
		http.Redirect(w, r, loginURL+"?error=invalid+email+or+password", http.StatusSeeOther)
	default:
		http.Redirect(w, r, loginURL+"?error=sign-in+is+temporarily+unavailable", http.StatusSeeOther)
	}
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(r.Context())
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

func (h *Handler) landingPath() string {
	ident, ok := h.Sessions.CurrentIdentity()
	if !ok {
		return loginURL
	}
	return "/ui" + string(security.LandingDestination(ident))
}

func loginPage(errMsg string) gomponents.Node {
	content := []gomponents.Node{
		html.H1(gomponents.Text("TireTrack")),
		html.P(gomponents.Text("Sign in to manage fleets, tires, and inventory.")),
		html.Form(
			html.Method("post"),
			html.Action(loginURL),
			html.Class("login-form"),
			html.Label(gomponents.Text("Email")),
			html.Input(
				html.Type("email"),
				html.Name("email"),
				html.Placeholder("you@company.com"),
				html.AutoComplete("username"),
				html.Required(),
			),
			html.Label(gomponents.Text("Password")),
			html.Input(
				html.Type("password"),
				html.Name("password"),
				html.AutoComplete("current-password"),
				html.Required(),
			),
			html.Button(
				html.Type("submit"),
				html.Class("btn btn-primary"),
				gomponents.Text("Sign In"),
			),
		),
	}
	if errMsg != "" {
		content = append([]gomponents.Node{html.P(html.Class("error"), gomponents.Text(fmt.Sprintf("Error: %s", errMsg)))}, content...)
	}

	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("Sign in | TireTrack")),
			html.Link(html.Rel("stylesheet"), html.Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			html.Link(html.Rel("stylesheet"), html.Href("/ui/static/app.css")),
		),
		html.Body(
			html.Class("login-body"),
			html.Main(html.Class("login-wrap"), gomponents.Group(content)),
		),
	)
}
