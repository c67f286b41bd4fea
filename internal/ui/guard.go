package ui

import (
	"net/http"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
	"tiretrack/internal/service/security"
)

// RequireSession gates every dashboard page on the route guard's decision.
// While the session manager is still restoring, it renders a transient
// holding page instead of redirecting, so a slow restore never bounces a
// returning admin through the login form.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch h.Guard.Decide() {
		case security.DecisionWait:
			w.Header().Set("Retry-After", "1")
			renderHTML(w, http.StatusServiceUnavailable, waitingPage())
		case security.DecisionRedirectLogin:
			http.Redirect(w, r, loginURL, http.StatusSeeOther)
		case security.DecisionRender:
			ident, ok := h.Sessions.CurrentIdentity()
			if !ok {
				// Logged out between the decision and now.
				http.Redirect(w, r, loginURL, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithIdentity(r.Context(), ident)))
		}
	})
}

func waitingPage() gomponents.Node {
	return html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(gomponents.Attr("http-equiv", "refresh"), html.Content("1")),
			html.TitleEl(gomponents.Text("Starting | TireTrack")),
			html.Link(html.Rel("stylesheet"), html.Href("/ui/static/app.css")),
		),
		html.Body(
			html.Class("login-body"),
			html.Main(
				html.Class("login-wrap"),
				html.H1(gomponents.Text("TireTrack")),
				html.P(gomponents.Text("Restoring your session…")),
			),
		),
	)
}
