package ui

import (
	"fmt"
	"strings"
	"time"

	. "maragu.dev/gomponents"
	data "maragu.dev/gomponents-datastar"
	. "maragu.dev/gomponents/html"

	"tiretrack/internal/domain"
)

// appPage renders the dashboard shell. The sidebar only shows destinations
// the identity's capability set allows.
func (h *Handler) appPage(title string, active domain.Destination, ident *domain.Identity, body ...Node) Node {
	entries := h.Nav.Entries(ident)
	nav := make([]Node, 0, len(entries))
	for _, entry := range entries {
		className := "app-nav-link Link--secondary d-flex flex-items-center"
		if entry.Destination == active {
			className += " active"
		}
		nav = append(nav, A(
			Href("/ui"+string(entry.Destination)),
			Class(className),
			Span(Text(entry.Label)),
		))
	}

	who := ident.DisplayName
	if who == "" {
		who = ident.Email
	}

	return HTML(
		Lang("en"),
		Attr("data-color-mode", "auto"),
		Attr("data-light-theme", "light"),
		Attr("data-dark-theme", "dark"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | TireTrack")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			Link(Rel("stylesheet"), Href("/ui/static/app.css")),
			Script(
				Type("module"),
				Src("https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.7/bundles/datastar.js"),
			),
		),
		Body(
			Main(Class("app-shell"),
				Aside(
					Class("app-sidebar"),
					Div(
						Class("brand"),
						Strong(Text("TireTrack")),
						P(Class("color-fg-muted text-small mb-0"), Text("Fleet and tire inventory")),
					),
					Nav(Class("app-nav"), Group(nav)),
				),
				Section(
					Class("app-main"),
					Div(
						Class("topbar"),
						Div(
							H1(Class("page-title"), Text(title)),
						),
						Div(
							P(Class("color-fg-muted text-small mb-2"), Text("Signed in as "+who)),
							Form(
								Method("post"),
								Action("/ui/logout"),
								Button(Type("submit"), Class("btn btn-sm"), Text("Sign out")),
							),
						),
					),
					Div(Class("content"), Group(body)),
				),
			),
		),
	)
}

func errorPage(title, message string) Node {
	return HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(Text(title+" | TireTrack")),
			Link(Rel("icon"), Href("data:,")),
			Link(Rel("stylesheet"), Href("https://cdn.jsdelivr.net/npm/@primer/css@22.1.0/dist/primer.min.css")),
			Link(Rel("stylesheet"), Href("/ui/static/app.css")),
		),
		Body(
			Main(
				Class("layout"),
				H1(Class("page-title"), Text(title)),
				P(Text(message)),
				P(A(Href("/ui"+string(domain.DestDashboard)), Text("Back to dashboard"))),
			),
		),
	)
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Format("2006-01-02 15:04")
}

func cardClass(extra ...string) string {
	parts := []string{"Box", "p-3", "mb-3", "card"}
	parts = append(parts, extra...)
	return strings.Join(parts, " ")
}

func mutedClass() string {
	return "color-fg-muted text-small"
}

func statusLabel(text, tone string) Node {
	className := "Label"
	if tone != "" {
		className += " Label--" + tone
	}
	return Span(Class(className), Text(text))
}

func quickFilterCard(placeholder string) Node {
	return Div(
		Class(cardClass("toolbar")),
		data.Signals(map[string]any{"q": ""}),
		Div(
			Class("d-flex flex-items-center gap-2 flex-1"),
			Label(Class("sr-only"), Text("Quick filter")),
			Input(Type("search"), Class("form-control"), Placeholder(placeholder), data.Bind("q"), AutoComplete("off")),
		),
	)
}

func emptyStateCard(message string) Node {
	return Div(
		Class(cardClass("blankslate")),
		P(Class("color-fg-muted mb-2"), Text(message)),
	)
}

func paginationCard(basePath string, page domain.PageRequest, total int64) Node {
	nextToken := domain.NextPageToken(page.Offset(), page.Limit(), total)
	if nextToken == "" {
		return Div(Class(cardClass()), P(Class(mutedClass()), Text(fmt.Sprintf("%d entries.", total))))
	}
	url := fmt.Sprintf("%s?max_results=%d&page_token=%s", basePath, page.Limit(), nextToken)
	return Div(
		Class(cardClass()),
		P(Class(mutedClass()), Text(fmt.Sprintf("Showing up to %d of %d entries.", page.Limit(), total))),
		A(Href(url), Text("Next page ->")),
	)
}

func dangerButton(action, label string, csrf Node) Node {
	return Form(
		Method("post"),
		Action(action),
		csrf,
		Button(Type("submit"), Class("btn btn-sm btn-danger"), Text(label)),
	)
}
