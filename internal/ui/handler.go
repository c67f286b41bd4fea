// Package ui serves the server-rendered admin dashboard. It drives the
// process-wide session manager for sign-in, consults the route guard on
// every page, and renders gomponents pages scoped to the signed-in identity.
package ui

import (
	"net/http"
	"strconv"

	gomponents "maragu.dev/gomponents"

	"tiretrack/internal/domain"
	"tiretrack/internal/service/directory"
	"tiretrack/internal/service/fleet"
	"tiretrack/internal/service/reporting"
	"tiretrack/internal/service/security"
)

// loginURL is the login page's absolute path. The mount in routes.go and
// every guard redirect derive from the same destination constant.
const loginURL = "/ui" + string(domain.DestLogin)

type Handler struct {
	Sessions   *security.Manager
	Guard      *security.RouteGuard
	Nav        *security.NavComposer
	Companies  *directory.CompanyService
	Users      *directory.UserService
	Audit      *directory.AuditService
	Fleet      *fleet.Service
	Reports    *reporting.Service
	Production bool
}

func NewHandler(
	sessions *security.Manager,
	guard *security.RouteGuard,
	companies *directory.CompanyService,
	users *directory.UserService,
	audit *directory.AuditService,
	fleetSvc *fleet.Service,
	reports *reporting.Service,
	production bool,
) *Handler {
	return &Handler{
		Sessions:   sessions,
		Guard:      guard,
		Nav:        security.NewNavComposer(),
		Companies:  companies,
		Users:      users,
		Audit:      audit,
		Fleet:      fleetSvc,
		Reports:    reports,
		Production: production,
	}
}

func pageFromRequest(r *http.Request, defaultPageSize int) domain.PageRequest {
	maxResults := defaultPageSize
	if maxResults <= 0 {
		maxResults = 25
	}
	if raw := r.URL.Query().Get("max_results"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			maxResults = parsed
		}
	}
	if maxResults < 1 {
		maxResults = 1
	}
	if maxResults > 200 {
		maxResults = 200
	}
	return domain.PageRequest{
		MaxResults: maxResults,
		PageToken:  r.URL.Query().Get("page_token"),
	}
}

func renderHTML(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = node.Render(w)
}
