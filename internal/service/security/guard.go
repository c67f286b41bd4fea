package security

import (
	"tiretrack/internal/metrics"
)

// Decision is the route guard's verdict for a navigation attempt.
type Decision int

const (
	// DecisionWait means session restore is still in flight: render a
	// transient state, do not redirect either way yet.
	DecisionWait Decision = iota
	// DecisionRedirectLogin means the visitor is not authenticated and must
	// be sent to the login destination, replacing history.
	DecisionRedirectLogin
	// DecisionRender means the destination may be rendered. Fine-grained
	// per-destination authorization is the destination's own concern.
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionWait:
		return "wait"
	case DecisionRedirectLogin:
		return "redirect"
	case DecisionRender:
		return "render"
	}
	return "unknown"
}

// RouteGuard gates protected destinations on the session manager's state.
// It never redirects while the manager is still initializing, so a page
// reload mid-restore cannot flash-redirect to login.
type RouteGuard struct {
	sessions *Manager
	recorder metrics.Recorder
}

func NewRouteGuard(sessions *Manager, rec metrics.Recorder) *RouteGuard {
	if rec == nil {
		rec = metrics.Noop{}
	}
	return &RouteGuard{sessions: sessions, recorder: rec}
}

// Decide returns the verdict for an attempt to reach a protected destination.
func (g *RouteGuard) Decide() Decision {
	var d Decision
	switch g.sessions.State() {
	case StateInitializing:
		d = DecisionWait
	case StateAuthenticated:
		d = DecisionRender
	default:
		d = DecisionRedirectLogin
	}
	g.recorder.RecordGuardDecision(d.String())
	return d
}
