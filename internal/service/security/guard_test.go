package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiretrack/internal/domain"
)

func TestRouteGuard_WaitsWhileInitializing(t *testing.T) {
	m := newTestManager(&fakeValidator{}, NewMemoryStore())
	guard := NewRouteGuard(m, nil)

	// Before restore completes, the guard must not redirect — regardless of
	// what the underlying state will resolve to.
	assert.Equal(t, DecisionWait, guard.Decide())
}

func TestRouteGuard_RedirectsWhenLoggedOut(t *testing.T) {
	m := newTestManager(&fakeValidator{}, NewMemoryStore())
	guard := NewRouteGuard(m, nil)
	m.Restore(context.Background())

	assert.Equal(t, DecisionRedirectLogin, guard.Decide())
}

func TestRouteGuard_RendersWhenAuthenticated(t *testing.T) {
	ident := ownerIdentity(domain.RoleSuperAdmin)
	m := newTestManager(&fakeValidator{ident: ident, token: "tok"}, NewMemoryStore())
	guard := NewRouteGuard(m, nil)
	m.Restore(context.Background())
	require.NoError(t, m.Login(context.Background(), "owner@x.com", "123"))

	assert.Equal(t, DecisionRender, guard.Decide())

	m.Logout(context.Background())
	assert.Equal(t, DecisionRedirectLogin, guard.Decide())
}

func TestRouteGuard_NeverRedirectsBeforeRestoreResolves(t *testing.T) {
	// Even with a valid session waiting in the store, the guard holds until
	// Restore has actually run.
	store := NewMemoryStore()
	require.NoError(t, store.Save(context.Background(), &domain.Session{
		Identity: *ownerIdentity(domain.RoleSuperAdmin),
		Token:    "tok",
	}))

	m := newTestManager(&fakeValidator{}, store)
	guard := NewRouteGuard(m, nil)

	assert.Equal(t, DecisionWait, guard.Decide())
	m.Restore(context.Background())
	assert.Equal(t, DecisionRender, guard.Decide())
}
