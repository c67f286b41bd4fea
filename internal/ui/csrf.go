package ui

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"
)

// Double-submit CSRF: a random token lives in a cookie and must be echoed
// back on every mutating request, either as the csrf_token form field or the
// X-CSRF-Token header.
const csrfCookieName = "tt_csrf"

type csrfContextKey struct{}

// EnsureCSRFToken issues the CSRF cookie on first contact and stashes the
// token in the request context so page renders can embed it in forms.
func (h *Handler) EnsureCSRFToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := readCSRFCookie(r)
		if token == "" {
			token = newCSRFToken()
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				Secure:   h.Production,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), csrfContextKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCSRF rejects mutating requests whose submitted token does not match
// the cookie. Safe methods pass through untouched.
func (h *Handler) RequireCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookieToken := readCSRFCookie(r)
		if cookieToken == "" {
			renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", "Missing CSRF token cookie."))
			return
		}
		if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submittedCSRFToken(r))) != 1 {
			renderHTML(w, http.StatusForbidden, errorPage("CSRF Validation Failed", "Invalid or missing CSRF token."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// submittedCSRFToken returns the token the client sent with a mutating
// request, preferring the header over the form field.
func submittedCSRFToken(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get("X-CSRF-Token")); token != "" {
		return token
	}
	_ = r.ParseForm()
	return strings.TrimSpace(r.Form.Get("csrf_token"))
}

// csrfField renders the hidden input every mutating form must carry.
func csrfField(r *http.Request) gomponents.Node {
	token, _ := r.Context().Value(csrfContextKey{}).(string)
	if token == "" {
		token = readCSRFCookie(r)
	}
	return html.Input(
		html.Type("hidden"),
		html.Name("csrf_token"),
		html.Value(token),
	)
}

func readCSRFCookie(r *http.Request) string {
	cookie, err := r.Cookie(csrfCookieName)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(cookie.Value)
}

func newCSRFToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}
