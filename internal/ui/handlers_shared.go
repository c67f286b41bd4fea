package ui

import (
	"errors"
	"net/http"

	"tiretrack/internal/domain"
)

// identity pulls the signed-in identity the guard middleware injected.
func identity(r *http.Request) *domain.Identity {
	ident, _ := domain.IdentityFromContext(r.Context())
	return ident
}

func renderError(w http.ResponseWriter, err error) {
	var accessDenied *domain.AccessDeniedError
	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &accessDenied):
		renderHTML(w, http.StatusForbidden, errorPage("Access Denied", err.Error()))
	case errors.As(err, &notFound):
		renderHTML(w, http.StatusNotFound, errorPage("Not Found", err.Error()))
	case errors.As(err, &validation):
		renderHTML(w, http.StatusBadRequest, errorPage("Invalid Input", err.Error()))
	default:
		renderHTML(w, http.StatusInternalServerError, errorPage("Something Went Wrong", "An internal error occurred. Check the server logs."))
	}
}
