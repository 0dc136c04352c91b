// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/pawmatch/pawmatch/pkg/httpx"
	catalogdomain "github.com/pawmatch/pawmatch/services/catalog/domain"
	householddomain "github.com/pawmatch/pawmatch/services/household/domain"
	matchdomain "github.com/pawmatch/pawmatch/services/match/domain"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	syncdomain "github.com/pawmatch/pawmatch/services/sync/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, householddomain.ErrHouseholdNotFound),
		errors.Is(err, householddomain.ErrMemberNotFound),
		errors.Is(err, householddomain.ErrInviteCodeNotFound),
		errors.Is(err, catalogdomain.ErrNameNotFound),
		errors.Is(err, catalogdomain.ErrSetNotFound),
		errors.Is(err, matchdomain.ErrInvalidReference):
		return http.StatusNotFound // 404
	case errors.Is(err, householddomain.ErrAlreadyMember),
		errors.Is(err, catalogdomain.ErrDuplicateName),
		errors.Is(err, swipedomain.ErrTokenConflict):
		return http.StatusConflict // 409
	case errors.Is(err, swipedomain.ErrInvalidReference),
		errors.Is(err, swipedomain.ErrUnknownDecision),
		errors.Is(err, catalogdomain.ErrInvalidName):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, syncdomain.ErrUnknownMember):
		return http.StatusForbidden // 403
	case errors.Is(err, syncdomain.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge // 413
	case errors.Is(err, syncdomain.ErrSyncUnavailable):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
