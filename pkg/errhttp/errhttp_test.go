package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	catalogdomain "github.com/pawmatch/pawmatch/services/catalog/domain"
	householddomain "github.com/pawmatch/pawmatch/services/household/domain"
	matchdomain "github.com/pawmatch/pawmatch/services/match/domain"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	syncdomain "github.com/pawmatch/pawmatch/services/sync/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrHouseholdNotFound", householddomain.ErrHouseholdNotFound, http.StatusNotFound},
		{"ErrMemberNotFound", householddomain.ErrMemberNotFound, http.StatusNotFound},
		{"ErrInviteCodeNotFound", householddomain.ErrInviteCodeNotFound, http.StatusNotFound},
		{"ErrNameNotFound", catalogdomain.ErrNameNotFound, http.StatusNotFound},
		{"ErrSetNotFound", catalogdomain.ErrSetNotFound, http.StatusNotFound},
		{"match ErrInvalidReference", matchdomain.ErrInvalidReference, http.StatusNotFound},
		{"ErrAlreadyMember", householddomain.ErrAlreadyMember, http.StatusConflict},
		{"ErrDuplicateName", catalogdomain.ErrDuplicateName, http.StatusConflict},
		{"ErrTokenConflict", swipedomain.ErrTokenConflict, http.StatusConflict},
		{"swipe ErrInvalidReference", swipedomain.ErrInvalidReference, http.StatusUnprocessableEntity},
		{"ErrUnknownDecision", swipedomain.ErrUnknownDecision, http.StatusUnprocessableEntity},
		{"ErrUnknownMember", syncdomain.ErrUnknownMember, http.StatusForbidden},
		{"ErrBatchTooLarge", syncdomain.ErrBatchTooLarge, http.StatusRequestEntityTooLarge},
		{"ErrSyncUnavailable", syncdomain.ErrSyncUnavailable, http.StatusServiceUnavailable},
		{"wrapped ErrHouseholdNotFound", fmt.Errorf("get household: %w", householddomain.ErrHouseholdNotFound), http.StatusNotFound},
		{"wrapped ErrTokenConflict", fmt.Errorf("record swipe: %w", swipedomain.ErrTokenConflict), http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, householddomain.ErrHouseholdNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, householddomain.ErrHouseholdNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
