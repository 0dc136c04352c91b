package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
)

// UndoSwipeRequest is the request body for POST /swipes/undo.
type UndoSwipeRequest struct {
	NameID uuid.UUID `json:"name_id" validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name UndoSwipeRequest

// PostUndoHandler handles POST /swipes/undo requests.
type PostUndoHandler struct {
	svc *appsvcs.Services
}

// NewPostUndoHandler returns a PostUndoHandler backed by the given services.
func NewPostUndoHandler(svc *appsvcs.Services) *PostUndoHandler {
	return &PostUndoHandler{svc: svc}
}

// Execute retracts the member's current decision on a name. The ledger is
// append-only, so undo records a superseding dismissal rather than deleting.
//
//	@Summary		Undo swipe
//	@Description	Supersedes the member's effective decision on a name with a dismissal
//	@Tags			swipes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		UndoSwipeRequest	true	"Undo"
//	@Success		200		{object}	RecordSwipeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/swipes/undo [post]
func (h *PostUndoHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[UndoSwipeRequest](w, r)
	if !ok {
		return
	}

	eff, err := h.svc.Swipe.Undo(r.Context(), identity.HouseholdID, identity.MemberID, req.NameID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, RecordSwipeResponse{
		Effective:       eff.BecameEffective,
		AlreadyRecorded: eff.AlreadyRecorded,
		Seq:             eff.Seq,
	})
}
