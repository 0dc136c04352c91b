package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
	swipedomain "github.com/pawmatch/pawmatch/services/swipe/domain"
	"github.com/pawmatch/pawmatch/services/swipe/domain/models"
)

// RecordSwipeRequest is the request body for POST /swipes. Token and
// swiped_at are optional; offline clients replaying a buffer supply both so
// retries stay idempotent.
type RecordSwipeRequest struct {
	NameID   uuid.UUID  `json:"name_id"             validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Decision string     `json:"decision"            validate:"required,oneof=like dismiss" example:"like"`
	Token    *uuid.UUID `json:"token,omitempty"     example:"9b2d8e0a-6f0c-4c5e-8d2f-1a2b3c4d5e6f"`
	SwipedAt *time.Time `json:"swiped_at,omitempty" example:"2024-01-15T10:30:00Z"`
} // @name RecordSwipeRequest

// RecordSwipeResponse reports the ledger's verdict on the swipe.
type RecordSwipeResponse struct {
	Effective       bool  `json:"effective"        example:"true"`
	AlreadyRecorded bool  `json:"already_recorded" example:"false"`
	Seq             int64 `json:"seq"              example:"42"`
} // @name RecordSwipeResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"swipe references an unknown household, member or name"`
} // @name ErrorResponse

// PostSwipeHandler handles POST /swipes requests.
type PostSwipeHandler struct {
	svc *appsvcs.Services
}

// NewPostSwipeHandler returns a PostSwipeHandler backed by the given services.
func NewPostSwipeHandler(svc *appsvcs.Services) *PostSwipeHandler {
	return &PostSwipeHandler{svc: svc}
}

// Execute records a swipe for the authenticated member.
//
//	@Summary		Record swipe
//	@Description	Appends a like/dismiss decision to the household ledger
//	@Tags			swipes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RecordSwipeRequest	true	"Swipe"
//	@Success		201		{object}	RecordSwipeResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/swipes [post]
func (h *PostSwipeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[RecordSwipeRequest](w, r)
	if !ok {
		return
	}

	// The oneof tag already limits the values; ParseDecision normalizes case.
	decision, err := models.ParseDecision(req.Decision)
	if err != nil {
		errhttp.WriteError(w, fmt.Errorf("%w: %w", swipedomain.ErrUnknownDecision, err))
		return
	}

	in := appsvcs.RecordInput{
		HouseholdID: identity.HouseholdID,
		MemberID:    identity.MemberID,
		NameID:      req.NameID,
		Decision:    decision,
	}
	if req.Token != nil {
		in.Token = *req.Token
	}
	if req.SwipedAt != nil {
		in.SwipedAt = *req.SwipedAt
	}

	eff, err := h.svc.Swipe.Record(r.Context(), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, RecordSwipeResponse{
		Effective:       eff.BecameEffective,
		AlreadyRecorded: eff.AlreadyRecorded,
		Seq:             eff.Seq,
	})
}
