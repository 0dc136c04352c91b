package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/sync/application/services"
	"github.com/pawmatch/pawmatch/services/sync/domain/models"
)

// PushEntryRequest is one buffered swipe in a push batch. The client keeps
// the token and timestamp it minted at swipe time so replays are idempotent.
type PushEntryRequest struct {
	Token    uuid.UUID `json:"token"     validate:"required" example:"9b2d8e0a-6f0c-4c5e-8d2f-1a2b3c4d5e6f"`
	NameID   uuid.UUID `json:"name_id"   validate:"required" example:"123e4567-e89b-12d3-a456-426614174000"`
	Decision string    `json:"decision"  validate:"required,oneof=like dismiss" example:"like"`
	SwipedAt time.Time `json:"swiped_at" validate:"required" example:"2024-01-15T10:30:00Z"`
} // @name PushEntryRequest

// PushRequest is the request body for POST /sync/push.
type PushRequest struct {
	Entries []PushEntryRequest `json:"entries" validate:"required,min=1,max=500,dive"`
} // @name PushRequest

// PushEntryResponse reports one entry's outcome.
type PushEntryResponse struct {
	Token     uuid.UUID `json:"token"            example:"9b2d8e0a-6f0c-4c5e-8d2f-1a2b3c4d5e6f"`
	Status    string    `json:"status"           example:"accepted"`
	Effective bool      `json:"effective"        example:"true"`
	Seq       int64     `json:"seq,omitempty"    example:"42"`
	Reason    string    `json:"reason,omitempty" example:""`
} // @name PushEntryResponse

// PushResponse summarizes a processed batch.
type PushResponse struct {
	Entries   []PushEntryResponse `json:"entries"`
	Accepted  int                 `json:"accepted"  example:"3"`
	Duplicate int                 `json:"duplicate" example:"0"`
	Conflict  int                 `json:"conflict"  example:"0"`
	Queued    int                 `json:"queued"    example:"0"`
	Rejected  int                 `json:"rejected"  example:"0"`
	Watermark int64               `json:"watermark" example:"42"`
} // @name PushResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"push batch exceeds maximum size"`
} // @name ErrorResponse

// PostPushHandler handles POST /sync/push requests.
type PostPushHandler struct {
	svc *appsvcs.Services
}

// NewPostPushHandler returns a PostPushHandler backed by the given services.
func NewPostPushHandler(svc *appsvcs.Services) *PostPushHandler {
	return &PostPushHandler{svc: svc}
}

// Execute replays a batch of buffered swipes against the ledger.
//
//	@Summary		Push buffered swipes
//	@Description	Uploads offline swipes; each entry is classified accepted, duplicate, conflict, queued or rejected
//	@Tags			sync
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PushRequest	true	"Push batch"
//	@Success		200		{object}	PushResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		413		{object}	ErrorResponse
//	@Router			/sync/push [post]
func (h *PostPushHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[PushRequest](w, r)
	if !ok {
		return
	}

	entries := make([]models.PushEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, models.PushEntry{
			Token:    e.Token,
			MemberID: identity.MemberID,
			NameID:   e.NameID,
			Decision: e.Decision,
			SwipedAt: e.SwipedAt,
		})
	}

	result, err := h.svc.Sync.Push(r.Context(), identity.HouseholdID, entries)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := PushResponse{
		Entries:   make([]PushEntryResponse, 0, len(result.Entries)),
		Accepted:  result.Accepted,
		Duplicate: result.Duplicate,
		Conflict:  result.Conflict,
		Queued:    result.Queued,
		Rejected:  result.Rejected,
		Watermark: result.Watermark,
	}
	for _, e := range result.Entries {
		resp.Entries = append(resp.Entries, PushEntryResponse{
			Token:     e.Token,
			Status:    string(e.Status),
			Effective: e.Effective,
			Seq:       e.Seq,
			Reason:    e.Reason,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
