package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/sync/application/services"
)

// PullEntryResponse is one ledger row handed to a catching-up client.
type PullEntryResponse struct {
	Seq       int64     `json:"seq"       example:"42"`
	Token     uuid.UUID `json:"token"     example:"9b2d8e0a-6f0c-4c5e-8d2f-1a2b3c4d5e6f"`
	MemberID  uuid.UUID `json:"member_id" example:"123e4567-e89b-12d3-a456-426614174000"`
	NameID    uuid.UUID `json:"name_id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	Decision  string    `json:"decision"  example:"like"`
	SwipedAt  time.Time `json:"swiped_at" example:"2024-01-15T10:30:00Z"`
	Effective bool      `json:"effective" example:"true"`
} // @name PullEntryResponse

// PullResponse is a page of ledger rows past the client's watermark.
type PullResponse struct {
	Entries   []PullEntryResponse `json:"entries"`
	Watermark int64               `json:"watermark" example:"42"`
	More      bool                `json:"more"      example:"false"`
} // @name PullResponse

// GetPullHandler handles GET /sync/pull requests.
type GetPullHandler struct {
	svc *appsvcs.Services
}

// NewGetPullHandler returns a GetPullHandler backed by the given services.
func NewGetPullHandler(svc *appsvcs.Services) *GetPullHandler {
	return &GetPullHandler{svc: svc}
}

// Execute returns ledger rows past the client's watermark.
//
//	@Summary		Pull ledger delta
//	@Description	Returns household swipes past the given watermark in sequence order, including superseded rows
//	@Tags			sync
//	@Produce		json
//	@Param			watermark	query		int	false	"Last seen ledger sequence"	default(0)
//	@Param			limit		query		int	false	"Maximum rows to return"	default(200)
//	@Success		200			{object}	PullResponse
//	@Failure		401			{object}	ErrorResponse
//	@Failure		403			{object}	ErrorResponse
//	@Router			/sync/pull [get]
func (h *GetPullHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var watermark int64
	if raw := r.URL.Query().Get("watermark"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n >= 0 {
			watermark = n
		}
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	result, err := h.svc.Sync.Pull(r.Context(), identity.HouseholdID, identity.MemberID, watermark, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := PullResponse{
		Entries:   make([]PullEntryResponse, 0, len(result.Entries)),
		Watermark: result.Watermark,
		More:      result.More,
	}
	for _, e := range result.Entries {
		resp.Entries = append(resp.Entries, PullEntryResponse{
			Seq:       e.Seq,
			Token:     e.Token,
			MemberID:  e.MemberID,
			NameID:    e.NameID,
			Decision:  e.Decision,
			SwipedAt:  e.SwipedAt,
			Effective: e.Effective,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
