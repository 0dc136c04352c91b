package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/catalog/application/services"
)

const defaultQueueLimit = 50

// CandidateResponse is one undecided name in the member's queue.
type CandidateResponse struct {
	ID       uuid.UUID `json:"id"        example:"123e4567-e89b-12d3-a456-426614174000"`
	Name     string    `json:"name"      example:"Biscuit"`
	Species  string    `json:"species"   example:"dog"`
	Gender   string    `json:"gender"    example:"neutral"`
	SetSlug  string    `json:"set_slug"  example:"english-cute"`
	SetTitle string    `json:"set_title" example:"Cute Classics"`
} // @name CandidateResponse

// QueueResponse is the member's candidate queue in catalog order.
type QueueResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
} // @name QueueResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"name set not found"`
} // @name ErrorResponse

// GetQueueHandler handles GET /queue requests.
type GetQueueHandler struct {
	svc *appsvcs.Services
}

// NewGetQueueHandler returns a GetQueueHandler backed by the given services.
func NewGetQueueHandler(svc *appsvcs.Services) *GetQueueHandler {
	return &GetQueueHandler{svc: svc}
}

// Execute builds the member's candidate queue using their stored filter.
//
//	@Summary		Candidate queue
//	@Description	Returns undecided names for the member, filtered and in catalog order
//	@Tags			catalog
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum candidates to return"	default(50)
//	@Success		200		{object}	QueueResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/queue [get]
func (h *GetQueueHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	limit := defaultQueueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	names, err := h.svc.Queue.NextCandidates(r.Context(), identity.HouseholdID, identity.MemberID, nil, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := QueueResponse{Candidates: make([]CandidateResponse, 0, len(names))}
	for _, n := range names {
		resp.Candidates = append(resp.Candidates, CandidateResponse{
			ID:       n.ID,
			Name:     n.Text,
			Species:  n.Species,
			Gender:   n.Gender,
			SetSlug:  n.SetSlug,
			SetTitle: n.SetTitle,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
