package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/household/application/services"
)

// HouseholdResponse is the authenticated member's household with its roster.
type HouseholdResponse struct {
	ID         uuid.UUID        `json:"id"          example:"550e8400-e29b-41d4-a716-446655440000"`
	InviteCode string           `json:"invite_code" example:"K7KWKQ"`
	CreatedAt  time.Time        `json:"created_at"  example:"2024-01-15T10:30:00Z"`
	Members    []MemberResponse `json:"members"`
} // @name HouseholdResponse

// GetHouseholdHandler handles GET /household requests.
type GetHouseholdHandler struct {
	svc *appsvcs.Services
}

// NewGetHouseholdHandler returns a GetHouseholdHandler backed by the given services.
func NewGetHouseholdHandler(svc *appsvcs.Services) *GetHouseholdHandler {
	return &GetHouseholdHandler{svc: svc}
}

// Execute returns the caller's household and roster.
//
//	@Summary		Get household
//	@Description	Returns the authenticated member's household with its roster
//	@Tags			households
//	@Produce		json
//	@Success		200	{object}	HouseholdResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/household [get]
func (h *GetHouseholdHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	household, err := h.svc.Household.Get(r.Context(), identity.HouseholdID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	members, err := h.svc.Household.Members(r.Context(), identity.HouseholdID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := HouseholdResponse{
		ID:         household.ID,
		InviteCode: household.InviteCode,
		CreatedAt:  household.CreatedAt,
		Members:    make([]MemberResponse, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, MemberResponse{
			ID:          m.ID,
			DisplayName: m.DisplayName,
			JoinedAt:    m.JoinedAt,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
