package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	"github.com/pawmatch/pawmatch/pkg/logger"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/household/application/services"
)

// JoinHouseholdRequest is the request body for POST /households/join.
type JoinHouseholdRequest struct {
	InviteCode  string `json:"invite_code"  validate:"required,len=6" example:"K7KWKQ"`
	DisplayName string `json:"display_name" validate:"required,min=1,max=64" example:"Sam"`
} // @name JoinHouseholdRequest

// JoinHouseholdResponse is returned on successful join.
type JoinHouseholdResponse struct {
	HouseholdID uuid.UUID      `json:"household_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Member      MemberResponse `json:"member"`
} // @name JoinHouseholdResponse

// PostJoinHandler handles POST /households/join requests.
type PostJoinHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewPostJoinHandler returns a PostJoinHandler backed by the given services.
func NewPostJoinHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PostJoinHandler {
	return &PostJoinHandler{svc: svc, store: store, log: log}
}

// Execute joins a household via invite code and starts a session.
//
//	@Summary		Join household
//	@Description	Adds a member to the household behind the invite code
//	@Tags			households
//	@Accept			json
//	@Produce		json
//	@Param			request	body		JoinHouseholdRequest	true	"Join request"
//	@Success		200		{object}	JoinHouseholdResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/households/join [post]
func (h *PostJoinHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[JoinHouseholdRequest](w, r)
	if !ok {
		return
	}

	household, member, err := h.svc.Household.Join(r.Context(), req.InviteCode, req.DisplayName)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	identity := auth.Identity{MemberID: member.ID, HouseholdID: household.ID}
	if err := auth.SaveIdentity(h.store, w, r, identity); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save session after join",
			"household_id", household.ID, "error", err)
	}

	httpx.JSON(w, http.StatusOK, JoinHouseholdResponse{
		HouseholdID: household.ID,
		Member: MemberResponse{
			ID:          member.ID,
			DisplayName: member.DisplayName,
			JoinedAt:    member.JoinedAt,
		},
	})
}
