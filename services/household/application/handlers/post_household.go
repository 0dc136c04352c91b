package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	"github.com/pawmatch/pawmatch/pkg/logger"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/household/application/services"
)

// CreateHouseholdRequest is the request body for POST /households.
type CreateHouseholdRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=64" example:"Alex"`
} // @name CreateHouseholdRequest

// MemberResponse describes one household member.
type MemberResponse struct {
	ID          uuid.UUID `json:"id"           example:"123e4567-e89b-12d3-a456-426614174000"`
	DisplayName string    `json:"display_name" example:"Alex"`
	JoinedAt    time.Time `json:"joined_at"    example:"2024-01-15T10:30:00Z"`
} // @name MemberResponse

// CreateHouseholdResponse is returned on successful household creation.
type CreateHouseholdResponse struct {
	ID         uuid.UUID      `json:"id"          example:"550e8400-e29b-41d4-a716-446655440000"`
	InviteCode string         `json:"invite_code" example:"K7KWKQ"`
	Member     MemberResponse `json:"member"`
} // @name CreateHouseholdResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"household not found"`
} // @name ErrorResponse

// PostHouseholdHandler handles POST /households requests.
type PostHouseholdHandler struct {
	svc   *appsvcs.Services
	store sessions.Store
	log   logger.Logger
}

// NewPostHouseholdHandler returns a PostHouseholdHandler backed by the given services.
func NewPostHouseholdHandler(svc *appsvcs.Services, store sessions.Store, log logger.Logger) *PostHouseholdHandler {
	return &PostHouseholdHandler{svc: svc, store: store, log: log}
}

// Execute creates a household with its founding member and starts a session.
//
//	@Summary		Create household
//	@Description	Creates a household, its founding member and an invite code for the rest of the family
//	@Tags			households
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateHouseholdRequest	true	"Household creation request"
//	@Success		201		{object}	CreateHouseholdResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/households [post]
func (h *PostHouseholdHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateHouseholdRequest](w, r)
	if !ok {
		return
	}

	household, member, err := h.svc.Household.Create(r.Context(), req.DisplayName)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	identity := auth.Identity{MemberID: member.ID, HouseholdID: household.ID}
	if err := auth.SaveIdentity(h.store, w, r, identity); err != nil {
		h.log.ErrorContext(r.Context(), "failed to save session after create",
			"household_id", household.ID, "error", err)
	}

	httpx.JSON(w, http.StatusCreated, CreateHouseholdResponse{
		ID:         household.ID,
		InviteCode: household.InviteCode,
		Member: MemberResponse{
			ID:          member.ID,
			DisplayName: member.DisplayName,
			JoinedAt:    member.JoinedAt,
		},
	})
}
