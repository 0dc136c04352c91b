package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/match/application/services"
)

// MatchResponse is one currently matched name.
type MatchResponse struct {
	NameID     uuid.UUID `json:"name_id"     example:"123e4567-e89b-12d3-a456-426614174000"`
	Name       string    `json:"name"        example:"Biscuit"`
	Gender     string    `json:"gender"      example:"neutral"`
	LikesCount int       `json:"likes_count" example:"2"`
	Likers     []string  `json:"likers"      example:"Alex,Sam"`
} // @name MatchResponse

// MatchesResponse is the household's current match set, most liked first.
type MatchesResponse struct {
	Matches []MatchResponse `json:"matches"`
} // @name MatchesResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"match transition references unknown household or name"`
} // @name ErrorResponse

// GetMatchesHandler handles GET /matches requests.
type GetMatchesHandler struct {
	svc *appsvcs.Services
}

// NewGetMatchesHandler returns a GetMatchesHandler backed by the given services.
func NewGetMatchesHandler(svc *appsvcs.Services) *GetMatchesHandler {
	return &GetMatchesHandler{svc: svc}
}

// Execute derives the household's current match set from effective likes.
//
//	@Summary		List matches
//	@Description	Returns names every required household member currently likes
//	@Tags			matches
//	@Produce		json
//	@Success		200	{object}	MatchesResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/matches [get]
func (h *GetMatchesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	matches, err := h.svc.Match.Matches(r.Context(), identity.HouseholdID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := MatchesResponse{Matches: make([]MatchResponse, 0, len(matches))}
	for _, m := range matches {
		resp.Matches = append(resp.Matches, MatchResponse{
			NameID:     m.NameID,
			Name:       m.Name,
			Gender:     m.Gender,
			LikesCount: m.LikesCount,
			Likers:     m.Likers,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
