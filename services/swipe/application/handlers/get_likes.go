package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/swipe/application/services"
)

// LikedNameResponse is one effective like with its name details.
type LikedNameResponse struct {
	NameID   uuid.UUID `json:"name_id"   example:"123e4567-e89b-12d3-a456-426614174000"`
	Name     string    `json:"name"      example:"Biscuit"`
	Gender   string    `json:"gender"    example:"neutral"`
	SetTitle string    `json:"set_title" example:"Cute Classics"`
} // @name LikedNameResponse

// LikesResponse is the member's effective likes, most recent first.
type LikesResponse struct {
	Likes []LikedNameResponse `json:"likes"`
} // @name LikesResponse

// SwipeCountsResponse is the member's effective decision tally.
type SwipeCountsResponse struct {
	Likes     int `json:"likes"     example:"12"`
	Dismisses int `json:"dismisses" example:"30"`
} // @name SwipeCountsResponse

// GetLikesHandler handles GET /likes and GET /swipes/counts requests.
type GetLikesHandler struct {
	svc *appsvcs.Services
}

// NewGetLikesHandler returns a GetLikesHandler backed by the given services.
func NewGetLikesHandler(svc *appsvcs.Services) *GetLikesHandler {
	return &GetLikesHandler{svc: svc}
}

// Execute lists the member's effective likes.
//
//	@Summary		List likes
//	@Description	Returns the authenticated member's effective likes, most recent first
//	@Tags			swipes
//	@Produce		json
//	@Success		200	{object}	LikesResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/likes [get]
func (h *GetLikesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	likes, err := h.svc.Swipe.Likes(r.Context(), identity.HouseholdID, identity.MemberID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := LikesResponse{Likes: make([]LikedNameResponse, 0, len(likes))}
	for _, l := range likes {
		resp.Likes = append(resp.Likes, LikedNameResponse{
			NameID:   l.NameID,
			Name:     l.Name,
			Gender:   l.Gender,
			SetTitle: l.SetTitle,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Counts reports the member's effective like/dismiss tally.
//
//	@Summary		Swipe counts
//	@Description	Returns the authenticated member's effective like and dismiss counts
//	@Tags			swipes
//	@Produce		json
//	@Success		200	{object}	SwipeCountsResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/swipes/counts [get]
func (h *GetLikesHandler) Counts(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	counts, err := h.svc.Swipe.Counts(r.Context(), identity.HouseholdID, identity.MemberID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SwipeCountsResponse{
		Likes:     counts.Likes,
		Dismisses: counts.Dismisses,
	})
}
