package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	appsvcs "github.com/pawmatch/pawmatch/services/catalog/application/services"
)

// NameSetResponse is one catalog name set.
type NameSetResponse struct {
	ID       uuid.UUID `json:"id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	Slug     string    `json:"slug"     example:"english-cute"`
	Title    string    `json:"title"    example:"Cute Classics"`
	Language string    `json:"language" example:"en"`
	Style    string    `json:"style"    example:"cute"`
} // @name NameSetResponse

// NameSetsResponse lists the catalog's name sets in catalog order.
type NameSetsResponse struct {
	Sets []NameSetResponse `json:"sets"`
} // @name NameSetsResponse

// GetSetsHandler handles GET /sets requests.
type GetSetsHandler struct {
	svc *appsvcs.Services
}

// NewGetSetsHandler returns a GetSetsHandler backed by the given services.
func NewGetSetsHandler(svc *appsvcs.Services) *GetSetsHandler {
	return &GetSetsHandler{svc: svc}
}

// Execute lists the catalog's name sets.
//
//	@Summary		List name sets
//	@Description	Returns all name sets in catalog order
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	NameSetsResponse
//	@Router			/sets [get]
func (h *GetSetsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	sets, err := h.svc.Queue.Sets(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := NameSetsResponse{Sets: make([]NameSetResponse, 0, len(sets))}
	for _, s := range sets {
		resp.Sets = append(resp.Sets, NameSetResponse{
			ID:       s.ID,
			Slug:     s.Slug,
			Title:    s.Title,
			Language: s.Language,
			Style:    s.Style,
		})
	}
	httpx.JSON(w, http.StatusOK, resp)
}
