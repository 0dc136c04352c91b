package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/catalog/application/services"
)

// AddNameRequest is the request body for POST /names.
type AddNameRequest struct {
	SetSlug string `json:"set_slug" validate:"required,max=64" example:"english-cute"`
	Name    string `json:"name"     validate:"required,min=1,max=64" example:"Waffles"`
	Species string `json:"species"  validate:"omitempty,max=32" example:"dog"`
	Gender  string `json:"gender"   validate:"omitempty,oneof=male female neutral" example:"neutral"`
} // @name AddNameRequest

// AddNameResponse is returned on successful custom name creation.
type AddNameResponse struct {
	ID      uuid.UUID `json:"id"       example:"123e4567-e89b-12d3-a456-426614174000"`
	Name    string    `json:"name"     example:"Waffles"`
	SetSlug string    `json:"set_slug" example:"english-cute"`
} // @name AddNameResponse

// PostNameHandler handles POST /names requests.
type PostNameHandler struct {
	svc *appsvcs.Services
}

// NewPostNameHandler returns a PostNameHandler backed by the given services.
func NewPostNameHandler(svc *appsvcs.Services) *PostNameHandler {
	return &PostNameHandler{svc: svc}
}

// Execute adds a custom name visible only to the caller's household.
//
//	@Summary		Add custom name
//	@Description	Adds a household-scoped custom name to a catalog set
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		AddNameRequest	true	"Custom name"
//	@Success		201		{object}	AddNameResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/names [post]
func (h *PostNameHandler) Execute(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[AddNameRequest](w, r)
	if !ok {
		return
	}

	name, err := h.svc.Names.AddCustomName(r.Context(), identity.HouseholdID, req.SetSlug, req.Name, req.Species, req.Gender)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, AddNameResponse{
		ID:      name.ID,
		Name:    name.Text,
		SetSlug: name.SetSlug,
	})
}
