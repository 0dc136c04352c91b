package handlers

import (
	"net/http"

	"github.com/pawmatch/pawmatch/pkg/auth"
	"github.com/pawmatch/pawmatch/pkg/errhttp"
	"github.com/pawmatch/pawmatch/pkg/httpx"
	pkgvalidator "github.com/pawmatch/pawmatch/pkg/validator"
	appsvcs "github.com/pawmatch/pawmatch/services/catalog/application/services"
	"github.com/pawmatch/pawmatch/services/catalog/domain/models"
)

// FilterRequest is the request body for PUT /filter. All fields optional;
// omitted fields mean unrestricted. A min above max is stored as-is and
// simply yields an empty queue.
type FilterRequest struct {
	Species    string   `json:"species"     validate:"omitempty,max=32" example:"dog"`
	Gender     string   `json:"gender"      validate:"omitempty,oneof=male female neutral any" example:"female"`
	StartsWith string   `json:"starts_with" validate:"omitempty,max=8" example:"b"`
	MinLength  int      `json:"min_length"  validate:"omitempty,gte=0" example:"3"`
	MaxLength  int      `json:"max_length"  validate:"omitempty,gte=0" example:"8"`
	Sets       []string `json:"sets"        validate:"omitempty,dive,max=64" example:"english-cute"`
} // @name FilterRequest

// FilterResponse is the member's stored filter.
type FilterResponse struct {
	Species    string   `json:"species"     example:"dog"`
	Gender     string   `json:"gender"      example:"female"`
	StartsWith string   `json:"starts_with" example:"b"`
	MinLength  int      `json:"min_length"  example:"3"`
	MaxLength  int      `json:"max_length"  example:"8"`
	Sets       []string `json:"sets"        example:"english-cute"`
} // @name FilterResponse

// FilterHandler handles GET /filter and PUT /filter requests.
type FilterHandler struct {
	svc *appsvcs.Services
}

// NewFilterHandler returns a FilterHandler backed by the given services.
func NewFilterHandler(svc *appsvcs.Services) *FilterHandler {
	return &FilterHandler{svc: svc}
}

// Get returns the member's stored filter.
//
//	@Summary		Get filter
//	@Description	Returns the authenticated member's queue filter; zero values mean unrestricted
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	FilterResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/filter [get]
func (h *FilterHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	filter, err := h.svc.Queue.Filter(r.Context(), identity.MemberID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, filterResponse(filter))
}

// Put replaces the member's filter. Recorded swipes are untouched; the
// filter only narrows what the queue offers next.
//
//	@Summary		Set filter
//	@Description	Replaces the authenticated member's queue filter
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		FilterRequest	true	"Filter"
//	@Success		200		{object}	FilterResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/filter [put]
func (h *FilterHandler) Put(w http.ResponseWriter, r *http.Request) {
	identity, err := auth.IdentityFromCtx(r.Context())
	if err != nil {
		httpx.JSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	req, ok := pkgvalidator.ValidateRequest[FilterRequest](w, r)
	if !ok {
		return
	}

	filter := models.Filter{
		Species:    req.Species,
		Gender:     req.Gender,
		StartsWith: req.StartsWith,
		MinLength:  req.MinLength,
		MaxLength:  req.MaxLength,
		Sets:       req.Sets,
	}
	if err := h.svc.Queue.SetFilter(r.Context(), identity.MemberID, filter); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, filterResponse(filter.Normalized()))
}

func filterResponse(f models.Filter) FilterResponse {
	return FilterResponse{
		Species:    f.Species,
		Gender:     f.Gender,
		StartsWith: f.StartsWith,
		MinLength:  f.MinLength,
		MaxLength:  f.MaxLength,
		Sets:       f.Sets,
	}
}
