package breeds

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/middleware"
	"dog-show-club/internal/web"
)

func RegisterRoutes(r chi.Router, svc *Service, maxLimit int) {
	r.Route("/breeds", func(br chi.Router) {
		br.Get("/", listBreedsHandler(svc, maxLimit))
		br.Get("/{breedID}", getBreedHandler(svc))

		// Mantenimiento de data de referencia (solo admin).
		br.Post("/", createBreedHandler(svc))
		br.Put("/{breedID}", updateBreedHandler(svc))
	})
}

type createBreedRequest struct {
	NamePL    string `json:"name_pl" validate:"required"`
	NameEN    string `json:"name_en" validate:"required"`
	FCIGroup  int    `json:"fci_group" validate:"required,min=1,max=10"`
	FCINumber int    `json:"fci_number" validate:"required,min=1"`
}

type updateBreedRequest struct {
	NamePL    *string `json:"name_pl"`
	NameEN    *string `json:"name_en"`
	FCIGroup  *int    `json:"fci_group"`
	FCINumber *int    `json:"fci_number"`
	IsActive  *bool   `json:"is_active"`
}

type breedResponse struct {
	ID        string    `json:"id"`
	NamePL    string    `json:"name_pl"`
	NameEN    string    `json:"name_en"`
	FCIGroup  int       `json:"fci_group"`
	FCINumber int       `json:"fci_number"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listBreedsHandler godoc
// @Summary List breeds
// @Tags breeds
// @Param fci_group query int false "FCI group 1..10"
// @Param is_active query bool false "Defaults to active only"
// @Param search query string false "Substring over both names"
// @Success 200 {object} web.Paginated[breedResponse]
// @Router /api/breeds [get]
func listBreedsHandler(svc *Service, maxLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		page, err := web.ParsePage(r, maxLimit)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		f := ListFilter{
			Search: r.URL.Query().Get("search"),
			Offset: page.Offset(),
			Limit:  page.Limit,
		}

		if v := r.URL.Query().Get("fci_group"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 10 {
				web.WriteError(w, r, apperr.Validation("fci_group must be between 1 and 10"))
				return
			}
			f.FCIGroup = &n
		}

		// Default: solo razas activas, salvo que el caller lo pida explícito.
		active := true
		f.IsActive = &active
		if v := r.URL.Query().Get("is_active"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				web.WriteError(w, r, apperr.Validation("is_active must be true or false"))
				return
			}
			f.IsActive = &b
		}

		items, total, err := svc.List(r.Context(), f)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBreedResponse(b))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "breedID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

func createBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageReferenceData() {
			web.WriteError(w, r, apperr.Authorization("only admins may manage breeds"))
			return
		}

		var req createBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{
			NamePL:    req.NamePL,
			NameEN:    req.NameEN,
			FCIGroup:  req.FCIGroup,
			FCINumber: req.FCINumber,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toBreedResponse(b))
	}
}

func updateBreedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageReferenceData() {
			web.WriteError(w, r, apperr.Authorization("only admins may manage breeds"))
			return
		}

		var req updateBreedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		b, err := svc.Update(r.Context(), chi.URLParam(r, "breedID"), UpdateInput{
			NamePL:    req.NamePL,
			NameEN:    req.NameEN,
			FCIGroup:  req.FCIGroup,
			FCINumber: req.FCINumber,
			IsActive:  req.IsActive,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toBreedResponse(b))
	}
}

func toBreedResponse(b Breed) breedResponse {
	return breedResponse{
		ID:        b.ID,
		NamePL:    b.NamePL,
		NameEN:    b.NameEN,
		FCIGroup:  b.FCIGroup,
		FCINumber: b.FCINumber,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
