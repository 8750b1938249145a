package owners

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
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", listOwnersHandler(svc, maxLimit))
		or.Post("/", createOwnerHandler(svc))
		or.Get("/{ownerID}", getOwnerHandler(svc))
		or.Put("/{ownerID}", updateOwnerHandler(svc))
		or.Delete("/{ownerID}", deleteOwnerHandler(svc))
	})
}

type createOwnerRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`

	// eq=true: sin consentimiento no hay alta.
	GDPRConsent bool `json:"gdpr_consent" validate:"eq=true"`
}

type updateOwnerRequest struct {
	// Punteros para PATCH-like PUT: nil = no tocar.
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Street     *string `json:"street"`
	City       *string `json:"city"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
}

type ownerResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Street        string    `json:"street"`
	City          string    `json:"city"`
	PostalCode    string    `json:"postal_code"`
	Country       string    `json:"country"`
	GDPRConsent   bool      `json:"gdpr_consent"`
	GDPRConsentAt time.Time `json:"gdpr_consent_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// createOwnerHandler godoc
// @Summary Register an owner
// @Tags owners
// @Accept json
// @Success 201 {object} ownerResponse
// @Failure 400 "validation error (gdpr_consent must be true)"
// @Failure 409 "email already in use"
// @Router /api/owners [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req createOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		o, err := svc.Create(r.Context(), CreateInput{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			Phone:       req.Phone,
			Street:      req.Street,
			City:        req.City,
			PostalCode:  req.PostalCode,
			Country:     req.Country,
			GDPRConsent: req.GDPRConsent,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

func listOwnersHandler(svc *Service, maxLimit int) http.HandlerFunc {
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
			City:   r.URL.Query().Get("city"),
			Offset: page.Offset(),
			Limit:  page.Limit,
		}
		if v := r.URL.Query().Get("include_deleted"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				web.WriteError(w, r, apperr.Validation("include_deleted must be true or false"))
				return
			}
			f.IncludeDeleted = b
		}

		items, total, err := svc.List(r.Context(), f)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		o, err := svc.GetByID(r.Context(), chi.URLParam(r, "ownerID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req updateOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		o, err := svc.Update(r.Context(), chi.URLParam(r, "ownerID"), UpdateInput{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Email:      req.Email,
			Phone:      req.Phone,
			Street:     req.Street,
			City:       req.City,
			PostalCode: req.PostalCode,
			Country:    req.Country,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// deleteOwnerHandler godoc
// @Summary Soft-delete an owner
// @Tags owners
// @Failure 422 "owner still has registered dogs"
// @Router /api/owners/{ownerID} [delete]
func deleteOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "ownerID")); err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:            o.ID,
		FirstName:     o.FirstName,
		LastName:      o.LastName,
		Email:         o.Email,
		Phone:         o.Phone,
		Street:        o.Street,
		City:          o.City,
		PostalCode:    o.PostalCode,
		Country:       o.Country,
		GDPRConsent:   o.GDPRConsent,
		GDPRConsentAt: o.GDPRConsentAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}
