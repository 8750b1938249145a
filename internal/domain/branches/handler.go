package branches

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
	r.Route("/branches", func(br chi.Router) {
		br.Get("/", listBranchesHandler(svc, maxLimit))
		br.Get("/{branchID}", getBranchHandler(svc))
		br.Post("/", createBranchHandler(svc))
	})
}

type createBranchRequest struct {
	Name   string `json:"name" validate:"required"`
	City   string `json:"city"`
	Region string `json:"region"`
}

type branchResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listBranchesHandler(svc *Service, maxLimit int) http.HandlerFunc {
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
			Region: r.URL.Query().Get("region"),
			Offset: page.Offset(),
			Limit:  page.Limit,
		}

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

		out := make([]branchResponse, 0, len(items))
		for _, b := range items {
			out = append(out, toBranchResponse(b))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getBranchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		b, err := svc.GetByID(r.Context(), chi.URLParam(r, "branchID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toBranchResponse(b))
	}
}

func createBranchHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageReferenceData() {
			web.WriteError(w, r, apperr.Authorization("only admins may manage branches"))
			return
		}

		var req createBranchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		b, err := svc.Create(r.Context(), CreateInput{
			Name:   req.Name,
			City:   req.City,
			Region: req.Region,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toBranchResponse(b))
	}
}

func toBranchResponse(b Branch) branchResponse {
	return branchResponse{
		ID:        b.ID,
		Name:      b.Name,
		City:      b.City,
		Region:    b.Region,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
