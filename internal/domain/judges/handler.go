package judges

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
	r.Route("/judges", func(jr chi.Router) {
		jr.Get("/", listJudgesHandler(svc, maxLimit))
		jr.Get("/{judgeID}", getJudgeHandler(svc))
		jr.Post("/", createJudgeHandler(svc))
	})
}

type createJudgeRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	LicenseNumber string `json:"license_number" validate:"required"`
	Country       string `json:"country"`
	FCIGroups     []int  `json:"fci_groups" validate:"dive,min=1,max=10"`
}

type judgeResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	LicenseNumber string    `json:"license_number"`
	Country       string    `json:"country"`
	FCIGroups     []int     `json:"fci_groups"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func listJudgesHandler(svc *Service, maxLimit int) http.HandlerFunc {
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

		out := make([]judgeResponse, 0, len(items))
		for _, j := range items {
			out = append(out, toJudgeResponse(j))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getJudgeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		j, err := svc.GetByID(r.Context(), chi.URLParam(r, "judgeID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toJudgeResponse(j))
	}
}

func createJudgeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageReferenceData() {
			web.WriteError(w, r, apperr.Authorization("only admins may manage judges"))
			return
		}

		var req createJudgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		j, err := svc.Create(r.Context(), CreateInput{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			LicenseNumber: req.LicenseNumber,
			Country:       req.Country,
			FCIGroups:     req.FCIGroups,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toJudgeResponse(j))
	}
}

func toJudgeResponse(j Judge) judgeResponse {
	groups := j.FCIGroups
	if groups == nil {
		groups = []int{}
	}
	return judgeResponse{
		ID:            j.ID,
		FirstName:     j.FirstName,
		LastName:      j.LastName,
		LicenseNumber: j.LicenseNumber,
		Country:       j.Country,
		FCIGroups:     groups,
		IsActive:      j.IsActive,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}
