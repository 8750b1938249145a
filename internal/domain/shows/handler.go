package shows

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/middleware"
	"dog-show-club/internal/web"
)

// RegisterRoutes registra las rutas de shows salvo las de registrations,
// que viven en el paquete registrations aunque cuelguen de /shows/{id}.
func RegisterRoutes(r chi.Router, svc *Service, maxLimit int) {
	r.Route("/shows", func(sr chi.Router) {
		sr.Get("/", listShowsHandler(svc, maxLimit))
		sr.Post("/", createShowHandler(svc))
		sr.Get("/{showID}", getShowHandler(svc))
		sr.Put("/{showID}", updateShowHandler(svc))
		sr.Delete("/{showID}", deleteShowHandler(svc))
		sr.Patch("/{showID}/status", transitionShowHandler(svc))

		sr.Post("/{showID}/assignments", createAssignmentHandler(svc))
		sr.Get("/{showID}/assignments", listAssignmentsHandler(svc))
		sr.Delete("/{showID}/assignments/{assignmentID}", deleteAssignmentHandler(svc))
	})
}

type createShowRequest struct {
	Name        string `json:"name" validate:"required"`
	ShowDate    string `json:"show_date" validate:"required"` // YYYY-MM-DD
	Location    string `json:"location"`
	BranchID    string `json:"branch_id"`
	Description string `json:"description"`
}

type updateShowRequest struct {
	Name        *string `json:"name"`
	ShowDate    *string `json:"show_date"`
	Location    *string `json:"location"`
	BranchID    *string `json:"branch_id"`
	Description *string `json:"description"`
}

type transitionShowRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignmentRequest struct {
	SecretaryUserID string `json:"secretary_user_id" validate:"required"`
	BreedID         string `json:"breed_id" validate:"required"`
}

type showResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	ShowDate       string     `json:"show_date"`
	Location       string     `json:"location"`
	BranchID       string     `json:"branch_id,omitempty"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	RegisteredDogs int        `json:"registered_dogs"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

type assignmentResponse struct {
	ID              string    `json:"id"`
	ShowID          string    `json:"show_id"`
	SecretaryUserID string    `json:"secretary_user_id"`
	BreedID         string    `json:"breed_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func createShowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage shows"))
			return
		}

		var req createShowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		date, err := time.Parse("2006-01-02", req.ShowDate)
		if err != nil {
			web.WriteError(w, r, apperr.Validation("show_date must be YYYY-MM-DD"))
			return
		}

		sh, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			ShowDate:    date,
			Location:    req.Location,
			BranchID:    req.BranchID,
			Description: req.Description,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toShowResponse(sh))
	}
}

func listShowsHandler(svc *Service, maxLimit int) http.HandlerFunc {
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

		q := r.URL.Query()
		f := ListFilter{
			Status: q.Get("status"),
			Search: q.Get("search"),
			Offset: page.Offset(),
			Limit:  page.Limit,
		}
		if v := q.Get("status"); v != "" {
			if _, ok := ParseStatus(v); !ok {
				web.WriteError(w, r, apperr.Validation("unknown show status"))
				return
			}
		}

		items, total, err := svc.List(r.Context(), f)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]showResponse, 0, len(items))
		for _, sh := range items {
			out = append(out, toShowResponse(sh))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getShowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		sh, err := svc.GetByID(r.Context(), chi.URLParam(r, "showID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toShowResponse(sh))
	}
}

func updateShowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage shows"))
			return
		}

		var req updateShowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			Location:    req.Location,
			BranchID:    req.BranchID,
			Description: req.Description,
		}
		if req.ShowDate != nil {
			date, err := time.Parse("2006-01-02", *req.ShowDate)
			if err != nil {
				web.WriteError(w, r, apperr.Validation("show_date must be YYYY-MM-DD"))
				return
			}
			in.ShowDate = &date
		}

		sh, err := svc.Update(r.Context(), chi.URLParam(r, "showID"), in)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toShowResponse(sh))
	}
}

// transitionShowHandler godoc
// @Summary Advance the show lifecycle
// @Tags shows
// @Failure 422 "transition not allowed from the current status"
// @Router /api/shows/{showID}/status [patch]
func transitionShowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage shows"))
			return
		}

		var req transitionShowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		to, ok := ParseStatus(req.Status)
		if !ok {
			web.WriteError(w, r, apperr.Validation("unknown show status"))
			return
		}

		sh, err := svc.Transition(r.Context(), chi.URLParam(r, "showID"), to)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toShowResponse(sh))
	}
}

func deleteShowHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage shows"))
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "showID")); err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createAssignmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage assignments"))
			return
		}

		var req assignmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		a, err := svc.Assign(r.Context(), chi.URLParam(r, "showID"), AssignInput{
			SecretaryUserID: req.SecretaryUserID,
			BreedID:         req.BreedID,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toAssignmentResponse(a))
	}
}

func listAssignmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		items, err := svc.ListAssignments(r.Context(), chi.URLParam(r, "showID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]assignmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAssignmentResponse(a))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func deleteAssignmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}
		if !claims.CanManageShows() {
			web.WriteError(w, r, apperr.Authorization("only organizers may manage assignments"))
			return
		}

		err := svc.Unassign(r.Context(), chi.URLParam(r, "showID"), chi.URLParam(r, "assignmentID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toShowResponse(s Show) showResponse {
	return showResponse{
		ID:             s.ID,
		Name:           s.Name,
		ShowDate:       s.ShowDate.Format("2006-01-02"),
		Location:       s.Location,
		BranchID:       s.BranchID,
		Description:    s.Description,
		Status:         string(s.Status),
		RegisteredDogs: s.RegisteredDogs,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		DeletedAt:      s.DeletedAt,
	}
}

func toAssignmentResponse(a Assignment) assignmentResponse {
	return assignmentResponse{
		ID:              a.ID,
		ShowID:          a.ShowID,
		SecretaryUserID: a.SecretaryUserID,
		BreedID:         a.BreedID,
		CreatedAt:       a.CreatedAt,
	}
}
