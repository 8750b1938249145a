package dogs

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
	r.Route("/dogs", func(dr chi.Router) {
		dr.Get("/", listDogsHandler(svc, maxLimit))
		dr.Post("/", createDogHandler(svc))
		dr.Get("/{dogID}", getDogHandler(svc))
		dr.Put("/{dogID}", updateDogHandler(svc))
		dr.Delete("/{dogID}", deleteDogHandler(svc))
		dr.Get("/{dogID}/owners", listDogOwnersHandler(svc))
	})
}

type ownerLinkRequest struct {
	OwnerID   string `json:"owner_id" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

type createDogRequest struct {
	Name      string `json:"name" validate:"required"`
	BreedID   string `json:"breed_id" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	BirthDate string `json:"birth_date" validate:"required"` // YYYY-MM-DD
	Microchip string `json:"microchip" validate:"required,len=15,numeric"`

	KennelClubNumber string `json:"kennel_club_number"`
	KennelName       string `json:"kennel_name"`
	FatherName       string `json:"father_name"`
	MotherName       string `json:"mother_name"`

	Owners []ownerLinkRequest `json:"owners" validate:"required,min=1,dive"`
}

type updateDogRequest struct {
	Name      *string `json:"name"`
	BreedID   *string `json:"breed_id"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
	Microchip *string `json:"microchip"`

	KennelClubNumber *string `json:"kennel_club_number"`
	KennelName       *string `json:"kennel_name"`
	FatherName       *string `json:"father_name"`
	MotherName       *string `json:"mother_name"`

	Owners []ownerLinkRequest `json:"owners"`
}

type ownerLinkResponse struct {
	OwnerID   string `json:"owner_id"`
	IsPrimary bool   `json:"is_primary"`
}

type dogResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	BreedID          string              `json:"breed_id"`
	Gender           string              `json:"gender"`
	BirthDate        string              `json:"birth_date"`
	Microchip        string              `json:"microchip"`
	KennelClubNumber string              `json:"kennel_club_number,omitempty"`
	KennelName       string              `json:"kennel_name,omitempty"`
	FatherName       string              `json:"father_name,omitempty"`
	MotherName       string              `json:"mother_name,omitempty"`
	Owners           []ownerLinkResponse `json:"owners"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	DeletedAt        *time.Time          `json:"deleted_at,omitempty"`
}

// createDogHandler godoc
// @Summary Register a dog with its owners
// @Tags dogs
// @Accept json
// @Success 201 {object} dogResponse
// @Failure 400 "validation error (microchip must be 15 digits)"
// @Failure 409 "microchip already registered"
// @Router /api/dogs [post]
func createDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req createDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		bd, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			web.WriteError(w, r, apperr.Validation("birth_date must be YYYY-MM-DD"))
			return
		}

		d, err := svc.Create(r.Context(), CreateInput{
			Name:             req.Name,
			BreedID:          req.BreedID,
			Gender:           req.Gender,
			BirthDate:        bd,
			Microchip:        req.Microchip,
			KennelClubNumber: req.KennelClubNumber,
			KennelName:       req.KennelName,
			FatherName:       req.FatherName,
			MotherName:       req.MotherName,
			Owners:           toOwnerLinks(req.Owners),
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toDogResponse(d))
	}
}

func listDogsHandler(svc *Service, maxLimit int) http.HandlerFunc {
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
			BreedID: q.Get("breed_id"),
			OwnerID: q.Get("owner_id"),
			Gender:  q.Get("gender"),
			Search:  q.Get("search"),
			Offset:  page.Offset(),
			Limit:   page.Limit,
		}
		if v := q.Get("include_deleted"); v != "" {
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

		out := make([]dogResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDogResponse(d))
		}
		web.WriteJSON(w, http.StatusOK, web.NewPaginated(out, page, total))
	}
}

func getDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func updateDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req updateDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		in := UpdateInput{
			Name:             req.Name,
			BreedID:          req.BreedID,
			Gender:           req.Gender,
			Microchip:        req.Microchip,
			KennelClubNumber: req.KennelClubNumber,
			KennelName:       req.KennelName,
			FatherName:       req.FatherName,
			MotherName:       req.MotherName,
		}
		if req.BirthDate != nil {
			bd, err := time.Parse("2006-01-02", *req.BirthDate)
			if err != nil {
				web.WriteError(w, r, apperr.Validation("birth_date must be YYYY-MM-DD"))
				return
			}
			in.BirthDate = &bd
		}
		if req.Owners != nil {
			in.Owners = toOwnerLinks(req.Owners)
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "dogID"), in)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toDogResponse(d))
	}
}

func deleteDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "dogID")); err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listDogOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dogID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]ownerLinkResponse, 0, len(d.Owners))
		for _, l := range d.Owners {
			out = append(out, ownerLinkResponse{OwnerID: l.OwnerID, IsPrimary: l.IsPrimary})
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func toOwnerLinks(reqs []ownerLinkRequest) []OwnerLink {
	links := make([]OwnerLink, 0, len(reqs))
	for _, lr := range reqs {
		links = append(links, OwnerLink{OwnerID: lr.OwnerID, IsPrimary: lr.IsPrimary})
	}
	return links
}

func toDogResponse(d Dog) dogResponse {
	owners := make([]ownerLinkResponse, 0, len(d.Owners))
	for _, l := range d.Owners {
		owners = append(owners, ownerLinkResponse{OwnerID: l.OwnerID, IsPrimary: l.IsPrimary})
	}
	return dogResponse{
		ID:               d.ID,
		Name:             d.Name,
		BreedID:          d.BreedID,
		Gender:           string(d.Gender),
		BirthDate:        d.BirthDate.Format("2006-01-02"),
		Microchip:        d.Microchip,
		KennelClubNumber: d.KennelClubNumber,
		KennelName:       d.KennelName,
		FatherName:       d.FatherName,
		MotherName:       d.MotherName,
		Owners:           owners,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		DeletedAt:        d.DeletedAt,
	}
}
