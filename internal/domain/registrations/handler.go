package registrations

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/middleware"
	"dog-show-club/internal/web"
)

// RegisterRoutes cuelga el alta y el listado de /shows/{showID} y deja
// las operaciones por id bajo /registrations.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/shows/{showID}/registrations", func(sr chi.Router) {
		sr.Post("/", registerDogHandler(svc))
		sr.Get("/", listRegistrationsHandler(svc))
	})
	r.Route("/registrations", func(rr chi.Router) {
		rr.Get("/{registrationID}", getRegistrationHandler(svc))
		rr.Delete("/{registrationID}", deleteRegistrationHandler(svc))
	})
}

type inlineDescriptionRequest struct {
	JudgeID        string `json:"judge_id" validate:"required"`
	Grade          string `json:"grade"`
	BabyPuppyGrade string `json:"baby_puppy_grade"`
	Title          string `json:"title"`
	Placement      int    `json:"placement" validate:"min=0,max=4"`
	Content        string `json:"content"`
}

type registerDogRequest struct {
	DogID    string `json:"dog_id" validate:"required"`
	DogClass string `json:"dog_class" validate:"required"`

	Description *inlineDescriptionRequest `json:"description,omitempty" validate:"omitempty"`
}

type registrationResponse struct {
	ID            string    `json:"id"`
	ShowID        string    `json:"show_id"`
	DogID         string    `json:"dog_id"`
	DogClass      string    `json:"dog_class"`
	CatalogNumber int       `json:"catalog_number"`
	CreatedAt     time.Time `json:"created_at"`
}

// registerDogHandler godoc
// @Summary Register a dog into a show, optionally with an inline description
// @Tags registrations
// @Accept json
// @Success 201 {object} registrationResponse
// @Failure 409 "dog already registered in this show"
// @Failure 422 "show does not accept registrations"
// @Router /api/shows/{showID}/registrations [post]
func registerDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req registerDogRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		class, ok := descriptions.ParseDogClass(req.DogClass)
		if !ok {
			web.WriteError(w, r, apperr.Validation("unknown dog_class"))
			return
		}

		in := RegisterInput{DogID: req.DogID, DogClass: class}
		if req.Description != nil {
			inline, err := foldInlineDescription(class, *req.Description)
			if err != nil {
				web.WriteError(w, r, err)
				return
			}
			in.Description = &inline
		}

		reg, err := svc.Register(r.Context(), chi.URLParam(r, "showID"), claims.UserID, in)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toRegistrationResponse(reg))
	}
}

func listRegistrationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		regs, err := svc.ListByShow(r.Context(), chi.URLParam(r, "showID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			out = append(out, toRegistrationResponse(reg))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func getRegistrationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		reg, err := svc.GetByID(r.Context(), chi.URLParam(r, "registrationID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toRegistrationResponse(reg))
	}
}

func deleteRegistrationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "registrationID")); err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// foldInlineDescription aplica la misma regla XOR que el alta directa
// de descripciones: la clase decide qué campo de nota es válido.
func foldInlineDescription(class descriptions.DogClass, req inlineDescriptionRequest) (InlineDescription, error) {
	if req.Grade != "" && req.BabyPuppyGrade != "" {
		return InlineDescription{}, apperr.Validation("grade and baby_puppy_grade are mutually exclusive")
	}

	var grade descriptions.Grade
	switch descriptions.ScaleForClass(class) {
	case descriptions.ScaleBabyPuppy:
		if req.BabyPuppyGrade == "" {
			return InlineDescription{}, apperr.Validation("baby and puppy classes require baby_puppy_grade")
		}
		grade = descriptions.Grade{Scale: descriptions.ScaleBabyPuppy, Value: req.BabyPuppyGrade}
	default:
		if req.Grade == "" {
			return InlineDescription{}, apperr.Validation("this dog_class requires grade")
		}
		grade = descriptions.Grade{Scale: descriptions.ScaleStandard, Value: req.Grade}
	}

	var title descriptions.Title
	if req.Title != "" {
		var ok bool
		title, ok = descriptions.ParseTitle(req.Title)
		if !ok {
			return InlineDescription{}, apperr.Validation("unknown title")
		}
	}

	return InlineDescription{
		JudgeID:   req.JudgeID,
		Grade:     grade,
		Title:     title,
		Placement: req.Placement,
		Content:   req.Content,
	}, nil
}

func toRegistrationResponse(reg Registration) registrationResponse {
	return registrationResponse{
		ID:            reg.ID,
		ShowID:        reg.ShowID,
		DogID:         reg.DogID,
		DogClass:      string(reg.DogClass),
		CatalogNumber: reg.CatalogNumber,
		CreatedAt:     reg.CreatedAt,
	}
}
