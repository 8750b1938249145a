package descriptions

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/middleware"
	"dog-show-club/internal/web"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/descriptions", func(dr chi.Router) {
		dr.Post("/", createDescriptionHandler(svc))
		dr.Get("/{descriptionID}", getDescriptionHandler(svc))
		dr.Put("/{descriptionID}", updateDescriptionHandler(svc))
		dr.Delete("/{descriptionID}", deleteDescriptionHandler(svc))
		dr.Patch("/{descriptionID}/finalize", finalizeDescriptionHandler(svc))
		dr.Get("/{descriptionID}/versions", listVersionsHandler(svc))
	})
}

type createDescriptionRequest struct {
	ShowID  string `json:"show_id" validate:"required"`
	DogID   string `json:"dog_id" validate:"required"`
	JudgeID string `json:"judge_id" validate:"required"`

	DogClass string `json:"dog_class" validate:"required"`

	// Exactamente uno de los dos, según la clase.
	Grade          string `json:"grade"`
	BabyPuppyGrade string `json:"baby_puppy_grade"`

	Title     string `json:"title"`
	Placement int    `json:"placement" validate:"min=0,max=4"`
	Content   string `json:"content"`
}

type updateDescriptionRequest struct {
	DogClass       *string `json:"dog_class"`
	Grade          *string `json:"grade"`
	BabyPuppyGrade *string `json:"baby_puppy_grade"`
	Title          *string `json:"title"`
	Placement      *int    `json:"placement"`
	Content        *string `json:"content"`
}

type descriptionResponse struct {
	ID          string `json:"id"`
	ShowID      string `json:"show_id"`
	DogID       string `json:"dog_id"`
	JudgeID     string `json:"judge_id"`
	SecretaryID string `json:"secretary_id"`

	DogClass string `json:"dog_class"`

	// En el wire mantenemos los dos campos excluyentes.
	Grade          string `json:"grade,omitempty"`
	BabyPuppyGrade string `json:"baby_puppy_grade,omitempty"`

	Title     string `json:"title,omitempty"`
	Placement int    `json:"placement,omitempty"`
	Content   string `json:"content,omitempty"`

	Version     int        `json:"version"`
	IsFinal     bool       `json:"is_final"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type revisionResponse struct {
	Version        int       `json:"version"`
	DogClass       string    `json:"dog_class"`
	Grade          string    `json:"grade,omitempty"`
	BabyPuppyGrade string    `json:"baby_puppy_grade,omitempty"`
	Title          string    `json:"title,omitempty"`
	Placement      int       `json:"placement,omitempty"`
	Content        string    `json:"content,omitempty"`
	ArchivedAt     time.Time `json:"archived_at"`
}

// foldGrade aplica la regla XOR antes de cualquier llamada al service:
// clase baby/puppy exige baby_puppy_grade, el resto exige grade.
func foldGrade(class DogClass, grade, babyPuppyGrade string) (Grade, error) {
	if grade != "" && babyPuppyGrade != "" {
		return Grade{}, apperr.Validation("grade and baby_puppy_grade are mutually exclusive")
	}

	switch ScaleForClass(class) {
	case ScaleBabyPuppy:
		if babyPuppyGrade == "" {
			return Grade{}, apperr.Validation("baby and puppy classes require baby_puppy_grade")
		}
		return Grade{Scale: ScaleBabyPuppy, Value: babyPuppyGrade}, nil
	default:
		if grade == "" {
			return Grade{}, apperr.Validation("this dog_class requires grade")
		}
		return Grade{Scale: ScaleStandard, Value: grade}, nil
	}
}

// createDescriptionHandler godoc
// @Summary Create a judge description for a dog in a show
// @Tags descriptions
// @Accept json
// @Success 201 {object} descriptionResponse
// @Failure 403 "secretary not assigned to the dog's breed for this show"
// @Failure 409 "duplicate (show, dog, judge)"
// @Failure 422 "show no longer accepts descriptions"
// @Router /api/descriptions [post]
func createDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req createDescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}
		if err := web.Validate(req); err != nil {
			web.WriteError(w, r, err)
			return
		}

		class, ok := ParseDogClass(req.DogClass)
		if !ok {
			web.WriteError(w, r, apperr.Validation("unknown dog_class"))
			return
		}
		grade, err := foldGrade(class, req.Grade, req.BabyPuppyGrade)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		var title Title
		if req.Title != "" {
			title, ok = ParseTitle(req.Title)
			if !ok {
				web.WriteError(w, r, apperr.Validation("unknown title"))
				return
			}
		}

		d, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			ShowID:    req.ShowID,
			DogID:     req.DogID,
			JudgeID:   req.JudgeID,
			DogClass:  class,
			Grade:     grade,
			Title:     title,
			Placement: req.Placement,
			Content:   req.Content,
		})
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusCreated, toDescriptionResponse(d))
	}
}

func getDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "descriptionID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toDescriptionResponse(d))
	}
}

func updateDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		var req updateDescriptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.WriteError(w, r, apperr.Validation("invalid json body"))
			return
		}

		in := UpdateInput{
			Placement: req.Placement,
			Content:   req.Content,
		}

		if req.DogClass != nil {
			class, ok := ParseDogClass(*req.DogClass)
			if !ok {
				web.WriteError(w, r, apperr.Validation("unknown dog_class"))
				return
			}
			in.DogClass = &class
		}

		// Si viene cualquiera de los campos de nota, la plegamos contra
		// la clase final; el service revalida con el estado resultante.
		if req.Grade != nil || req.BabyPuppyGrade != nil {
			current, err := svc.GetByID(r.Context(), chi.URLParam(r, "descriptionID"))
			if err != nil {
				web.WriteError(w, r, err)
				return
			}
			class := current.DogClass
			if in.DogClass != nil {
				class = *in.DogClass
			}
			grade, err := foldGrade(class, deref(req.Grade), deref(req.BabyPuppyGrade))
			if err != nil {
				web.WriteError(w, r, err)
				return
			}
			in.Grade = &grade
		}

		if req.Title != nil {
			var title Title
			if *req.Title != "" {
				title, ok = ParseTitle(*req.Title)
				if !ok {
					web.WriteError(w, r, apperr.Validation("unknown title"))
					return
				}
			}
			in.Title = &title
		}

		d, err := svc.Update(r.Context(), chi.URLParam(r, "descriptionID"), claims.UserID, in)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toDescriptionResponse(d))
	}
}

func deleteDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "descriptionID"), claims.UserID); err != nil {
			web.WriteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// finalizeDescriptionHandler godoc
// @Summary Finalize a description (terminal)
// @Tags descriptions
// @Failure 422 "already finalized"
// @Router /api/descriptions/{descriptionID}/finalize [patch]
func finalizeDescriptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		d, err := svc.Finalize(r.Context(), chi.URLParam(r, "descriptionID"), claims.UserID)
		if err != nil {
			web.WriteError(w, r, err)
			return
		}
		web.WriteJSON(w, http.StatusOK, toDescriptionResponse(d))
	}
}

func listVersionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			web.WriteUnauthorized(w, r)
			return
		}

		revs, err := svc.ListRevisions(r.Context(), chi.URLParam(r, "descriptionID"))
		if err != nil {
			web.WriteError(w, r, err)
			return
		}

		out := make([]revisionResponse, 0, len(revs))
		for _, rev := range revs {
			out = append(out, toRevisionResponse(rev))
		}
		web.WriteJSON(w, http.StatusOK, out)
	}
}

func toDescriptionResponse(d Description) descriptionResponse {
	resp := descriptionResponse{
		ID:          d.ID,
		ShowID:      d.ShowID,
		DogID:       d.DogID,
		JudgeID:     d.JudgeID,
		SecretaryID: d.SecretaryID,
		DogClass:    string(d.DogClass),
		Title:       string(d.Title),
		Placement:   d.Placement,
		Content:     d.Content,
		Version:     d.Version,
		IsFinal:     d.IsFinal,
		FinalizedAt: d.FinalizedAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if d.Grade.Scale == ScaleBabyPuppy {
		resp.BabyPuppyGrade = d.Grade.Value
	} else {
		resp.Grade = d.Grade.Value
	}
	return resp
}

func toRevisionResponse(rev Revision) revisionResponse {
	resp := revisionResponse{
		Version:    rev.Version,
		DogClass:   string(rev.DogClass),
		Title:      string(rev.Title),
		Placement:  rev.Placement,
		Content:    rev.Content,
		ArchivedAt: rev.CreatedAt,
	}
	if rev.Grade.Scale == ScaleBabyPuppy {
		resp.BabyPuppyGrade = rev.Grade.Value
	} else {
		resp.Grade = rev.Grade.Value
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
