package descriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/dogs"
	"dog-show-club/internal/domain/judges"
	"dog-show-club/internal/domain/shows"
	"dog-show-club/internal/metrics"
)

// Directorios implementados por los services vecinos; interfaces locales
// para poder fakear en tests sin arrastrar esos paquetes.
type ShowDirectory interface {
	GetByID(ctx context.Context, id string) (shows.Show, error)
	IsSecretaryAssigned(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error)
}

type DogDirectory interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

type JudgeDirectory interface {
	GetByID(ctx context.Context, id string) (judges.Judge, error)
}

type Service struct {
	repo     Repository
	showDir  ShowDirectory
	dogDir   DogDirectory
	judgeDir JudgeDirectory
	now      func() time.Time
}

func NewService(repo Repository, showDir ShowDirectory, dogDir DogDirectory, judgeDir JudgeDirectory) *Service {
	return &Service{
		repo:     repo,
		showDir:  showDir,
		dogDir:   dogDir,
		judgeDir: judgeDir,
		now:      time.Now,
	}
}

type CreateInput struct {
	ShowID  string
	DogID   string
	JudgeID string

	DogClass  DogClass
	Grade     Grade
	Title     Title
	Placement int
	Content   string
}

// Create valida todo y persiste. secretaryID es el actor autenticado.
func (s *Service) Create(ctx context.Context, secretaryID string, in CreateInput) (Description, error) {
	d, err := s.Prepare(ctx, secretaryID, in)
	if err != nil {
		return Description{}, err
	}

	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Description{}, apperr.Conflict("a description for this show, dog and judge already exists")
		}
		return Description{}, err
	}
	return d, nil
}

// Prepare corre todas las validaciones de Create y construye el record
// sin persistirlo. Lo usa el alta combinada registration+description
// para que el insert ocurra en la misma transacción que la inscripción.
func (s *Service) Prepare(ctx context.Context, secretaryID string, in CreateInput) (Description, error) {
	if strings.TrimSpace(secretaryID) == "" {
		return Description{}, apperr.Authorization("missing secretary identity")
	}
	if err := validateGrade(in.DogClass, in.Grade, in.Placement); err != nil {
		return Description{}, err
	}

	sh, err := s.showDir.GetByID(ctx, in.ShowID)
	if err != nil {
		return Description{}, err
	}
	if sh.Status == shows.StatusCompleted || sh.Status == shows.StatusCancelled {
		return Description{}, apperr.BusinessRule("show is " + string(sh.Status) + "; descriptions can no longer be created")
	}

	dog, err := s.dogDir.GetByID(ctx, in.DogID)
	if err != nil {
		return Description{}, err
	}
	if _, err := s.judgeDir.GetByID(ctx, in.JudgeID); err != nil {
		return Description{}, err
	}

	ok, err := s.showDir.IsSecretaryAssigned(ctx, sh.ID, secretaryID, dog.BreedID)
	if err != nil {
		return Description{}, err
	}
	if !ok {
		return Description{}, apperr.Authorization("secretary is not assigned to this breed for this show")
	}

	if _, err := s.repo.FindByShowDogJudge(ctx, sh.ID, dog.ID, in.JudgeID); err == nil {
		return Description{}, apperr.Conflict("a description for this show, dog and judge already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return Description{}, err
	}

	now := s.now()
	return Description{
		ID:          uuid.NewString(),
		ShowID:      sh.ID,
		DogID:       dog.ID,
		JudgeID:     in.JudgeID,
		SecretaryID: strings.TrimSpace(secretaryID),
		DogClass:    in.DogClass,
		Grade:       in.Grade,
		Title:       in.Title,
		Placement:   in.Placement,
		Content:     strings.TrimSpace(in.Content),
		Version:     1,
		IsFinal:     false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

type UpdateInput struct {
	DogClass  *DogClass
	Grade     *Grade
	Title     *Title
	Placement *int
	Content   *string
}

// Update edita un draft: archiva la version anterior y sube el contador.
func (s *Service) Update(ctx context.Context, id, secretaryID string, in UpdateInput) (Description, error) {
	d, err := s.getEditable(ctx, id, secretaryID)
	if err != nil {
		return Description{}, err
	}

	prev := snapshotOf(d, s.now())

	if in.DogClass != nil {
		d.DogClass = *in.DogClass
	}
	if in.Grade != nil {
		d.Grade = *in.Grade
	}
	if in.Title != nil {
		d.Title = *in.Title
	}
	if in.Placement != nil {
		d.Placement = *in.Placement
	}
	if in.Content != nil {
		d.Content = strings.TrimSpace(*in.Content)
	}

	if err := validateGrade(d.DogClass, d.Grade, d.Placement); err != nil {
		return Description{}, err
	}

	d.Version++
	d.UpdatedAt = s.now()

	if err := s.repo.AddRevision(ctx, prev); err != nil {
		return Description{}, err
	}
	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Description{}, apperr.NotFound("description not found")
		}
		return Description{}, err
	}
	return d, nil
}

// Finalize cierra el opis. Terminal: no hay vuelta atrás ni re-finalize.
func (s *Service) Finalize(ctx context.Context, id, secretaryID string) (Description, error) {
	d, err := s.getEditable(ctx, id, secretaryID)
	if err != nil {
		return Description{}, err
	}

	now := s.now()
	d.IsFinal = true
	d.FinalizedAt = &now
	d.UpdatedAt = now

	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Description{}, apperr.NotFound("description not found")
		}
		return Description{}, err
	}

	metrics.DescriptionsFinalizedTotal.Inc()
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Description, error) {
	d, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Description{}, apperr.NotFound("description not found")
		}
		return Description{}, err
	}
	return d, nil
}

// Delete borra un draft. Las finalizadas no se tocan.
func (s *Service) Delete(ctx context.Context, id, secretaryID string) error {
	d, err := s.getEditable(ctx, id, secretaryID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, d.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("description not found")
		}
		return err
	}
	return nil
}

func (s *Service) ListRevisions(ctx context.Context, id string) ([]Revision, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, strings.TrimSpace(id))
}

// getEditable junta los checks comunes de mutación: existencia, estado
// de la show, asignación del secretario y que siga en draft.
func (s *Service) getEditable(ctx context.Context, id, secretaryID string) (Description, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Description{}, err
	}
	if d.IsFinal {
		return Description{}, apperr.BusinessRule("description is finalized and immutable")
	}

	sh, err := s.showDir.GetByID(ctx, d.ShowID)
	if err != nil {
		return Description{}, err
	}
	if !sh.Status.DescriptionsEditable() {
		return Description{}, apperr.BusinessRule("show is " + string(sh.Status) + "; descriptions are frozen")
	}

	dog, err := s.dogDir.GetByID(ctx, d.DogID)
	if err != nil {
		return Description{}, err
	}
	ok, err := s.showDir.IsSecretaryAssigned(ctx, d.ShowID, strings.TrimSpace(secretaryID), dog.BreedID)
	if err != nil {
		return Description{}, err
	}
	if !ok {
		return Description{}, apperr.Authorization("secretary is not assigned to this breed for this show")
	}
	return d, nil
}

// validateGrade aplica la regla transversal clase/escala: baby y puppy
// solo escala corta, el resto solo estándar, valor dentro de la escala.
func validateGrade(class DogClass, g Grade, placement int) error {
	if _, ok := ParseDogClass(string(class)); !ok {
		return apperr.Validation("unknown dog_class")
	}
	if g.IsZero() {
		return apperr.Validation("a grade is required")
	}

	want := ScaleForClass(class)
	if g.Scale != want {
		if want == ScaleBabyPuppy {
			return apperr.Validation("baby and puppy classes take baby_puppy_grade, not grade")
		}
		return apperr.Validation("this dog_class takes grade, not baby_puppy_grade")
	}
	if !ValidGradeValue(g.Scale, g.Value) {
		return apperr.Newf(apperr.KindValidation, "invalid %s grade value %q", g.Scale, g.Value)
	}
	if placement < 0 || placement > 4 {
		return apperr.Validation("placement must be between 1 and 4")
	}
	return nil
}

func snapshotOf(d Description, at time.Time) Revision {
	return Revision{
		ID:            uuid.NewString(),
		DescriptionID: d.ID,
		Version:       d.Version,
		DogClass:      d.DogClass,
		Grade:         d.Grade,
		Title:         d.Title,
		Placement:     d.Placement,
		Content:       d.Content,
		CreatedAt:     at,
	}
}
