package registrations

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/domain/dogs"
	"dog-show-club/internal/domain/shows"
	"dog-show-club/internal/metrics"
)

type ShowDirectory interface {
	GetByID(ctx context.Context, id string) (shows.Show, error)
}

type DogDirectory interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
}

// DescriptionPreparer valida y arma la descripción inline sin persistirla;
// el insert real corre dentro de la transacción del repo de registrations.
type DescriptionPreparer interface {
	Prepare(ctx context.Context, secretaryID string, in descriptions.CreateInput) (descriptions.Description, error)
}

type Service struct {
	repo     Repository
	showDir  ShowDirectory
	dogDir   DogDirectory
	descPrep DescriptionPreparer
	now      func() time.Time
}

func NewService(repo Repository, showDir ShowDirectory, dogDir DogDirectory, descPrep DescriptionPreparer) *Service {
	return &Service{
		repo:     repo,
		showDir:  showDir,
		dogDir:   dogDir,
		descPrep: descPrep,
		now:      time.Now,
	}
}

// InlineDescription es la descripción opcional que viaja junto al alta.
type InlineDescription struct {
	JudgeID   string
	Grade     descriptions.Grade
	Title     descriptions.Title
	Placement int
	Content   string
}

type RegisterInput struct {
	DogID       string
	DogClass    descriptions.DogClass
	Description *InlineDescription
}

// Register inscribe un perro en una show abierta. Si viene descripción
// inline, ambas filas nacen en la misma transacción.
func (s *Service) Register(ctx context.Context, showID, actorID string, in RegisterInput) (Registration, error) {
	sh, err := s.showDir.GetByID(ctx, showID)
	if err != nil {
		return Registration{}, err
	}
	if !sh.Status.AcceptsRegistrations() {
		return Registration{}, apperr.BusinessRule("show is " + string(sh.Status) + "; registrations are only accepted while open_for_registration")
	}

	dog, err := s.dogDir.GetByID(ctx, strings.TrimSpace(in.DogID))
	if err != nil {
		return Registration{}, err
	}
	if dog.IsDeleted() {
		return Registration{}, apperr.BusinessRule("dog is deleted and cannot be registered")
	}

	if _, err := s.repo.FindByShowAndDog(ctx, sh.ID, dog.ID); err == nil {
		return Registration{}, apperr.Conflict("dog is already registered in this show")
	} else if !errors.Is(err, ErrNotFound) {
		return Registration{}, err
	}

	reg := Registration{
		ID:        uuid.NewString(),
		ShowID:    sh.ID,
		DogID:     dog.ID,
		DogClass:  in.DogClass,
		CreatedAt: s.now(),
	}

	if in.Description == nil {
		reg, err = s.repo.Create(ctx, reg)
	} else {
		var d descriptions.Description
		d, err = s.descPrep.Prepare(ctx, actorID, descriptions.CreateInput{
			ShowID:    sh.ID,
			DogID:     dog.ID,
			JudgeID:   in.Description.JudgeID,
			DogClass:  in.DogClass,
			Grade:     in.Description.Grade,
			Title:     in.Description.Title,
			Placement: in.Description.Placement,
			Content:   in.Description.Content,
		})
		if err != nil {
			return Registration{}, err
		}
		reg, err = s.repo.CreateWithDescription(ctx, reg, d)
	}
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Registration{}, apperr.Conflict("dog is already registered in this show")
		}
		return Registration{}, err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(reg.DogClass)).Inc()
	return reg, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Registration, error) {
	reg, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Registration{}, apperr.NotFound("registration not found")
		}
		return Registration{}, err
	}
	return reg, nil
}

func (s *Service) ListByShow(ctx context.Context, showID string) ([]Registration, error) {
	if _, err := s.showDir.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	return s.repo.ListByShow(ctx, showID)
}

// Delete retira una inscripción; solo mientras la lista sigue abierta,
// después el catálogo ya está cerrado.
func (s *Service) Delete(ctx context.Context, id string) error {
	reg, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	sh, err := s.showDir.GetByID(ctx, reg.ShowID)
	if err != nil {
		return err
	}
	if !sh.Status.AcceptsRegistrations() {
		return apperr.BusinessRule("show is " + string(sh.Status) + "; registrations can no longer be withdrawn")
	}

	if err := s.repo.Delete(ctx, reg.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("registration not found")
		}
		return err
	}
	return nil
}
