package shows

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
)

// RegistrationCounter lo implementa el repo de registrations; el conteo
// de perros inscriptos se deriva, no se persiste en la fila de la show.
type RegistrationCounter interface {
	CountByShow(ctx context.Context, showID string) (int, error)
}

type Service struct {
	repo Repository
	regs RegistrationCounter
	now  func() time.Time
}

func NewService(repo Repository, regs RegistrationCounter) *Service {
	return &Service{
		repo: repo,
		regs: regs,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	ShowDate    time.Time
	Location    string
	BranchID    string
	Description string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Show, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Show{}, apperr.Validation("name is required")
	}
	if in.ShowDate.IsZero() {
		return Show{}, apperr.Validation("show_date is required")
	}

	now := s.now()
	sh := Show{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		ShowDate:    in.ShowDate,
		Location:    strings.TrimSpace(in.Location),
		BranchID:    strings.TrimSpace(in.BranchID),
		Description: strings.TrimSpace(in.Description),
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, sh); err != nil {
		return Show{}, err
	}
	return sh, nil
}

type UpdateInput struct {
	Name        *string
	ShowDate    *time.Time
	Location    *string
	BranchID    *string
	Description *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Show, error) {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return Show{}, err
	}
	if sh.Status.IsTerminal() {
		return Show{}, apperr.BusinessRule("show is " + string(sh.Status) + " and can no longer be edited")
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Show{}, apperr.Validation("name cannot be empty")
		}
		sh.Name = strings.TrimSpace(*in.Name)
	}
	if in.ShowDate != nil {
		if in.ShowDate.IsZero() {
			return Show{}, apperr.Validation("show_date cannot be empty")
		}
		sh.ShowDate = *in.ShowDate
	}
	if in.Location != nil {
		sh.Location = strings.TrimSpace(*in.Location)
	}
	if in.BranchID != nil {
		sh.BranchID = strings.TrimSpace(*in.BranchID)
	}
	if in.Description != nil {
		sh.Description = strings.TrimSpace(*in.Description)
	}

	sh.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sh); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Show{}, apperr.NotFound("show not found")
		}
		return Show{}, err
	}
	return sh, nil
}

// Transition aplica la tabla de transiciones del lifecycle.
func (s *Service) Transition(ctx context.Context, id string, to Status) (Show, error) {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return Show{}, err
	}

	if sh.Status == to {
		// Idempotente: repetir la transición actual no es error.
		return sh, nil
	}
	if !sh.Status.CanTransitionTo(to) {
		return Show{}, apperr.Newf(apperr.KindBusinessRule,
			"cannot transition show from %s to %s", sh.Status, to)
	}

	sh.Status = to
	sh.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, sh); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Show{}, apperr.NotFound("show not found")
		}
		return Show{}, err
	}
	return sh, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Show, error) {
	sh, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Show{}, apperr.NotFound("show not found")
		}
		return Show{}, err
	}

	n, err := s.regs.CountByShow(ctx, sh.ID)
	if err != nil {
		return Show{}, err
	}
	sh.RegisteredDogs = n
	return sh, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Show, int, error) {
	items, total, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	for i := range items {
		n, err := s.regs.CountByShow(ctx, items[i].ID)
		if err != nil {
			return nil, 0, err
		}
		items[i].RegisteredDogs = n
	}
	return items, total, nil
}

// Delete: solo shows draft y sin inscripciones.
func (s *Service) Delete(ctx context.Context, id string) error {
	sh, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sh.Status != StatusDraft {
		return apperr.BusinessRule("only draft shows can be deleted")
	}
	if sh.RegisteredDogs > 0 {
		return apperr.BusinessRule("show already has registered dogs")
	}

	if err := s.repo.SoftDelete(ctx, sh.ID, s.now()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("show not found")
		}
		return err
	}
	return nil
}

type AssignInput struct {
	SecretaryUserID string
	BreedID         string
}

func (s *Service) Assign(ctx context.Context, showID string, in AssignInput) (Assignment, error) {
	sh, err := s.GetByID(ctx, showID)
	if err != nil {
		return Assignment{}, err
	}
	if sh.Status.IsTerminal() {
		return Assignment{}, apperr.BusinessRule("show is " + string(sh.Status) + "; assignments are frozen")
	}
	if strings.TrimSpace(in.SecretaryUserID) == "" || strings.TrimSpace(in.BreedID) == "" {
		return Assignment{}, apperr.Validation("secretary_user_id and breed_id are required")
	}

	a := Assignment{
		ID:              uuid.NewString(),
		ShowID:          sh.ID,
		SecretaryUserID: strings.TrimSpace(in.SecretaryUserID),
		BreedID:         strings.TrimSpace(in.BreedID),
		CreatedAt:       s.now(),
	}

	if err := s.repo.CreateAssignment(ctx, a); err != nil {
		if errors.Is(err, ErrAssignmentDuplicate) {
			return Assignment{}, apperr.Conflict("this secretary is already assigned to this breed for this show")
		}
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) ListAssignments(ctx context.Context, showID string) ([]Assignment, error) {
	if _, err := s.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	return s.repo.ListAssignments(ctx, showID)
}

func (s *Service) Unassign(ctx context.Context, showID, assignmentID string) error {
	sh, err := s.GetByID(ctx, showID)
	if err != nil {
		return err
	}
	if sh.Status.IsTerminal() {
		return apperr.BusinessRule("show is " + string(sh.Status) + "; assignments are frozen")
	}

	if err := s.repo.DeleteAssignment(ctx, sh.ID, strings.TrimSpace(assignmentID)); err != nil {
		if errors.Is(err, ErrAssignmentNotFound) {
			return apperr.NotFound("assignment not found")
		}
		return err
	}
	return nil
}

// IsSecretaryAssigned expone el check que usa descriptions; evita un
// import circular shows <-> descriptions.
func (s *Service) IsSecretaryAssigned(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error) {
	return s.repo.HasAssignment(ctx, showID, secretaryUserID, breedID)
}
