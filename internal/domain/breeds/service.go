package breeds

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	NamePL    string
	NameEN    string
	FCIGroup  int
	FCINumber int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Breed, error) {
	if strings.TrimSpace(in.NamePL) == "" || strings.TrimSpace(in.NameEN) == "" {
		return Breed{}, apperr.Validation("name_pl and name_en are required")
	}
	if in.FCIGroup < 1 || in.FCIGroup > 10 {
		return Breed{}, apperr.Validation("fci_group must be between 1 and 10")
	}

	now := s.now()
	b := Breed{
		ID:        uuid.NewString(),
		NamePL:    strings.TrimSpace(in.NamePL),
		NameEN:    strings.TrimSpace(in.NameEN),
		FCIGroup:  in.FCIGroup,
		FCINumber: in.FCINumber,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Breed{}, apperr.Conflict("a breed with this FCI number already exists")
		}
		return Breed{}, err
	}
	return b, nil
}

type UpdateInput struct {
	NamePL    *string
	NameEN    *string
	FCIGroup  *int
	FCINumber *int
	IsActive  *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Breed, error) {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return Breed{}, err
	}

	if in.NamePL != nil {
		if strings.TrimSpace(*in.NamePL) == "" {
			return Breed{}, apperr.Validation("name_pl cannot be empty")
		}
		b.NamePL = strings.TrimSpace(*in.NamePL)
	}
	if in.NameEN != nil {
		if strings.TrimSpace(*in.NameEN) == "" {
			return Breed{}, apperr.Validation("name_en cannot be empty")
		}
		b.NameEN = strings.TrimSpace(*in.NameEN)
	}
	if in.FCIGroup != nil {
		if *in.FCIGroup < 1 || *in.FCIGroup > 10 {
			return Breed{}, apperr.Validation("fci_group must be between 1 and 10")
		}
		b.FCIGroup = *in.FCIGroup
	}
	if in.FCINumber != nil {
		b.FCINumber = *in.FCINumber
	}
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}

	b.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Breed{}, apperr.NotFound("breed not found")
		}
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Breed, error) {
	b, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Breed{}, apperr.NotFound("breed not found")
		}
		return Breed{}, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Breed, int, error) {
	return s.repo.List(ctx, f)
}
