package branches

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
	Name   string
	City   string
	Region string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Branch, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Branch{}, apperr.Validation("name is required")
	}

	now := s.now()
	b := Branch{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		City:      strings.TrimSpace(in.City),
		Region:    strings.TrimSpace(in.Region),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return Branch{}, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Branch, error) {
	b, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Branch{}, apperr.NotFound("branch not found")
		}
		return Branch{}, err
	}
	return b, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Branch, int, error) {
	return s.repo.List(ctx, f)
}
