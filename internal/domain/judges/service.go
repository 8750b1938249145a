package judges

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
	FirstName     string
	LastName      string
	LicenseNumber string
	Country       string
	FCIGroups     []int
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Judge, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return Judge{}, apperr.Validation("first_name and last_name are required")
	}
	if strings.TrimSpace(in.LicenseNumber) == "" {
		return Judge{}, apperr.Validation("license_number is required")
	}
	for _, g := range in.FCIGroups {
		if g < 1 || g > 10 {
			return Judge{}, apperr.Validation("fci_groups entries must be between 1 and 10")
		}
	}

	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = "PL"
	}

	now := s.now()
	j := Judge{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		Country:       country,
		FCIGroups:     in.FCIGroups,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Judge{}, apperr.Conflict("a judge with this license number already exists")
		}
		return Judge{}, err
	}
	return j, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Judge, error) {
	j, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Judge{}, apperr.NotFound("judge not found")
		}
		return Judge{}, err
	}
	return j, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Judge, int, error) {
	return s.repo.List(ctx, f)
}
