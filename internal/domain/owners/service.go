package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
)

// DogCounter lo implementa el repo de dogs; evita un import circular
// owners <-> dogs (mismo truco que usa dogs con OwnerDirectory).
type DogCounter interface {
	CountActiveByOwner(ctx context.Context, ownerID string) (int, error)
}

type Service struct {
	repo Repository
	dogs DogCounter
	now  func() time.Time
}

func NewService(repo Repository, dogs DogCounter) *Service {
	return &Service{
		repo: repo,
		dogs: dogs,
		now:  time.Now,
	}
}

type CreateInput struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	Street     string
	City       string
	PostalCode string
	Country    string

	GDPRConsent bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Owner, error) {
	if !in.GDPRConsent {
		return Owner{}, apperr.Validation("gdpr_consent is required to register an owner")
	}

	email := normalizeEmail(in.Email)
	if email == "" {
		return Owner{}, apperr.Validation("email is required")
	}

	// Unicidad entre no borrados; el índice parcial en Postgres cubre la
	// carrera, esto da el error amable.
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return Owner{}, apperr.Conflict("an owner with this email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return Owner{}, err
	}

	now := s.now()
	o := Owner{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         email,
		Phone:         strings.TrimSpace(in.Phone),
		Street:        strings.TrimSpace(in.Street),
		City:          strings.TrimSpace(in.City),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       defaultCountry(in.Country),
		GDPRConsent:   true,
		GDPRConsentAt: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Owner{}, apperr.Conflict("an owner with this email already exists")
		}
		return Owner{}, err
	}
	return o, nil
}

type UpdateInput struct {
	FirstName  *string
	LastName   *string
	Email      *string
	Phone      *string
	Street     *string
	City       *string
	PostalCode *string
	Country    *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Owner, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email == "" {
			return Owner{}, apperr.Validation("email cannot be empty")
		}
		if email != o.Email {
			existing, err := s.repo.FindByEmail(ctx, email)
			if err == nil && existing.ID != o.ID {
				return Owner{}, apperr.Conflict("an owner with this email already exists")
			}
			if err != nil && !errors.Is(err, ErrNotFound) {
				return Owner{}, err
			}
			o.Email = email
		}
	}

	if in.FirstName != nil {
		o.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		o.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Phone != nil {
		o.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Street != nil {
		o.Street = strings.TrimSpace(*in.Street)
	}
	if in.City != nil {
		o.City = strings.TrimSpace(*in.City)
	}
	if in.PostalCode != nil {
		o.PostalCode = strings.TrimSpace(*in.PostalCode)
	}
	if in.Country != nil {
		o.Country = defaultCountry(*in.Country)
	}

	o.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, o); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Owner{}, apperr.NotFound("owner not found")
		}
		if errors.Is(err, ErrDuplicate) {
			return Owner{}, apperr.Conflict("an owner with this email already exists")
		}
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Owner, error) {
	o, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Owner{}, apperr.NotFound("owner not found")
		}
		return Owner{}, err
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Owner, int, error) {
	return s.repo.List(ctx, f)
}

// Delete es soft y está bloqueado mientras el owner tenga perros activos.
func (s *Service) Delete(ctx context.Context, id string) error {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.dogs.CountActiveByOwner(ctx, o.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Newf(apperr.KindBusinessRule,
			"owner still has %d registered dog(s); transfer or delete them first", n)
	}

	if err := s.repo.SoftDelete(ctx, o.ID, s.now()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("owner not found")
		}
		return err
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func defaultCountry(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "PL"
	}
	return c
}
