package dogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/breeds"
	"dog-show-club/internal/domain/owners"
)

// BreedDirectory y OwnerDirectory los implementan los services de breeds
// y owners; acá solo interesa la consulta puntual.
type BreedDirectory interface {
	GetByID(ctx context.Context, id string) (breeds.Breed, error)
}

type OwnerDirectory interface {
	GetByID(ctx context.Context, id string) (owners.Owner, error)
}

type Service struct {
	repo     Repository
	breedDir BreedDirectory
	ownerDir OwnerDirectory
	now      func() time.Time
}

func NewService(repo Repository, breedDir BreedDirectory, ownerDir OwnerDirectory) *Service {
	return &Service{
		repo:     repo,
		breedDir: breedDir,
		ownerDir: ownerDir,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name      string
	BreedID   string
	Gender    string
	BirthDate time.Time
	Microchip string

	KennelClubNumber string
	KennelName       string
	FatherName       string
	MotherName       string

	Owners []OwnerLink
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Dog, error) {
	gender, ok := ParseGender(strings.TrimSpace(in.Gender))
	if !ok {
		return Dog{}, apperr.Validation("gender must be male or female")
	}
	if in.BirthDate.IsZero() || !in.BirthDate.Before(s.now()) {
		return Dog{}, apperr.Validation("birth_date must be in the past")
	}
	if err := s.checkOwnerLinks(ctx, in.Owners); err != nil {
		return Dog{}, err
	}

	breed, err := s.breedDir.GetByID(ctx, in.BreedID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return Dog{}, apperr.NotFound("breed not found")
		}
		return Dog{}, err
	}
	if !breed.IsActive {
		return Dog{}, apperr.BusinessRule("breed is not active")
	}

	chip := strings.TrimSpace(in.Microchip)
	if err := s.checkMicrochipFree(ctx, chip, ""); err != nil {
		return Dog{}, err
	}

	now := s.now()
	d := Dog{
		ID:               uuid.NewString(),
		Name:             strings.TrimSpace(in.Name),
		BreedID:          breed.ID,
		Gender:           gender,
		BirthDate:        in.BirthDate,
		Microchip:        chip,
		KennelClubNumber: strings.TrimSpace(in.KennelClubNumber),
		KennelName:       strings.TrimSpace(in.KennelName),
		FatherName:       strings.TrimSpace(in.FatherName),
		MotherName:       strings.TrimSpace(in.MotherName),
		Owners:           in.Owners,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Perro + links se insertan en una sola operación del repo: si los
	// links fallan no queda perro huérfano.
	if err := s.repo.Create(ctx, d); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return Dog{}, apperr.Conflict("a dog with this microchip already exists")
		}
		return Dog{}, err
	}
	return d, nil
}

type UpdateInput struct {
	Name      *string
	BreedID   *string
	Gender    *string
	BirthDate *time.Time
	Microchip *string

	KennelClubNumber *string
	KennelName       *string
	FatherName       *string
	MotherName       *string

	Owners []OwnerLink // nil = no tocar links
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Dog, error) {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return Dog{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Dog{}, apperr.Validation("name cannot be empty")
		}
		d.Name = strings.TrimSpace(*in.Name)
	}
	if in.BreedID != nil {
		breed, err := s.breedDir.GetByID(ctx, *in.BreedID)
		if err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return Dog{}, apperr.NotFound("breed not found")
			}
			return Dog{}, err
		}
		d.BreedID = breed.ID
	}
	if in.Gender != nil {
		gender, ok := ParseGender(strings.TrimSpace(*in.Gender))
		if !ok {
			return Dog{}, apperr.Validation("gender must be male or female")
		}
		d.Gender = gender
	}
	if in.BirthDate != nil {
		if !in.BirthDate.Before(s.now()) {
			return Dog{}, apperr.Validation("birth_date must be in the past")
		}
		d.BirthDate = *in.BirthDate
	}
	if in.Microchip != nil {
		chip := strings.TrimSpace(*in.Microchip)
		if chip != d.Microchip {
			if err := s.checkMicrochipFree(ctx, chip, d.ID); err != nil {
				return Dog{}, err
			}
			d.Microchip = chip
		}
	}
	if in.KennelClubNumber != nil {
		d.KennelClubNumber = strings.TrimSpace(*in.KennelClubNumber)
	}
	if in.KennelName != nil {
		d.KennelName = strings.TrimSpace(*in.KennelName)
	}
	if in.FatherName != nil {
		d.FatherName = strings.TrimSpace(*in.FatherName)
	}
	if in.MotherName != nil {
		d.MotherName = strings.TrimSpace(*in.MotherName)
	}
	if in.Owners != nil {
		if err := s.checkOwnerLinks(ctx, in.Owners); err != nil {
			return Dog{}, err
		}
		d.Owners = in.Owners
	}

	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Dog{}, apperr.NotFound("dog not found")
		}
		if errors.Is(err, ErrDuplicate) {
			return Dog{}, apperr.Conflict("a dog with this microchip already exists")
		}
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Dog, error) {
	d, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Dog{}, apperr.NotFound("dog not found")
		}
		return Dog{}, err
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Dog, int, error) {
	return s.repo.List(ctx, f)
}

// Delete es puro soft-delete: tombstone, el historial de exposiciones
// del perro queda intacto.
func (s *Service) Delete(ctx context.Context, id string) error {
	d, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, d.ID, s.now()); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("dog not found")
		}
		return err
	}
	return nil
}

func (s *Service) checkOwnerLinks(ctx context.Context, links []OwnerLink) error {
	if len(links) == 0 {
		return apperr.Validation("at least one owner is required")
	}

	primaries := 0
	seen := make(map[string]struct{}, len(links))
	for _, l := range links {
		if strings.TrimSpace(l.OwnerID) == "" {
			return apperr.Validation("owner_id is required on every owner link")
		}
		if _, dup := seen[l.OwnerID]; dup {
			return apperr.Validation("duplicate owner in owner links")
		}
		seen[l.OwnerID] = struct{}{}
		if l.IsPrimary {
			primaries++
		}
	}
	if primaries != 1 {
		return apperr.Validation("exactly one owner must be marked as primary")
	}

	for _, l := range links {
		if _, err := s.ownerDir.GetByID(ctx, l.OwnerID); err != nil {
			if apperr.IsKind(err, apperr.KindNotFound) {
				return apperr.Newf(apperr.KindNotFound, "owner %s not found", l.OwnerID)
			}
			return err
		}
	}
	return nil
}

func (s *Service) checkMicrochipFree(ctx context.Context, chip, selfID string) error {
	if len(chip) != 15 {
		return apperr.Validation("microchip must be exactly 15 digits")
	}
	for _, r := range chip {
		if r < '0' || r > '9' {
			return apperr.Validation("microchip must contain only digits")
		}
	}

	existing, err := s.repo.FindByMicrochip(ctx, chip)
	if err == nil && existing.ID != selfID {
		return apperr.Conflict("a dog with this microchip already exists")
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
