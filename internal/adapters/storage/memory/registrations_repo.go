package memory

import (
	"context"
	"sort"
	"sync"

	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/domain/registrations"
)

type registrationRepo struct {
	mu   sync.RWMutex
	byID map[string]registrations.Registration

	// para el alta combinada registration+description
	descRepo *descriptionRepo
}

func NewRegistrationRepo(descRepo *descriptionRepo) registrations.Repository {
	return &registrationRepo{
		byID:     make(map[string]registrations.Registration),
		descRepo: descRepo,
	}
}

func (r *registrationRepo) Create(ctx context.Context, reg registrations.Registration) (registrations.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(reg)
}

func (r *registrationRepo) CreateWithDescription(ctx context.Context, reg registrations.Registration, d descriptions.Description) (registrations.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, err := r.insertLocked(reg)
	if err != nil {
		return registrations.Registration{}, err
	}
	if err := r.descRepo.Create(ctx, d); err != nil {
		delete(r.byID, reg.ID)
		return registrations.Registration{}, err
	}
	return reg, nil
}

func (r *registrationRepo) insertLocked(reg registrations.Registration) (registrations.Registration, error) {
	max := 0
	for _, x := range r.byID {
		if x.ShowID == reg.ShowID {
			if x.DogID == reg.DogID {
				return registrations.Registration{}, registrations.ErrDuplicate
			}
			if x.CatalogNumber > max {
				max = x.CatalogNumber
			}
		}
	}
	reg.CatalogNumber = max + 1
	r.byID[reg.ID] = reg
	return reg, nil
}

func (r *registrationRepo) GetByID(ctx context.Context, id string) (registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byID[id]
	if !ok {
		return registrations.Registration{}, registrations.ErrNotFound
	}
	return reg, nil
}

func (r *registrationRepo) FindByShowAndDog(ctx context.Context, showID, dogID string) (registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, reg := range r.byID {
		if reg.ShowID == showID && reg.DogID == dogID {
			return reg, nil
		}
	}
	return registrations.Registration{}, registrations.ErrNotFound
}

func (r *registrationRepo) ListByShow(ctx context.Context, showID string) ([]registrations.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]registrations.Registration, 0)
	for _, reg := range r.byID {
		if reg.ShowID == showID {
			out = append(out, reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CatalogNumber < out[j].CatalogNumber })
	return out, nil
}

func (r *registrationRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return registrations.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *registrationRepo) CountByShow(ctx context.Context, showID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, reg := range r.byID {
		if reg.ShowID == showID {
			n++
		}
	}
	return n, nil
}
