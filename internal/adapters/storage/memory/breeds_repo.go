package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dog-show-club/internal/domain/breeds"
)

type breedRepo struct {
	mu   sync.RWMutex
	byID map[string]breeds.Breed
}

func NewBreedRepo() breeds.Repository {
	return &breedRepo{
		byID: make(map[string]breeds.Breed),
	}
}

func (r *breedRepo) Create(ctx context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.byID {
		if x.FCIGroup == b.FCIGroup && x.FCINumber == b.FCINumber {
			return breeds.ErrDuplicate
		}
	}
	r.byID[b.ID] = b
	return nil
}

func (r *breedRepo) Update(ctx context.Context, b breeds.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[b.ID]; !exists {
		return breeds.ErrNotFound
	}
	for _, x := range r.byID {
		if x.ID != b.ID && x.FCIGroup == b.FCIGroup && x.FCINumber == b.FCINumber {
			return breeds.ErrDuplicate
		}
	}
	r.byID[b.ID] = b
	return nil
}

func (r *breedRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	return b, nil
}

func (r *breedRepo) List(ctx context.Context, f breeds.ListFilter) ([]breeds.Breed, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]breeds.Breed, 0)
	for _, b := range r.byID {
		if f.FCIGroup != nil && b.FCIGroup != *f.FCIGroup {
			continue
		}
		if f.IsActive != nil && b.IsActive != *f.IsActive {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(b.NamePL), s) &&
				!strings.Contains(strings.ToLower(b.NameEN), s) {
				continue
			}
		}
		all = append(all, b)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].FCIGroup != all[j].FCIGroup {
			return all[i].FCIGroup < all[j].FCIGroup
		}
		return all[i].NamePL < all[j].NamePL
	})

	return page(all, f.Offset, f.Limit), len(all), nil
}

// page recorta la ventana; lo usan todos los repos in-memory.
func page[T any](all []T, offset, limit int) []T {
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
