package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dog-show-club/internal/domain/dogs"
)

type dogRepo struct {
	mu   sync.RWMutex
	byID map[string]dogs.Dog
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[string]dogs.Dog),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.byID {
		if !x.IsDeleted() && x.Microchip == d.Microchip {
			return dogs.ErrDuplicate
		}
	}
	r.byID[d.ID] = cloneDog(d)
	return nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[d.ID]
	if !exists || cur.IsDeleted() {
		return dogs.ErrNotFound
	}
	for _, x := range r.byID {
		if x.ID != d.ID && !x.IsDeleted() && x.Microchip == d.Microchip {
			return dogs.ErrDuplicate
		}
	}
	r.byID[d.ID] = cloneDog(d)
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok || d.IsDeleted() {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return cloneDog(d), nil
}

func (r *dogRepo) FindByMicrochip(ctx context.Context, microchip string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byID {
		if !d.IsDeleted() && d.Microchip == microchip {
			return cloneDog(d), nil
		}
	}
	return dogs.Dog{}, dogs.ErrNotFound
}

func (r *dogRepo) List(ctx context.Context, f dogs.ListFilter) ([]dogs.Dog, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]dogs.Dog, 0)
	for _, d := range r.byID {
		if !f.IncludeDeleted && d.IsDeleted() {
			continue
		}
		if f.BreedID != "" && d.BreedID != f.BreedID {
			continue
		}
		if f.Gender != "" && string(d.Gender) != f.Gender {
			continue
		}
		if f.OwnerID != "" && !hasOwner(d, f.OwnerID) {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(d.Name), s) &&
				!strings.Contains(strings.ToLower(d.KennelName), s) {
				continue
			}
		}
		all = append(all, cloneDog(d))
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return page(all, f.Offset, f.Limit), len(all), nil
}

func (r *dogRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, d := range r.byID {
		if !d.IsDeleted() && hasOwner(d, ownerID) {
			n++
		}
	}
	return n, nil
}

func (r *dogRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok || d.IsDeleted() {
		return dogs.ErrNotFound
	}
	d.DeletedAt = &at
	d.UpdatedAt = at
	r.byID[id] = d
	return nil
}

func hasOwner(d dogs.Dog, ownerID string) bool {
	for _, l := range d.Owners {
		if l.OwnerID == ownerID {
			return true
		}
	}
	return false
}

// cloneDog copia el slice de links para que el caller no mute el mapa.
func cloneDog(d dogs.Dog) dogs.Dog {
	out := d
	out.Owners = make([]dogs.OwnerLink, len(d.Owners))
	copy(out.Owners, d.Owners)
	return out
}
