package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dog-show-club/internal/domain/owners"
)

type ownerRepo struct {
	mu   sync.RWMutex
	byID map[string]owners.Owner
}

func NewOwnerRepo() owners.Repository {
	return &ownerRepo{
		byID: make(map[string]owners.Owner),
	}
}

func (r *ownerRepo) Create(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.byID {
		if !x.IsDeleted() && x.Email == o.Email {
			return owners.ErrDuplicate
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) Update(ctx context.Context, o owners.Owner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[o.ID]
	if !exists || cur.IsDeleted() {
		return owners.ErrNotFound
	}
	for _, x := range r.byID {
		if x.ID != o.ID && !x.IsDeleted() && x.Email == o.Email {
			return owners.ErrDuplicate
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *ownerRepo) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok || o.IsDeleted() {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownerRepo) FindByEmail(ctx context.Context, email string) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.byID {
		if !o.IsDeleted() && o.Email == email {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrNotFound
}

func (r *ownerRepo) List(ctx context.Context, f owners.ListFilter) ([]owners.Owner, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]owners.Owner, 0)
	for _, o := range r.byID {
		if !f.IncludeDeleted && o.IsDeleted() {
			continue
		}
		if f.City != "" && o.City != f.City {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(o.FirstName), s) &&
				!strings.Contains(strings.ToLower(o.LastName), s) &&
				!strings.Contains(o.Email, s) {
				continue
			}
		}
		all = append(all, o)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		return all[i].FirstName < all[j].FirstName
	})

	return page(all, f.Offset, f.Limit), len(all), nil
}

func (r *ownerRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok || o.IsDeleted() {
		return owners.ErrNotFound
	}
	o.DeletedAt = &at
	o.UpdatedAt = at
	r.byID[id] = o
	return nil
}
