package memory

import (
	"context"
	"sort"
	"sync"

	"dog-show-club/internal/domain/branches"
)

type branchRepo struct {
	mu   sync.RWMutex
	byID map[string]branches.Branch
}

func NewBranchRepo() branches.Repository {
	return &branchRepo{
		byID: make(map[string]branches.Branch),
	}
}

func (r *branchRepo) Create(ctx context.Context, b branches.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[b.ID] = b
	return nil
}

func (r *branchRepo) GetByID(ctx context.Context, id string) (branches.Branch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byID[id]
	if !ok {
		return branches.Branch{}, branches.ErrNotFound
	}
	return b, nil
}

func (r *branchRepo) List(ctx context.Context, f branches.ListFilter) ([]branches.Branch, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]branches.Branch, 0)
	for _, b := range r.byID {
		if f.Region != "" && b.Region != f.Region {
			continue
		}
		if f.IsActive != nil && b.IsActive != *f.IsActive {
			continue
		}
		all = append(all, b)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	return page(all, f.Offset, f.Limit), len(all), nil
}
