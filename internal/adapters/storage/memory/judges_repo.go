package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"dog-show-club/internal/domain/judges"
)

type judgeRepo struct {
	mu   sync.RWMutex
	byID map[string]judges.Judge
}

func NewJudgeRepo() judges.Repository {
	return &judgeRepo{
		byID: make(map[string]judges.Judge),
	}
}

func (r *judgeRepo) Create(ctx context.Context, j judges.Judge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.byID {
		if x.LicenseNumber == j.LicenseNumber {
			return judges.ErrDuplicate
		}
	}
	r.byID[j.ID] = j
	return nil
}

func (r *judgeRepo) GetByID(ctx context.Context, id string) (judges.Judge, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	j, ok := r.byID[id]
	if !ok {
		return judges.Judge{}, judges.ErrNotFound
	}
	return j, nil
}

func (r *judgeRepo) List(ctx context.Context, f judges.ListFilter) ([]judges.Judge, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]judges.Judge, 0)
	for _, j := range r.byID {
		if f.IsActive != nil && j.IsActive != *f.IsActive {
			continue
		}
		if f.FCIGroup != nil && !j.MayJudgeGroup(*f.FCIGroup) {
			continue
		}
		if f.Search != "" {
			s := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(j.FirstName), s) &&
				!strings.Contains(strings.ToLower(j.LastName), s) {
				continue
			}
		}
		all = append(all, j)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].LastName != all[j].LastName {
			return all[i].LastName < all[j].LastName
		}
		return all[i].FirstName < all[j].FirstName
	})

	return page(all, f.Offset, f.Limit), len(all), nil
}
