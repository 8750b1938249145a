package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"dog-show-club/internal/domain/shows"
)

type showRepo struct {
	mu          sync.RWMutex
	byID        map[string]shows.Show
	assignments map[string]shows.Assignment
}

func NewShowRepo() shows.Repository {
	return &showRepo{
		byID:        make(map[string]shows.Show),
		assignments: make(map[string]shows.Assignment),
	}
}

func (r *showRepo) Create(ctx context.Context, s shows.Show) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[s.ID] = s
	return nil
}

func (r *showRepo) Update(ctx context.Context, s shows.Show) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[s.ID]
	if !exists || cur.DeletedAt != nil {
		return shows.ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *showRepo) GetByID(ctx context.Context, id string) (shows.Show, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return shows.Show{}, shows.ErrNotFound
	}
	return s, nil
}

func (r *showRepo) List(ctx context.Context, f shows.ListFilter) ([]shows.Show, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]shows.Show, 0)
	for _, s := range r.byID {
		if !f.IncludeDeleted && s.DeletedAt != nil {
			continue
		}
		if f.Status != "" && string(s.Status) != f.Status {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(s.Name), q) &&
				!strings.Contains(strings.ToLower(s.Location), q) {
				continue
			}
		}
		if f.From != nil && s.ShowDate.Before(*f.From) {
			continue
		}
		if f.To != nil && s.ShowDate.After(*f.To) {
			continue
		}
		all = append(all, s)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].ShowDate.After(all[j].ShowDate) })

	return page(all, f.Offset, f.Limit), len(all), nil
}

func (r *showRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return shows.ErrNotFound
	}
	s.DeletedAt = &at
	s.UpdatedAt = at
	r.byID[id] = s
	return nil
}

func (r *showRepo) CreateAssignment(ctx context.Context, a shows.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, x := range r.assignments {
		if x.ShowID == a.ShowID && x.SecretaryUserID == a.SecretaryUserID && x.BreedID == a.BreedID {
			return shows.ErrAssignmentDuplicate
		}
	}
	r.assignments[a.ID] = a
	return nil
}

func (r *showRepo) ListAssignments(ctx context.Context, showID string) ([]shows.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]shows.Assignment, 0)
	for _, a := range r.assignments {
		if a.ShowID == showID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *showRepo) DeleteAssignment(ctx context.Context, showID, assignmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.assignments[assignmentID]
	if !ok || a.ShowID != showID {
		return shows.ErrAssignmentNotFound
	}
	delete(r.assignments, assignmentID)
	return nil
}

func (r *showRepo) HasAssignment(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.assignments {
		if a.ShowID == showID && a.SecretaryUserID == secretaryUserID && a.BreedID == breedID {
			return true, nil
		}
	}
	return false, nil
}
