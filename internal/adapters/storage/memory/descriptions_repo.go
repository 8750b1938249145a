package memory

import (
	"context"
	"sort"
	"sync"

	"dog-show-club/internal/domain/descriptions"
)

// descriptionRepo expone el tipo concreto: el repo de registrations
// in-memory lo necesita para el alta combinada.
type descriptionRepo struct {
	mu        sync.RWMutex
	byID      map[string]descriptions.Description
	revisions map[string][]descriptions.Revision
}

func NewDescriptionRepo() *descriptionRepo {
	return &descriptionRepo{
		byID:      make(map[string]descriptions.Description),
		revisions: make(map[string][]descriptions.Revision),
	}
}

func (r *descriptionRepo) Create(ctx context.Context, d descriptions.Description) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertLocked(d)
}

// insertLocked asume que el caller ya tomó el lock.
func (r *descriptionRepo) insertLocked(d descriptions.Description) error {
	for _, x := range r.byID {
		if x.ShowID == d.ShowID && x.DogID == d.DogID && x.JudgeID == d.JudgeID {
			return descriptions.ErrDuplicate
		}
	}
	r.byID[d.ID] = d
	return nil
}

func (r *descriptionRepo) Update(ctx context.Context, d descriptions.Description) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[d.ID]; !exists {
		return descriptions.ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *descriptionRepo) GetByID(ctx context.Context, id string) (descriptions.Description, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return descriptions.Description{}, descriptions.ErrNotFound
	}
	return d, nil
}

func (r *descriptionRepo) FindByShowDogJudge(ctx context.Context, showID, dogID, judgeID string) (descriptions.Description, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.byID {
		if d.ShowID == showID && d.DogID == dogID && d.JudgeID == judgeID {
			return d, nil
		}
	}
	return descriptions.Description{}, descriptions.ErrNotFound
}

func (r *descriptionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return descriptions.ErrNotFound
	}
	delete(r.byID, id)
	delete(r.revisions, id)
	return nil
}

func (r *descriptionRepo) AddRevision(ctx context.Context, rev descriptions.Revision) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.revisions[rev.DescriptionID] = append(r.revisions[rev.DescriptionID], rev)
	return nil
}

func (r *descriptionRepo) ListRevisions(ctx context.Context, descriptionID string) ([]descriptions.Revision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	revs := r.revisions[descriptionID]
	out := make([]descriptions.Revision, len(revs))
	copy(out, revs)
	sort.Slice(out, func(i, j int) bool { return out[i].Version > out[j].Version })
	return out, nil
}
