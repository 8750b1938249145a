package shows

import (
	"context"
	"testing"
	"time"

	"dog-show-club/internal/apperr"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID        map[string]Show
	assignments map[string]Assignment
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:        map[string]Show{},
		assignments: map[string]Assignment{},
	}
}

func (r *testRepo) Create(ctx context.Context, s Show) error {
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) Update(ctx context.Context, s Show) error {
	if _, ok := r.byID[s.ID]; !ok {
		return ErrNotFound
	}
	r.byID[s.ID] = s
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Show, error) {
	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return Show{}, ErrNotFound
	}
	return s, nil
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Show, int, error) {
	out := make([]Show, 0)
	for _, s := range r.byID {
		if s.DeletedAt == nil {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (r *testRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	s, ok := r.byID[id]
	if !ok || s.DeletedAt != nil {
		return ErrNotFound
	}
	s.DeletedAt = &at
	r.byID[id] = s
	return nil
}

func (r *testRepo) CreateAssignment(ctx context.Context, a Assignment) error {
	for _, x := range r.assignments {
		if x.ShowID == a.ShowID && x.SecretaryUserID == a.SecretaryUserID && x.BreedID == a.BreedID {
			return ErrAssignmentDuplicate
		}
	}
	r.assignments[a.ID] = a
	return nil
}

func (r *testRepo) ListAssignments(ctx context.Context, showID string) ([]Assignment, error) {
	out := make([]Assignment, 0)
	for _, a := range r.assignments {
		if a.ShowID == showID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *testRepo) DeleteAssignment(ctx context.Context, showID, assignmentID string) error {
	a, ok := r.assignments[assignmentID]
	if !ok || a.ShowID != showID {
		return ErrAssignmentNotFound
	}
	delete(r.assignments, assignmentID)
	return nil
}

func (r *testRepo) HasAssignment(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error) {
	for _, a := range r.assignments {
		if a.ShowID == showID && a.SecretaryUserID == secretaryUserID && a.BreedID == breedID {
			return true, nil
		}
	}
	return false, nil
}

type fixedRegCounter int

func (n fixedRegCounter) CountByShow(ctx context.Context, showID string) (int, error) {
	return int(n), nil
}

func mustCreate(t *testing.T, svc *Service) Show {
	t.Helper()
	sh, err := svc.Create(context.Background(), CreateInput{
		Name:     "Wystawa Krajowa Warszawa",
		ShowDate: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		Location: "Warszawa",
	})
	if err != nil {
		t.Fatalf("Create show: %v", err)
	}
	return sh
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_StartsInDraft(t *testing.T) {
	svc := NewService(newTestRepo(), fixedRegCounter(0))
	sh := mustCreate(t, svc)
	if sh.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", sh.Status)
	}
}

func TestService_Transition_Table(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusOpen, true},
		{StatusDraft, StatusInProgress, false},
		{StatusDraft, StatusCompleted, false},
		{StatusDraft, StatusCancelled, true},
		{StatusOpen, StatusInProgress, true},
		{StatusOpen, StatusCompleted, false},
		{StatusOpen, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusOpen, false},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusOpen, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusOpen, false},
	}

	for _, tc := range cases {
		repo := newTestRepo()
		svc := NewService(repo, fixedRegCounter(0))
		sh := mustCreate(t, svc)

		cur := repo.byID[sh.ID]
		cur.Status = tc.from
		repo.byID[sh.ID] = cur

		_, err := svc.Transition(context.Background(), sh.ID, tc.to)
		if tc.allowed && err != nil {
			t.Fatalf("%s -> %s: expected ok, got %v", tc.from, tc.to, err)
		}
		if !tc.allowed && apperr.KindOf(err) != apperr.KindBusinessRule {
			t.Fatalf("%s -> %s: expected BUSINESS_RULE_ERROR, got %v", tc.from, tc.to, err)
		}
	}
}

func TestService_Transition_SameStatusIsIdempotent(t *testing.T) {
	svc := NewService(newTestRepo(), fixedRegCounter(0))
	sh := mustCreate(t, svc)

	got, err := svc.Transition(context.Background(), sh.ID, StatusDraft)
	if err != nil {
		t.Fatalf("expected idempotent transition, got %v", err)
	}
	if got.Status != StatusDraft {
		t.Fatalf("expected draft, got %s", got.Status)
	}
}

func TestService_Update_BlockedWhenTerminal(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedRegCounter(0))
	sh := mustCreate(t, svc)

	cur := repo.byID[sh.ID]
	cur.Status = StatusCompleted
	repo.byID[sh.ID] = cur

	name := "Nueva"
	_, err := svc.Update(context.Background(), sh.ID, UpdateInput{Name: &name})
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR, got %v", err)
	}
}

func TestService_Delete_OnlyEmptyDraft(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedRegCounter(3))
	sh := mustCreate(t, svc)

	// Con inscripciones no se borra aunque sea draft.
	if err := svc.Delete(context.Background(), sh.ID); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR with registrations, got %v", err)
	}

	svc.regs = fixedRegCounter(0)
	if err := svc.Delete(context.Background(), sh.ID); err != nil {
		t.Fatalf("Delete empty draft: %v", err)
	}

	// Fuera de draft tampoco.
	sh2 := mustCreate(t, svc)
	if _, err := svc.Transition(context.Background(), sh2.ID, StatusOpen); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if err := svc.Delete(context.Background(), sh2.ID); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR for open show, got %v", err)
	}
}

func TestService_GetByID_AttachesRegisteredDogs(t *testing.T) {
	svc := NewService(newTestRepo(), fixedRegCounter(7))
	sh := mustCreate(t, svc)

	got, err := svc.GetByID(context.Background(), sh.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.RegisteredDogs != 7 {
		t.Fatalf("expected 7 registered dogs, got %d", got.RegisteredDogs)
	}
}

func TestService_Assign_DuplicateTriple_Conflicts(t *testing.T) {
	svc := NewService(newTestRepo(), fixedRegCounter(0))
	sh := mustCreate(t, svc)

	in := AssignInput{SecretaryUserID: "sec-1", BreedID: "breed-1"}
	if _, err := svc.Assign(context.Background(), sh.ID, in); err != nil {
		t.Fatalf("Assign #1: %v", err)
	}
	if _, err := svc.Assign(context.Background(), sh.ID, in); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}

	ok, err := svc.IsSecretaryAssigned(context.Background(), sh.ID, "sec-1", "breed-1")
	if err != nil || !ok {
		t.Fatalf("expected assignment to be visible, ok=%v err=%v", ok, err)
	}
}

func TestService_Assign_FrozenWhenTerminal(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedRegCounter(0))
	sh := mustCreate(t, svc)

	cur := repo.byID[sh.ID]
	cur.Status = StatusCancelled
	repo.byID[sh.ID] = cur

	_, err := svc.Assign(context.Background(), sh.ID, AssignInput{SecretaryUserID: "sec-1", BreedID: "breed-1"})
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR, got %v", err)
	}
}
