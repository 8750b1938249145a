package registrations

import (
	"context"
	"testing"
	"time"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/descriptions"
	"dog-show-club/internal/domain/dogs"
	"dog-show-club/internal/domain/shows"
)

// -------------------------
// Test repo y directorios fake
// -------------------------

type testRepo struct {
	byID map[string]Registration

	descInserted []descriptions.Description
	failDesc     bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Registration{}}
}

func (r *testRepo) insert(reg Registration) (Registration, error) {
	max := 0
	for _, x := range r.byID {
		if x.ShowID == reg.ShowID {
			if x.DogID == reg.DogID {
				return Registration{}, ErrDuplicate
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

func (r *testRepo) Create(ctx context.Context, reg Registration) (Registration, error) {
	return r.insert(reg)
}

func (r *testRepo) CreateWithDescription(ctx context.Context, reg Registration, d descriptions.Description) (Registration, error) {
	if r.failDesc {
		return Registration{}, descriptions.ErrDuplicate
	}
	reg, err := r.insert(reg)
	if err != nil {
		return Registration{}, err
	}
	r.descInserted = append(r.descInserted, d)
	return reg, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Registration, error) {
	reg, ok := r.byID[id]
	if !ok {
		return Registration{}, ErrNotFound
	}
	return reg, nil
}

func (r *testRepo) FindByShowAndDog(ctx context.Context, showID, dogID string) (Registration, error) {
	for _, reg := range r.byID {
		if reg.ShowID == showID && reg.DogID == dogID {
			return reg, nil
		}
	}
	return Registration{}, ErrNotFound
}

func (r *testRepo) ListByShow(ctx context.Context, showID string) ([]Registration, error) {
	out := make([]Registration, 0)
	for _, reg := range r.byID {
		if reg.ShowID == showID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) CountByShow(ctx context.Context, showID string) (int, error) {
	n := 0
	for _, reg := range r.byID {
		if reg.ShowID == showID {
			n++
		}
	}
	return n, nil
}

type testShowDir map[string]shows.Show

func (d testShowDir) GetByID(ctx context.Context, id string) (shows.Show, error) {
	sh, ok := d[id]
	if !ok {
		return shows.Show{}, apperr.NotFound("show not found")
	}
	return sh, nil
}

type testDogDir map[string]dogs.Dog

func (d testDogDir) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	dog, ok := d[id]
	if !ok {
		return dogs.Dog{}, apperr.NotFound("dog not found")
	}
	return dog, nil
}

type stubPreparer struct {
	prepared *descriptions.CreateInput
}

func (p *stubPreparer) Prepare(ctx context.Context, secretaryID string, in descriptions.CreateInput) (descriptions.Description, error) {
	p.prepared = &in
	return descriptions.Description{
		ID:          "desc-1",
		ShowID:      in.ShowID,
		DogID:       in.DogID,
		JudgeID:     in.JudgeID,
		SecretaryID: secretaryID,
		DogClass:    in.DogClass,
		Grade:       in.Grade,
		Version:     1,
	}, nil
}

func newTestService(repo *testRepo, status shows.Status) (*Service, *stubPreparer) {
	showDir := testShowDir{
		"show-1": {ID: "show-1", Status: status},
	}
	dogDir := testDogDir{
		"dog-1": {ID: "dog-1", BreedID: "breed-1"},
		"dog-2": {ID: "dog-2", BreedID: "breed-1"},
	}
	prep := &stubPreparer{}
	return NewService(repo, showDir, dogDir, prep), prep
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_OnlyWhileOpen(t *testing.T) {
	for _, status := range []shows.Status{shows.StatusDraft, shows.StatusInProgress, shows.StatusCompleted, shows.StatusCancelled} {
		svc, _ := newTestService(newTestRepo(), status)

		_, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{
			DogID:    "dog-1",
			DogClass: descriptions.ClassOpen,
		})
		if apperr.KindOf(err) != apperr.KindBusinessRule {
			t.Fatalf("status %s: expected BUSINESS_RULE_ERROR, got %v", status, err)
		}
	}
}

func TestService_Register_AssignsSequentialCatalogNumbers(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusOpen)

	r1, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{DogID: "dog-1", DogClass: descriptions.ClassOpen})
	if err != nil {
		t.Fatalf("Register #1: %v", err)
	}
	r2, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{DogID: "dog-2", DogClass: descriptions.ClassJunior})
	if err != nil {
		t.Fatalf("Register #2: %v", err)
	}

	if r1.CatalogNumber != 1 || r2.CatalogNumber != 2 {
		t.Fatalf("expected catalog numbers 1 and 2, got %d and %d", r1.CatalogNumber, r2.CatalogNumber)
	}
}

func TestService_Register_DuplicateDog_Conflicts(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusOpen)

	in := RegisterInput{DogID: "dog-1", DogClass: descriptions.ClassOpen}
	if _, err := svc.Register(context.Background(), "show-1", "sec-1", in); err != nil {
		t.Fatalf("Register #1: %v", err)
	}
	_, err := svc.Register(context.Background(), "show-1", "sec-1", in)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestService_Register_UnknownDog_NotFound(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusOpen)

	_, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{DogID: "dog-ghost", DogClass: descriptions.ClassOpen})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestService_Register_InlineDescription_SharesClassAndShow(t *testing.T) {
	repo := newTestRepo()
	svc, prep := newTestService(repo, shows.StatusOpen)

	_, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{
		DogID:    "dog-1",
		DogClass: descriptions.ClassBaby,
		Description: &InlineDescription{
			JudgeID: "judge-1",
			Grade:   descriptions.Grade{Scale: descriptions.ScaleBabyPuppy, Value: "very_promising"},
			Content: "Bardzo obiecujący szczeniak",
		},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if prep.prepared == nil {
		t.Fatalf("expected inline description to be prepared")
	}
	if prep.prepared.DogClass != descriptions.ClassBaby || prep.prepared.ShowID != "show-1" {
		t.Fatalf("expected class/show propagated, got %+v", prep.prepared)
	}
	if len(repo.descInserted) != 1 {
		t.Fatalf("expected description inserted with registration, got %d", len(repo.descInserted))
	}
}

func TestService_Register_InlineDescriptionFailure_LeavesNoRegistration(t *testing.T) {
	repo := newTestRepo()
	repo.failDesc = true
	svc, _ := newTestService(repo, shows.StatusOpen)

	_, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{
		DogID:    "dog-1",
		DogClass: descriptions.ClassBaby,
		Description: &InlineDescription{
			JudgeID: "judge-1",
			Grade:   descriptions.Grade{Scale: descriptions.ScaleBabyPuppy, Value: "very_promising"},
		},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected no registration to remain, got %d", len(repo.byID))
	}
}

func TestService_Delete_OnlyWhileShowOpen(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, shows.StatusOpen)

	reg, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{DogID: "dog-1", DogClass: descriptions.ClassOpen})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// La show avanza; la baja queda bloqueada.
	svc.showDir = testShowDir{"show-1": {ID: "show-1", Status: shows.StatusInProgress}}
	if err := svc.Delete(context.Background(), reg.ID); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR, got %v", err)
	}

	svc.showDir = testShowDir{"show-1": {ID: "show-1", Status: shows.StatusOpen}}
	if err := svc.Delete(context.Background(), reg.ID); err != nil {
		t.Fatalf("Delete while open: %v", err)
	}
}

func TestService_Register_DeletedDog_Rejected(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusOpen)

	gone := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.dogDir = testDogDir{"dog-1": {ID: "dog-1", DeletedAt: &gone}}

	_, err := svc.Register(context.Background(), "show-1", "sec-1", RegisterInput{DogID: "dog-1", DogClass: descriptions.ClassOpen})
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR for deleted dog, got %v", err)
	}
}
