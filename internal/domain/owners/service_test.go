package owners

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
	byID map[string]Owner
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Owner{}}
}

func (r *testRepo) Create(ctx context.Context, o Owner) error {
	for _, x := range r.byID {
		if !x.IsDeleted() && x.Email == o.Email {
			return ErrDuplicate
		}
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) Update(ctx context.Context, o Owner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Owner, error) {
	o, ok := r.byID[id]
	if !ok || o.IsDeleted() {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) FindByEmail(ctx context.Context, email string) (Owner, error) {
	for _, o := range r.byID {
		if !o.IsDeleted() && o.Email == email {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Owner, int, error) {
	out := make([]Owner, 0)
	for _, o := range r.byID {
		if !f.IncludeDeleted && o.IsDeleted() {
			continue
		}
		out = append(out, o)
	}
	return out, len(out), nil
}

func (r *testRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	o, ok := r.byID[id]
	if !ok || o.IsDeleted() {
		return ErrNotFound
	}
	o.DeletedAt = &at
	r.byID[id] = o
	return nil
}

type fixedDogCounter int

func (n fixedDogCounter) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	return int(n), nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_RequiresGDPRConsent(t *testing.T) {
	svc := NewService(newTestRepo(), fixedDogCounter(0))

	_, err := svc.Create(context.Background(), CreateInput{
		FirstName:   "Anna",
		LastName:    "Kowalska",
		Email:       "anna@example.com",
		GDPRConsent: false,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestService_Create_NormalizesEmail_AndStampsConsent(t *testing.T) {
	svc := NewService(newTestRepo(), fixedDogCounter(0))

	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	o, err := svc.Create(context.Background(), CreateInput{
		FirstName:   "Anna",
		LastName:    "Kowalska",
		Email:       "  Anna@Example.COM ",
		GDPRConsent: true,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if o.Email != "anna@example.com" {
		t.Fatalf("expected normalized email, got %q", o.Email)
	}
	if o.GDPRConsentAt != now {
		t.Fatalf("expected consent stamped at now")
	}
	if o.Country != "PL" {
		t.Fatalf("expected default country PL, got %q", o.Country)
	}
}

func TestService_Create_DuplicateEmail_Conflicts(t *testing.T) {
	svc := NewService(newTestRepo(), fixedDogCounter(0))

	in := CreateInput{FirstName: "Anna", LastName: "Kowalska", Email: "anna@example.com", GDPRConsent: true}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	_, err := svc.Create(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestService_Update_EmailTakenByOther_Conflicts(t *testing.T) {
	svc := NewService(newTestRepo(), fixedDogCounter(0))

	a, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Anna", LastName: "Kowalska", Email: "anna@example.com", GDPRConsent: true,
	})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jan", LastName: "Nowak", Email: "jan@example.com", GDPRConsent: true,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	taken := "jan@example.com"
	_, err = svc.Update(context.Background(), a.ID, UpdateInput{Email: &taken})
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestService_Delete_BlockedWhileOwnerHasDogs(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, fixedDogCounter(2))

	o, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Anna", LastName: "Kowalska", Email: "anna@example.com", GDPRConsent: true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	err = svc.Delete(context.Background(), o.ID)
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR, got %v", err)
	}

	// Sin perros activos el soft-delete pasa y el owner deja de resolverse.
	svc.dogs = fixedDogCounter(0)
	if err := svc.Delete(context.Background(), o.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), o.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND after delete, got %v", err)
	}
}
