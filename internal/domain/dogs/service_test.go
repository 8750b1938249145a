package dogs

import (
	"context"
	"testing"
	"time"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/breeds"
	"dog-show-club/internal/domain/owners"
)

// -------------------------
// Test repo y directorios fake
// -------------------------

type testRepo struct {
	byID map[string]Dog
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Dog{}}
}

func (r *testRepo) Create(ctx context.Context, d Dog) error {
	for _, x := range r.byID {
		if !x.IsDeleted() && x.Microchip == d.Microchip {
			return ErrDuplicate
		}
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, d Dog) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Dog, error) {
	d, ok := r.byID[id]
	if !ok || d.IsDeleted() {
		return Dog{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) FindByMicrochip(ctx context.Context, microchip string) (Dog, error) {
	for _, d := range r.byID {
		if !d.IsDeleted() && d.Microchip == microchip {
			return d, nil
		}
	}
	return Dog{}, ErrNotFound
}

func (r *testRepo) List(ctx context.Context, f ListFilter) ([]Dog, int, error) {
	out := make([]Dog, 0)
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out, len(out), nil
}

func (r *testRepo) CountActiveByOwner(ctx context.Context, ownerID string) (int, error) {
	n := 0
	for _, d := range r.byID {
		if d.IsDeleted() {
			continue
		}
		for _, l := range d.Owners {
			if l.OwnerID == ownerID {
				n++
			}
		}
	}
	return n, nil
}

func (r *testRepo) SoftDelete(ctx context.Context, id string, at time.Time) error {
	d, ok := r.byID[id]
	if !ok || d.IsDeleted() {
		return ErrNotFound
	}
	d.DeletedAt = &at
	r.byID[id] = d
	return nil
}

type testBreedDir map[string]breeds.Breed

func (d testBreedDir) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	b, ok := d[id]
	if !ok {
		return breeds.Breed{}, apperr.NotFound("breed not found")
	}
	return b, nil
}

type testOwnerDir map[string]owners.Owner

func (d testOwnerDir) GetByID(ctx context.Context, id string) (owners.Owner, error) {
	o, ok := d[id]
	if !ok {
		return owners.Owner{}, apperr.NotFound("owner not found")
	}
	return o, nil
}

func newTestService(repo *testRepo) *Service {
	breedDir := testBreedDir{
		"breed-1": {ID: "breed-1", NamePL: "Owczarek niemiecki", FCIGroup: 1, IsActive: true},
		"breed-2": {ID: "breed-2", NamePL: "Chart polski", FCIGroup: 10, IsActive: false},
	}
	ownerDir := testOwnerDir{
		"owner-1": {ID: "owner-1"},
		"owner-2": {ID: "owner-2"},
	}
	return NewService(repo, breedDir, ownerDir)
}

func validCreate() CreateInput {
	return CreateInput{
		Name:      "Burek",
		BreedID:   "breed-1",
		Gender:    "male",
		BirthDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Microchip: "616093900012345",
		Owners:    []OwnerLink{{OwnerID: "owner-1", IsPrimary: true}},
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_MicrochipMustBe15Digits(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validCreate()
	in.Microchip = "61609390001234" // 14
	if _, err := svc.Create(context.Background(), in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for short chip, got %v", err)
	}

	in.Microchip = "61609390001234X"
	if _, err := svc.Create(context.Background(), in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for non-digit chip, got %v", err)
	}
}

func TestService_Create_DuplicateMicrochip_Conflicts(t *testing.T) {
	svc := newTestService(newTestRepo())

	if _, err := svc.Create(context.Background(), validCreate()); err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}

	in := validCreate()
	in.Name = "Azor"
	_, err := svc.Create(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestService_Create_ExactlyOnePrimaryOwner(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validCreate()
	in.Owners = []OwnerLink{{OwnerID: "owner-1"}, {OwnerID: "owner-2"}}
	if _, err := svc.Create(context.Background(), in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR with zero primaries, got %v", err)
	}

	in.Owners = []OwnerLink{{OwnerID: "owner-1", IsPrimary: true}, {OwnerID: "owner-2", IsPrimary: true}}
	if _, err := svc.Create(context.Background(), in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR with two primaries, got %v", err)
	}

	in.Owners = []OwnerLink{{OwnerID: "owner-1", IsPrimary: true}, {OwnerID: "owner-2"}}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("expected co-ownership with one primary to pass, got %v", err)
	}
}

func TestService_Create_RejectsUnknownOwner(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validCreate()
	in.Owners = []OwnerLink{{OwnerID: "owner-ghost", IsPrimary: true}}
	_, err := svc.Create(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected NOT_FOUND for unknown owner, got %v", err)
	}
}

func TestService_Create_RejectsInactiveBreed(t *testing.T) {
	svc := newTestService(newTestRepo())

	in := validCreate()
	in.BreedID = "breed-2"
	_, err := svc.Create(context.Background(), in)
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR for inactive breed, got %v", err)
	}
}

func TestService_Delete_SoftDeleteFreesMicrochip(t *testing.T) {
	svc := newTestService(newTestRepo())

	d, err := svc.Create(context.Background(), validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// El chip del perro borrado se puede reusar: la unicidad es entre vivos.
	if _, err := svc.Create(context.Background(), validCreate()); err != nil {
		t.Fatalf("expected chip reusable after soft delete, got %v", err)
	}
}
