package descriptions

import (
	"context"
	"testing"

	"dog-show-club/internal/apperr"
	"dog-show-club/internal/domain/dogs"
	"dog-show-club/internal/domain/judges"
	"dog-show-club/internal/domain/shows"
)

// -------------------------
// Test repo y directorios fake
// -------------------------

type testRepo struct {
	byID      map[string]Description
	revisions map[string][]Revision
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:      map[string]Description{},
		revisions: map[string][]Revision{},
	}
}

func (r *testRepo) Create(ctx context.Context, d Description) error {
	for _, x := range r.byID {
		if x.ShowID == d.ShowID && x.DogID == d.DogID && x.JudgeID == d.JudgeID {
			return ErrDuplicate
		}
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) Update(ctx context.Context, d Description) error {
	if _, ok := r.byID[d.ID]; !ok {
		return ErrNotFound
	}
	r.byID[d.ID] = d
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Description, error) {
	d, ok := r.byID[id]
	if !ok {
		return Description{}, ErrNotFound
	}
	return d, nil
}

func (r *testRepo) FindByShowDogJudge(ctx context.Context, showID, dogID, judgeID string) (Description, error) {
	for _, d := range r.byID {
		if d.ShowID == showID && d.DogID == dogID && d.JudgeID == judgeID {
			return d, nil
		}
	}
	return Description{}, ErrNotFound
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *testRepo) AddRevision(ctx context.Context, rev Revision) error {
	r.revisions[rev.DescriptionID] = append(r.revisions[rev.DescriptionID], rev)
	return nil
}

func (r *testRepo) ListRevisions(ctx context.Context, descriptionID string) ([]Revision, error) {
	return r.revisions[descriptionID], nil
}

type testShowDir struct {
	shows    map[string]shows.Show
	assigned map[string]bool // "showID/secretaryID/breedID"
}

func (d *testShowDir) GetByID(ctx context.Context, id string) (shows.Show, error) {
	sh, ok := d.shows[id]
	if !ok {
		return shows.Show{}, apperr.NotFound("show not found")
	}
	return sh, nil
}

func (d *testShowDir) IsSecretaryAssigned(ctx context.Context, showID, secretaryUserID, breedID string) (bool, error) {
	return d.assigned[showID+"/"+secretaryUserID+"/"+breedID], nil
}

type testDogDir map[string]dogs.Dog

func (d testDogDir) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	dog, ok := d[id]
	if !ok {
		return dogs.Dog{}, apperr.NotFound("dog not found")
	}
	return dog, nil
}

type testJudgeDir map[string]judges.Judge

func (d testJudgeDir) GetByID(ctx context.Context, id string) (judges.Judge, error) {
	j, ok := d[id]
	if !ok {
		return judges.Judge{}, apperr.NotFound("judge not found")
	}
	return j, nil
}

func newTestService(repo *testRepo, status shows.Status) (*Service, *testShowDir) {
	showDir := &testShowDir{
		shows: map[string]shows.Show{
			"show-1": {ID: "show-1", Status: status},
		},
		assigned: map[string]bool{
			"show-1/sec-1/breed-1": true,
		},
	}
	dogDir := testDogDir{
		"dog-1": {ID: "dog-1", BreedID: "breed-1"},
	}
	judgeDir := testJudgeDir{
		"judge-1": {ID: "judge-1"},
	}
	return NewService(repo, showDir, dogDir, judgeDir), showDir
}

func validCreate() CreateInput {
	return CreateInput{
		ShowID:   "show-1",
		DogID:    "dog-1",
		JudgeID:  "judge-1",
		DogClass: ClassOpen,
		Grade:    Grade{Scale: ScaleStandard, Value: "excellent"},
		Content:  "Doskonały przedstawiciel rasy",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_GradeScaleMustMatchClass(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusInProgress)

	in := validCreate()
	in.DogClass = ClassBaby // clase corta con nota estándar
	_, err := svc.Create(context.Background(), "sec-1", in)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	in = validCreate()
	in.Grade = Grade{Scale: ScaleBabyPuppy, Value: "promising"} // clase open con nota corta
	_, err = svc.Create(context.Background(), "sec-1", in)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	in = validCreate()
	in.Grade = Grade{Scale: ScaleStandard, Value: "superb"} // valor fuera de escala
	_, err = svc.Create(context.Background(), "sec-1", in)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for bad value, got %v", err)
	}
}

func TestService_Create_UnassignedSecretary_Forbidden(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusInProgress)

	_, err := svc.Create(context.Background(), "sec-other", validCreate())
	if apperr.KindOf(err) != apperr.KindAuthorization {
		t.Fatalf("expected AUTHORIZATION_ERROR, got %v", err)
	}
}

func TestService_Create_DuplicateTriple_Conflicts(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusInProgress)

	if _, err := svc.Create(context.Background(), "sec-1", validCreate()); err != nil {
		t.Fatalf("Create #1: %v", err)
	}
	_, err := svc.Create(context.Background(), "sec-1", validCreate())
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestService_Create_RejectedOnTerminalShow(t *testing.T) {
	for _, status := range []shows.Status{shows.StatusCompleted, shows.StatusCancelled} {
		svc, _ := newTestService(newTestRepo(), status)

		_, err := svc.Create(context.Background(), "sec-1", validCreate())
		if apperr.KindOf(err) != apperr.KindBusinessRule {
			t.Fatalf("status %s: expected BUSINESS_RULE_ERROR, got %v", status, err)
		}
	}
}

func TestService_Update_SnapshotsPreviousVersion(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newTestService(repo, shows.StatusInProgress)

	d, err := svc.Create(context.Background(), "sec-1", validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.Version != 1 {
		t.Fatalf("expected version 1, got %d", d.Version)
	}

	grade := Grade{Scale: ScaleStandard, Value: "very_good"}
	updated, err := svc.Update(context.Background(), d.ID, "sec-1", UpdateInput{Grade: &grade})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Version != 2 {
		t.Fatalf("expected version 2, got %d", updated.Version)
	}

	revs, err := svc.ListRevisions(context.Background(), d.ID)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revs) != 1 {
		t.Fatalf("expected 1 archived revision, got %d", len(revs))
	}
	if revs[0].Version != 1 || revs[0].Grade.Value != "excellent" {
		t.Fatalf("expected snapshot of version 1 with excellent, got %+v", revs[0])
	}
}

func TestService_Finalize_IsTerminal(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusInProgress)

	d, err := svc.Create(context.Background(), "sec-1", validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	final, err := svc.Finalize(context.Background(), d.ID, "sec-1")
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if !final.IsFinal || final.FinalizedAt == nil {
		t.Fatalf("expected final with timestamp, got %+v", final)
	}

	// Re-finalize y update quedan bloqueados.
	if _, err := svc.Finalize(context.Background(), d.ID, "sec-1"); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR on re-finalize, got %v", err)
	}
	content := "nuevo texto"
	if _, err := svc.Update(context.Background(), d.ID, "sec-1", UpdateInput{Content: &content}); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR on update after finalize, got %v", err)
	}
}

func TestService_Update_FrozenWhenShowCompletes(t *testing.T) {
	repo := newTestRepo()
	svc, showDir := newTestService(repo, shows.StatusInProgress)

	d, err := svc.Create(context.Background(), "sec-1", validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	showDir.shows["show-1"] = shows.Show{ID: "show-1", Status: shows.StatusCompleted}

	content := "tarde"
	_, err = svc.Update(context.Background(), d.ID, "sec-1", UpdateInput{Content: &content})
	if apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR, got %v", err)
	}
}

func TestService_Delete_OnlyDrafts(t *testing.T) {
	svc, _ := newTestService(newTestRepo(), shows.StatusInProgress)

	d, err := svc.Create(context.Background(), "sec-1", validCreate())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Finalize(context.Background(), d.ID, "sec-1"); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if err := svc.Delete(context.Background(), d.ID, "sec-1"); apperr.KindOf(err) != apperr.KindBusinessRule {
		t.Fatalf("expected BUSINESS_RULE_ERROR deleting final description, got %v", err)
	}
}

func TestValidateGrade_PlacementRange(t *testing.T) {
	g := Grade{Scale: ScaleStandard, Value: "excellent"}
	if err := validateGrade(ClassOpen, g, 4); err != nil {
		t.Fatalf("placement 4 should pass: %v", err)
	}
	if err := validateGrade(ClassOpen, g, 5); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected VALIDATION_ERROR for placement 5, got %v", err)
	}
}
