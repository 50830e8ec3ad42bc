package storage

import (
	"context"
	"testing"
	"time"

	"github.com/candidex/screening-engine/internal/models"
)

func TestUpsertCandidateByEmail(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.UpsertCandidateByEmail(ctx, "Jane Doe", "jane@example.com")
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// Same email resolves to the same candidate, original name kept.
	second, err := repo.UpsertCandidateByEmail(ctx, "Jane D.", "jane@example.com")
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected id %d, got %d", first.ID, second.ID)
	}
	if second.Name != "Jane Doe" {
		t.Errorf("existing candidate name must not change, got %q", second.Name)
	}

	other, err := repo.UpsertCandidateByEmail(ctx, "John Roe", "john@example.com")
	if err != nil {
		t.Fatalf("third upsert failed: %v", err)
	}
	if other.ID == first.ID {
		t.Error("different emails must get different candidates")
	}
}

func TestCompleteAssessmentConditional(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a := &models.Assessment{
		ID:          "a1",
		QuestionIDs: []string{"q1"},
		Status:      models.AssessmentPending,
		CreatedAt:   time.Now().UTC(),
		Expiry:      time.Now().UTC().Add(time.Hour),
	}
	if err := repo.CreateAssessment(ctx, a); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	now := time.Now().UTC()
	ok, err := repo.CompleteAssessment(ctx, "a1", 80.0, now, 12.5)
	if err != nil || !ok {
		t.Fatalf("expected first complete to win, got ok=%v err=%v", ok, err)
	}

	// A second transition attempt of either kind is a no-op.
	ok, err = repo.CompleteAssessment(ctx, "a1", 10.0, now, 1.0)
	if err != nil || ok {
		t.Fatalf("expected second complete to lose, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.ExpireAssessment(ctx, "a1")
	if err != nil || ok {
		t.Fatalf("expected expire on completed to lose, got ok=%v err=%v", ok, err)
	}

	got, err := repo.GetAssessment(ctx, "a1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != models.AssessmentCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if *got.Score != 80.0 {
		t.Errorf("score overwritten: %v", *got.Score)
	}
	if *got.TimeTaken != 12.5 {
		t.Errorf("time_taken overwritten: %v", *got.TimeTaken)
	}
}

func TestExpireAssessmentConditional(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	a := &models.Assessment{
		ID:        "a2",
		Status:    models.AssessmentPending,
		CreatedAt: time.Now().UTC(),
		Expiry:    time.Now().UTC().Add(-time.Hour),
	}
	if err := repo.CreateAssessment(ctx, a); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := repo.ExpireAssessment(ctx, "a2")
	if err != nil || !ok {
		t.Fatalf("expected expire to win, got ok=%v err=%v", ok, err)
	}

	ok, err = repo.CompleteAssessment(ctx, "a2", 50.0, time.Now().UTC(), 5.0)
	if err != nil || ok {
		t.Fatalf("expected complete on expired to lose, got ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetAssessment(ctx, "a2")
	if got.Status != models.AssessmentExpired {
		t.Errorf("expected expired, got %s", got.Status)
	}
	if got.Score != nil {
		t.Error("expired assessment must have no score")
	}
}

func TestTransitionUnknownAssessment(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	ok, err := repo.CompleteAssessment(ctx, "missing", 100.0, time.Now().UTC(), 1.0)
	if err != nil || ok {
		t.Fatalf("expected no-op on missing id, got ok=%v err=%v", ok, err)
	}
	ok, err = repo.ExpireAssessment(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected no-op on missing id, got ok=%v err=%v", ok, err)
	}
}

func TestGetCompanyNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	c, err := repo.GetCompany(context.Background(), 42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if c != nil {
		t.Error("expected nil company for unknown id")
	}
}

func TestCreateAssessmentCopiesQuestionIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	ids := []string{"q1", "q2"}
	a := &models.Assessment{ID: "a3", QuestionIDs: ids, Status: models.AssessmentPending}
	if err := repo.CreateAssessment(ctx, a); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ids[0] = "mutated"

	got, _ := repo.GetAssessment(ctx, "a3")
	if got.QuestionIDs[0] != "q1" {
		t.Errorf("stored question ids aliased the caller slice: %v", got.QuestionIDs)
	}
}
