package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/totegamma/sendlog/internal/domain"
)

func newTestAttemptUsecase() (*AttemptUsecase, *mockAttemptRepo, *mockPublisher) {
	repo := newMockAttemptRepo()
	routes := newMockRouteRepo(domain.Route{ID: 7, CompanyName: "Boulder Co", Suburb: "Newtown", Existing: true})
	pub := &mockPublisher{}
	uc := NewAttemptUsecase(repo, routes, pub)
	uc.now = func() time.Time { return time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC) }
	return uc, repo, pub
}

func TestAttemptUsecaseAssignsSequentialNumbers(t *testing.T) {
	uc, _, pub := newTestAttemptUsecase()
	ctx := context.Background()

	first, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if first != 1 {
		t.Fatalf("expected attempt 1 got %d", first)
	}

	second, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if second != 2 {
		t.Fatalf("expected attempt 2 got %d", second)
	}

	other, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeTopRope})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if other != 1 {
		t.Fatalf("expected numbering per mode, got %d", other)
	}

	if len(pub.events) != 6 {
		t.Fatalf("expected 2 events per attempt got %d", len(pub.events))
	}
	if pub.events[1].Channel != domain.GymChannel("Boulder Co", "Newtown") {
		t.Fatalf("unexpected channel %s", pub.events[1].Channel)
	}
}

func TestAttemptUsecaseExplicitNumber(t *testing.T) {
	uc, _, _ := newTestAttemptUsecase()
	ctx := context.Background()

	if _, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead}); err != nil {
		t.Fatalf("record failed: %v", err)
	}

	_, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead, AttemptNo: 1})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for attemptNo <= max, got %v", err)
	}

	no, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead, AttemptNo: 5})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if no != 5 {
		t.Fatalf("expected attempt 5 got %d", no)
	}

	next, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if next != 6 {
		t.Fatalf("expected explicit number to become the new max, got %d", next)
	}
}

func TestAttemptUsecaseRetriesOnConflict(t *testing.T) {
	uc, repo, _ := newTestAttemptUsecase()
	repo.conflictOn[1] = true

	no, err := uc.Record(context.Background(), "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}
	if no != 2 {
		t.Fatalf("expected retry to land on 2 got %d", no)
	}
	if repo.creates != 2 {
		t.Fatalf("expected 2 inserts got %d", repo.creates)
	}
}

func TestAttemptUsecaseDefaultsAndValidation(t *testing.T) {
	uc, repo, _ := newTestAttemptUsecase()
	ctx := context.Background()

	if _, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead, Time: "09:05"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	stored := repo.attempts[attemptKey{"alex", 7, domain.ModeLead, 1}]
	if stored.Date != "2025-03-14" {
		t.Fatalf("expected default date got %s", stored.Date)
	}
	if stored.Time != "09:05:00" {
		t.Fatalf("expected normalized time got %s", stored.Time)
	}

	cases := []RecordAttemptInput{
		{Mode: domain.ModeLead},
		{RouteID: 7},
		{RouteID: 7, Mode: domain.ModeLead, Date: "14/03/2025"},
		{RouteID: 7, Mode: domain.ModeLead, Time: "late"},
		{RouteID: 7, Mode: domain.ModeLead, Rating: -1},
	}
	for _, input := range cases {
		if _, err := uc.Record(ctx, "alex", input); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("expected validation error for %+v got %v", input, err)
		}
	}

	if _, err := uc.Record(ctx, "alex", RecordAttemptInput{RouteID: 99, Mode: domain.ModeLead}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown route got %v", err)
	}

	if _, err := uc.Record(ctx, "", RecordAttemptInput{RouteID: 7, Mode: domain.ModeLead}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized without username got %v", err)
	}
}

func TestAttemptUsecaseProjectsUsesLimit(t *testing.T) {
	uc, _, _ := newTestAttemptUsecase()

	projects, err := uc.Projects(context.Background(), "alex")
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].AttemptCount != domain.ProjectLimit {
		t.Fatalf("expected limit %d to be passed through, got %+v", domain.ProjectLimit, projects)
	}
}
