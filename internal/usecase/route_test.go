package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/totegamma/sendlog/internal/domain"
)

func newTestCatalog() *mockCatalogRepo {
	catalog := newMockCatalogRepo()
	catalog.companies["Boulder Co"] = domain.Company{
		CompanyName:        "Boulder Co",
		BoulderGradeSystem: "V",
		SportGradeSystem:   "Ewbank",
	}
	catalog.companies["Ropes Only"] = domain.Company{
		CompanyName:      "Ropes Only",
		SportGradeSystem: "YDS",
	}
	return catalog
}

func TestRouteUsecaseAddInfersGradingSystem(t *testing.T) {
	repo := newMockRouteRepo()
	pub := &mockPublisher{}
	uc := NewRouteUsecase(repo, newTestCatalog(), pub)

	ids, err := uc.Add(context.Background(), []RouteInput{
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Cave", ClimbType: "Boulder", Grade: "V4"},
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Slab", ClimbType: "lead", Grade: "22"},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids got %d", len(ids))
	}

	if got := repo.routes[ids[0]].GradingSystem; got != "V" {
		t.Fatalf("expected boulder system V got %s", got)
	}
	if got := repo.routes[ids[1]].GradingSystem; got != "Ewbank" {
		t.Fatalf("expected sport system Ewbank got %s", got)
	}
	if !repo.routes[ids[0]].Existing {
		t.Fatalf("expected new routes to exist")
	}
	if len(pub.events) != 2 {
		t.Fatalf("expected an event per route got %d", len(pub.events))
	}
}

func TestRouteUsecaseAddFailsWholeBatchWhenUnresolvable(t *testing.T) {
	repo := newMockRouteRepo()
	uc := NewRouteUsecase(repo, newTestCatalog(), nil)

	_, err := uc.Add(context.Background(), []RouteInput{
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Cave", ClimbType: "boulder"},
		{CompanyName: "Ropes Only", Suburb: "Marrickville", Location: "Bay", ClimbType: "boulder"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if repo.creates != 0 {
		t.Fatalf("expected no inserts, got %d", repo.creates)
	}

	_, err = uc.Add(context.Background(), []RouteInput{
		{CompanyName: "Nobody", Suburb: "Nowhere", Location: "Wall"},
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unknown company got %v", err)
	}
}

func TestRouteUsecaseAddStopsAtFirstInsertFailure(t *testing.T) {
	repo := newMockRouteRepo()
	repo.failAt = 2
	uc := NewRouteUsecase(repo, newTestCatalog(), nil)

	ids, err := uc.Add(context.Background(), []RouteInput{
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Cave", ClimbType: "boulder"},
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Cave", ClimbType: "boulder"},
		{CompanyName: "Boulder Co", Suburb: "Newtown", Location: "Cave", ClimbType: "boulder"},
	})
	if err == nil {
		t.Fatalf("expected insert failure")
	}
	if len(ids) != 1 || repo.creates != 2 {
		t.Fatalf("expected batch to stop after first failure, ids=%v creates=%d", ids, repo.creates)
	}
}

func TestRouteUsecaseAddRejectsEmpty(t *testing.T) {
	uc := NewRouteUsecase(newMockRouteRepo(), newTestCatalog(), nil)
	if _, err := uc.Add(context.Background(), nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestRouteUsecaseArchive(t *testing.T) {
	repo := newMockRouteRepo(domain.Route{ID: 3, CompanyName: "Boulder Co", Suburb: "Newtown", Existing: true})
	pub := &mockPublisher{}
	uc := NewRouteUsecase(repo, newTestCatalog(), pub)
	ctx := context.Background()

	if err := uc.Archive(ctx, 3); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if repo.routes[3].Existing {
		t.Fatalf("expected route to be archived")
	}

	if err := uc.Archive(ctx, 3); err != nil {
		t.Fatalf("second archive should be a no-op, got %v", err)
	}
	if len(repo.archived) != 1 || len(pub.events) != 1 {
		t.Fatalf("expected a single archive write and event, got %d and %d", len(repo.archived), len(pub.events))
	}

	routes, _ := uc.List(ctx, domain.RouteFilter{})
	if len(routes) != 0 {
		t.Fatalf("expected archived route to disappear from listing")
	}

	if err := uc.Archive(ctx, 0); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error got %v", err)
	}
	if err := uc.Archive(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}
