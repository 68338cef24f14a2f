package usecase

import (
	"context"

	"github.com/totegamma/sendlog/internal/domain"
)

// ClimberRepository defines persistence/lookup for registered users.
type ClimberRepository interface {
	Get(ctx context.Context, username string) (domain.Climber, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, climber domain.Climber) error
}

// AttemptRepository defines storage and dashboard queries for attempts.
type AttemptRepository interface {
	MaxAttemptNo(ctx context.Context, username string, routeID int64, mode string) (int, error)
	Create(ctx context.Context, attempt domain.Attempt) error
	List(ctx context.Context, username string, filter domain.RouteFilter) ([]domain.AttemptView, error)
	OpenProjects(ctx context.Context, username string, limit int) ([]domain.Project, error)
	SortedHistory(ctx context.Context, username string) ([]domain.AttemptView, error)
}

// RouteRepository defines storage for routes. Routes are archived, never deleted.
type RouteRepository interface {
	Get(ctx context.Context, id int64) (domain.Route, error)
	List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error)
	Archive(ctx context.Context, id int64) error
	Create(ctx context.Context, route domain.Route) (int64, error)
}

// CatalogRepository defines storage for gym reference data.
type CatalogRepository interface {
	CreateCompany(ctx context.Context, company domain.Company) error
	GetCompany(ctx context.Context, name string) (domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)

	CreateGym(ctx context.Context, gym domain.Gym) error
	GymExists(ctx context.Context, company, suburb string) (bool, error)
	ListGyms(ctx context.Context, company string) ([]domain.Gym, error)

	CreateLocation(ctx context.Context, location domain.Location) error
	ListLocations(ctx context.Context, company, suburb string) ([]domain.Location, error)
	ListClimbTypes(ctx context.Context, company, suburb string) ([]string, error)

	CreateColour(ctx context.Context, colour domain.Colour) error
	ListColours(ctx context.Context, company string) ([]domain.Colour, error)

	CreateGradeSystem(ctx context.Context, name string) error
	GradeSystemExists(ctx context.Context, name string) (bool, error)
	ListGradeSystems(ctx context.Context) ([]string, error)
	CreateGrade(ctx context.Context, grade domain.Grade) error
	ListGrades(ctx context.Context, system string) ([]domain.Grade, error)

	CreateMode(ctx context.Context, mode domain.Mode) error
	ListModes(ctx context.Context) ([]domain.Mode, error)
	CreateResult(ctx context.Context, result domain.Result) error
	ListResults(ctx context.Context) ([]domain.Result, error)
}

// PasswordHasher produces and checks stored credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// EventPublisher fans out domain events to realtime listeners.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, event domain.Event) error { return nil }
