package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/sendlog/internal/domain"
)

type RouteInput struct {
	CreationDate  string `json:"creationDate"`
	CompanyName   string `json:"companyName" validate:"required"`
	Suburb        string `json:"suburb" validate:"required"`
	Location      string `json:"location" validate:"required"`
	GradingSystem string `json:"gradingSystem"`
	Grade         string `json:"grade"`
	ClimbType     string `json:"climbType"`
	Colour        string `json:"colour"`
	NumberHolds   int    `json:"numberHolds" validate:"gte=0"`
}

type RouteUsecase struct {
	repo    RouteRepository
	catalog CatalogRepository
	events  EventPublisher
	now     func() time.Time
}

func NewRouteUsecase(repo RouteRepository, catalog CatalogRepository, events EventPublisher) *RouteUsecase {
	if events == nil {
		events = nopPublisher{}
	}
	return &RouteUsecase{
		repo:    repo,
		catalog: catalog,
		events:  events,
		now:     time.Now,
	}
}

func (uc *RouteUsecase) List(ctx context.Context, filter domain.RouteFilter) ([]domain.Route, error) {
	ctx, span := tracer.Start(ctx, "Route.Usecase.List")
	defer span.End()

	routes, err := uc.repo.List(ctx, filter)
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, "RouteUsecase.List")
	}
	return routes, nil
}

// Archive hides a route from listings. Archiving an archived route is a no-op.
func (uc *RouteUsecase) Archive(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Route.Usecase.Archive")
	defer span.End()

	if id <= 0 {
		return domain.ValidationError{Message: "RID is required to archive a route"}
	}
	span.SetAttributes(attribute.Int64("RouteID", id))

	route, err := uc.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NotFoundError{Resource: fmt.Sprintf("route %d", id)}
		}
		span.RecordError(err)
		return pkgerrors.Wrap(err, "RouteUsecase.Archive: lookup failed")
	}
	if !route.Existing {
		return nil
	}

	if err := uc.repo.Archive(ctx, id); err != nil {
		span.RecordError(err)
		return pkgerrors.Wrap(err, "RouteUsecase.Archive")
	}

	route.Existing = false
	uc.publish(ctx, domain.EventRouteArchived, route.CompanyName, route.Suburb, route)
	return nil
}

// Add inserts routes in order. Grading systems are resolved for the whole batch
// before anything is written; an insert failure stops the batch and leaves the
// routes already inserted in place.
func (uc *RouteUsecase) Add(ctx context.Context, inputs []RouteInput) ([]int64, error) {
	ctx, span := tracer.Start(ctx, "Route.Usecase.Add")
	defer span.End()

	if len(inputs) == 0 {
		return nil, domain.ValidationError{Message: "No routes provided"}
	}
	span.SetAttributes(attribute.Int("Count", len(inputs)))

	companies := map[string]domain.Company{}
	routes := make([]domain.Route, 0, len(inputs))
	for i, input := range inputs {
		if err := checkInput(input); err != nil {
			return nil, domain.Invalid("routes[%d]: %s", i, err.Error())
		}

		system := input.GradingSystem
		if system == "" {
			company, ok := companies[input.CompanyName]
			if !ok {
				var err error
				company, err = uc.catalog.GetCompany(ctx, input.CompanyName)
				if err != nil && !errors.Is(err, domain.ErrNotFound) {
					span.RecordError(err)
					return nil, pkgerrors.Wrap(err, "RouteUsecase.Add: company lookup failed")
				}
				companies[input.CompanyName] = company
			}
			system = GradingSystemFor(company, input.ClimbType)
		}
		if system == "" {
			return nil, domain.Invalid("Could not determine grading system for company %s and type %s", input.CompanyName, input.ClimbType)
		}

		creationDate := input.CreationDate
		if creationDate == "" {
			creationDate = uc.now().UTC().Format(domain.DateLayout)
		} else if _, err := time.Parse(domain.DateLayout, creationDate); err != nil {
			return nil, domain.Invalid("routes[%d]: invalid creationDate %q", i, creationDate)
		}

		routes = append(routes, domain.Route{
			CreationDate:  creationDate,
			CompanyName:   input.CompanyName,
			Suburb:        input.Suburb,
			Location:      input.Location,
			GradingSystem: system,
			Grade:         input.Grade,
			ClimbType:     input.ClimbType,
			Colour:        input.Colour,
			NumberHolds:   input.NumberHolds,
			Existing:      true,
		})
	}

	ids := make([]int64, 0, len(routes))
	for i := range routes {
		id, err := uc.repo.Create(ctx, routes[i])
		if err != nil {
			span.RecordError(err)
			return ids, pkgerrors.Wrapf(err, "RouteUsecase.Add: insert %d of %d failed", i+1, len(routes))
		}
		routes[i].ID = id
		ids = append(ids, id)
		uc.publish(ctx, domain.EventRoutesAdded, routes[i].CompanyName, routes[i].Suburb, routes[i])
	}

	return ids, nil
}

func (uc *RouteUsecase) publish(ctx context.Context, kind domain.EventType, company, suburb string, route domain.Route) {
	channel := domain.GymChannel(company, suburb)
	err := uc.events.Publish(ctx, domain.Event{
		Type:      kind,
		Channel:   channel,
		Payload:   route,
		Timestamp: uc.now().UTC(),
	})
	if err != nil {
		slog.WarnContext(
			ctx, "failed to publish route event",
			slog.String("error", err.Error()),
			slog.String("channel", channel),
			slog.String("module", "route"),
		)
	}
}

// GradingSystemFor picks the company's boulder or sport scale for a climb type.
func GradingSystemFor(company domain.Company, climbType string) string {
	if strings.EqualFold(climbType, domain.ClimbTypeBoulder) {
		return company.BoulderGradeSystem
	}
	return company.SportGradeSystem
}
