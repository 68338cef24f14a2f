package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/sendlog/internal/domain"
)

const maxNumberingTries = 3

type RecordAttemptInput struct {
	RouteID   int64   `json:"rid" validate:"required,gt=0"`
	Mode      string  `json:"mode" validate:"required"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Result    string  `json:"result"`
	Rating    int     `json:"rating" validate:"gte=0"`
	Notes     string  `json:"notes"`
	Video     *string `json:"video"`
	AttemptNo int     `json:"attemptNo" validate:"gte=0"`
}

type AttemptUsecase struct {
	repo   AttemptRepository
	routes RouteRepository
	events EventPublisher
	now    func() time.Time
}

func NewAttemptUsecase(repo AttemptRepository, routes RouteRepository, events EventPublisher) *AttemptUsecase {
	if events == nil {
		events = nopPublisher{}
	}
	return &AttemptUsecase{
		repo:   repo,
		routes: routes,
		events: events,
		now:    time.Now,
	}
}

// Record stores an attempt and returns the attempt number it was filed under.
// Without an explicit number the next one is max+1 for (username, route, mode);
// an explicit number must be strictly greater than the current max.
func (uc *AttemptUsecase) Record(ctx context.Context, username string, input RecordAttemptInput) (int, error) {
	ctx, span := tracer.Start(ctx, "Attempt.Usecase.Record")
	defer span.End()

	if username == "" {
		return 0, domain.UnauthorizedError{}
	}
	if err := checkInput(input); err != nil {
		return 0, err
	}
	span.SetAttributes(
		attribute.String("Username", username),
		attribute.Int64("RouteID", input.RouteID),
		attribute.String("Mode", input.Mode),
	)

	date, clock, err := uc.normalizeWhen(input.Date, input.Time)
	if err != nil {
		return 0, err
	}

	route, err := uc.routes.Get(ctx, input.RouteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.NotFoundError{Resource: "route"}
		}
		span.RecordError(err)
		return 0, pkgerrors.Wrap(err, "AttemptUsecase.Record: route lookup failed")
	}

	attempt := domain.Attempt{
		Username: username,
		RouteID:  input.RouteID,
		Mode:     input.Mode,
		Date:     date,
		Time:     clock,
		Result:   input.Result,
		Rating:   input.Rating,
		Notes:    input.Notes,
		Video:    input.Video,
	}

	explicit := input.AttemptNo > 0
	for try := 0; try < maxNumberingTries; try++ {
		current, err := uc.repo.MaxAttemptNo(ctx, username, input.RouteID, input.Mode)
		if err != nil {
			span.RecordError(err)
			return 0, pkgerrors.Wrap(err, "AttemptUsecase.Record: max lookup failed")
		}

		if explicit {
			if input.AttemptNo <= current {
				return 0, domain.Invalid("attemptNo must be greater than %d", current)
			}
			attempt.AttemptNo = input.AttemptNo
		} else {
			attempt.AttemptNo = current + 1
		}

		err = uc.repo.Create(ctx, attempt)
		if err == nil {
			uc.publish(ctx, route, attempt)
			return attempt.AttemptNo, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			span.RecordError(err)
			return 0, pkgerrors.Wrap(err, "AttemptUsecase.Record: insert failed")
		}
		// a concurrent request took this number; explicit numbers are re-checked against the new max
	}

	return 0, domain.ConflictError{Resource: "attempt number"}
}

func (uc *AttemptUsecase) normalizeWhen(date, clock string) (string, string, error) {
	now := uc.now().UTC()

	if date == "" {
		date = now.Format(domain.DateLayout)
	} else {
		parsed, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			return "", "", domain.Invalid("invalid date %q, expected YYYY-MM-DD", date)
		}
		date = parsed.Format(domain.DateLayout)
	}

	if clock == "" {
		clock = now.Format(domain.TimeLayout)
	} else {
		parsed, err := time.Parse(domain.TimeLayout, clock)
		if err != nil {
			parsed, err = time.Parse("15:04", clock)
			if err != nil {
				return "", "", domain.Invalid("invalid time %q, expected HH:MM or HH:MM:SS", clock)
			}
		}
		clock = parsed.Format(domain.TimeLayout)
	}

	return date, clock, nil
}

func (uc *AttemptUsecase) publish(ctx context.Context, route domain.Route, attempt domain.Attempt) {
	for _, channel := range []string{
		domain.UserChannel(attempt.Username),
		domain.GymChannel(route.CompanyName, route.Suburb),
	} {
		err := uc.events.Publish(ctx, domain.Event{
			Type:      domain.EventAttemptRecorded,
			Channel:   channel,
			Username:  attempt.Username,
			Payload:   attempt,
			Timestamp: uc.now().UTC(),
		})
		if err != nil {
			slog.WarnContext(
				ctx, "failed to publish attempt event",
				slog.String("error", err.Error()),
				slog.String("channel", channel),
				slog.String("module", "attempt"),
			)
		}
	}
}

func (uc *AttemptUsecase) List(ctx context.Context, username string, filter domain.RouteFilter) ([]domain.AttemptView, error) {
	ctx, span := tracer.Start(ctx, "Attempt.Usecase.List")
	defer span.End()

	if username == "" {
		return nil, domain.UnauthorizedError{}
	}

	attempts, err := uc.repo.List(ctx, username, filter)
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, "AttemptUsecase.List")
	}
	return attempts, nil
}

// Projects returns the climber's hardest unsent (route, mode) pairs.
func (uc *AttemptUsecase) Projects(ctx context.Context, username string) ([]domain.Project, error) {
	ctx, span := tracer.Start(ctx, "Attempt.Usecase.Projects")
	defer span.End()

	if username == "" {
		return nil, domain.UnauthorizedError{}
	}

	projects, err := uc.repo.OpenProjects(ctx, username, domain.ProjectLimit)
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, "AttemptUsecase.Projects")
	}
	return projects, nil
}

func (uc *AttemptUsecase) SortedHistory(ctx context.Context, username string) ([]domain.AttemptView, error) {
	ctx, span := tracer.Start(ctx, "Attempt.Usecase.SortedHistory")
	defer span.End()

	if username == "" {
		return nil, domain.UnauthorizedError{}
	}

	attempts, err := uc.repo.SortedHistory(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, pkgerrors.Wrap(err, "AttemptUsecase.SortedHistory")
	}
	return attempts, nil
}
