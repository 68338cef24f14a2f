package usecase

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/sendlog/internal/domain"
)

var tracer = otel.Tracer("usecase")

type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type AuthUsecase struct {
	repo   ClimberRepository
	hasher PasswordHasher
}

func NewAuthUsecase(repo ClimberRepository, hasher PasswordHasher) *AuthUsecase {
	return &AuthUsecase{repo: repo, hasher: hasher}
}

func (uc *AuthUsecase) Register(ctx context.Context, input RegisterInput) error {
	ctx, span := tracer.Start(ctx, "Auth.Usecase.Register")
	defer span.End()

	if input.Username == "" || input.Password == "" {
		return domain.ValidationError{Message: "Username and password are required"}
	}
	span.SetAttributes(attribute.String("Username", input.Username))

	exists, err := uc.repo.Exists(ctx, input.Username)
	if err != nil {
		span.RecordError(err)
		return pkgerrors.Wrap(err, "AuthUsecase.Register: lookup failed")
	}
	if exists {
		return domain.ConflictError{Resource: "Username"}
	}

	stored, err := uc.hasher.Hash(input.Password)
	if err != nil {
		span.RecordError(err)
		return pkgerrors.Wrap(err, "AuthUsecase.Register: hash failed")
	}

	err = uc.repo.Create(ctx, domain.Climber{
		Username:  input.Username,
		Password:  stored,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Access:    domain.AccessRegular,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ConflictError{Resource: "Username"}
		}
		span.RecordError(err)
		return pkgerrors.Wrap(err, "AuthUsecase.Register: insert failed")
	}

	return nil
}

func (uc *AuthUsecase) Login(ctx context.Context, username, password string) (domain.Profile, error) {
	ctx, span := tracer.Start(ctx, "Auth.Usecase.Login")
	defer span.End()

	if username == "" || password == "" {
		return domain.Profile{}, domain.ValidationError{Message: "Username and password are required"}
	}
	span.SetAttributes(attribute.String("Username", username))

	climber, err := uc.repo.Get(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Profile{}, domain.UnauthorizedError{Message: "Invalid username"}
		}
		span.RecordError(err)
		return domain.Profile{}, pkgerrors.Wrap(err, "AuthUsecase.Login: lookup failed")
	}

	if !uc.hasher.Verify(climber.Password, password) {
		return domain.Profile{}, domain.UnauthorizedError{Message: "Invalid password"}
	}

	return climber.Profile(), nil
}
