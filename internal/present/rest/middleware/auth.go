package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/sendlog/internal/domain"
	"github.com/totegamma/sendlog/internal/present/rest/presenter"
)

var tracer = otel.Tracer("auth")

// IdentifyUsername copies the X-Username header into the request context.
// The header is trusted verbatim; login never issues anything stronger.
func IdentifyUsername(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyUsername")
		defer span.End()

		username := c.Request().Header.Get(domain.RequesterUsernameHeader)
		if username != "" {
			ctx = context.WithValue(ctx, domain.RequesterUsernameCtxKey, username)
			span.SetAttributes(attribute.String("RequesterUsername", username))
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireUsername rejects requests that did not identify a user.
func RequireUsername(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Username(c) == "" {
			return presenter.Unauthorized(c, domain.UnauthorizedError{}.Error())
		}
		return next(c)
	}
}

func Username(c echo.Context) string {
	username, _ := c.Request().Context().Value(domain.RequesterUsernameCtxKey).(string)
	return username
}
