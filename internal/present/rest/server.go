package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/totegamma/sendlog/internal/domain"
)

// NewEcho builds the server shell shared by serve and the handler tests:
// error envelope, validator, panic recovery, and CORS.
func NewEcho(allowedOrigin string) *echo.Echo {
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Validator = NewValidator()

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{allowedOrigin},
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			domain.RequesterUsernameHeader,
		},
	}))

	return e
}
