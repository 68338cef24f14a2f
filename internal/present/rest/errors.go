package rest

import (
	"github.com/labstack/echo/v4"

	"github.com/totegamma/sendlog/internal/present/rest/presenter"
)

// ErrorHandler renders framework errors (405, unmatched paths, bind failures)
// in the same {"error": ...} envelope the handlers use.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	_ = presenter.Error(c, err)
}
