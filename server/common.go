package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memoflow/noted/common"
)

// httpError maps a store or validation error to an echo HTTP error.
func httpError(err error) error {
	switch common.ErrorCode(err) {
	case common.Invalid:
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case common.NotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case common.Unauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
