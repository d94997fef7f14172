package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/at-ishikawa/studytracker/internal/eventstore"
	"github.com/at-ishikawa/studytracker/internal/goals"
	"github.com/at-ishikawa/studytracker/internal/report"
	"github.com/at-ishikawa/studytracker/internal/study"
)

var (
	errReadOnly = echo.NewHTTPError(http.StatusNotImplemented, "the configured store is read-only")
)

func badRequest(format string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, format).SetInternal(err)
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	var httpErr *echo.HTTPError
	var validationErr *study.ValidationError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.As(err, &validationErr),
		errors.Is(err, goals.ErrInvalidConfiguration),
		errors.Is(err, report.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, eventstore.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, eventstore.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, eventstore.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Error codes let API clients recover the domain error behind a status.
const (
	codeInvalidConfiguration = "invalid_configuration"
	codeInvalidPeriod        = "invalid_period"
	codeValidation           = "validation"
	codeNotFound             = "not_found"
	codeConflict             = "conflict"
	codeStorageUnavailable   = "storage_unavailable"
)

func errorCode(err error) string {
	var validationErr *study.ValidationError
	switch {
	case errors.Is(err, goals.ErrInvalidConfiguration):
		return codeInvalidConfiguration
	case errors.Is(err, report.ErrInvalidPeriod):
		return codeInvalidPeriod
	case errors.As(err, &validationErr):
		return codeValidation
	case errors.Is(err, eventstore.ErrNotFound):
		return codeNotFound
	case errors.Is(err, eventstore.ErrConflict):
		return codeConflict
	case errors.Is(err, eventstore.ErrStorageUnavailable):
		return codeStorageUnavailable
	}
	return ""
}

func httpErrorHandler(err error, ctx echo.Context) {
	code := statusOf(err)
	var message echo.Map

	var httpErr *echo.HTTPError
	var validationErr *study.ValidationError
	switch {
	case errors.As(err, &validationErr):
		fields := make(map[string]string, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields[f.Field] = f.Message
		}
		message = echo.Map{"error": validationErr.Error(), "fields": fields}
	case errors.As(err, &httpErr):
		message = echo.Map{"error": httpErr.Message}
	case code == http.StatusInternalServerError:
		slog.Default().Error("internal server error",
			slog.String("uri", ctx.Request().RequestURI),
			slog.Any("error", err),
		)
		message = echo.Map{"error": http.StatusText(code)}
	case code == http.StatusServiceUnavailable:
		slog.Default().Error("storage unavailable",
			slog.String("uri", ctx.Request().RequestURI),
			slog.Any("error", err),
		)
		message = echo.Map{"error": eventstore.ErrStorageUnavailable.Error()}
	default:
		message = echo.Map{"error": err.Error()}
	}

	if ctx.Echo().Debug {
		message = echo.Map{"error": err.Error()}
	}
	if errCode := errorCode(err); errCode != "" {
		message["code"] = errCode
	}

	if ctx.Response().Committed {
		return
	}
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, message)
	}
	if err != nil {
		slog.Default().Error("write error response", slog.Any("error", err))
	}
}
