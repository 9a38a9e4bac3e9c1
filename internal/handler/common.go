package handler // handler holds the echo HTTP handlers

import (
    "context"
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/sports-session-scheduler/internal/middleware"
    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/service"
)

// requestTimeout bounds the store work done by a single handler.
const requestTimeout = 5 * time.Second

func requestCtx(c echo.Context) (context.Context, context.CancelFunc) {
    return context.WithTimeout(c.Request().Context(), requestTimeout)
}

// errUnauthenticated is reported when a protected handler runs without
// the JWT middleware having set a caller.
var errUnauthenticated = errors.New("unauthorized")

func callerOf(c echo.Context) (model.Caller, error) {
    caller, ok := middleware.CallerFrom(c)
    if !ok {
        return model.Caller{}, errUnauthenticated
    }
    return caller, nil
}

// parseID reads a positive numeric path parameter.
func parseID(c echo.Context, name string) (uint64, bool) {
    id, err := strconv.ParseUint(c.Param(name), 10, 64)
    if err != nil || id == 0 {
        return 0, false
    }
    return id, true
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// statusOf maps a service error kind to an HTTP status.  ok is false for
// errors outside the taxonomy.
func statusOf(err error) (int, bool) {
    switch {
    case errors.Is(err, service.ErrNotFound):
        return http.StatusNotFound, true
    case errors.Is(err, service.ErrNotAuthorized):
        return http.StatusForbidden, true
    case errors.Is(err, service.ErrInvalidOperation),
        errors.Is(err, service.ErrCapacityExceeded),
        errors.Is(err, service.ErrDuplicateMembership):
        return http.StatusBadRequest, true
    }
    return 0, false
}

// writeError renders err as {"error": msg}.  Unexpected errors are logged
// and hidden behind a generic 500.
func writeError(c echo.Context, log zerolog.Logger, err error) error {
    if errors.Is(err, errUnauthenticated) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
    }
    if status, ok := statusOf(err); ok {
        return c.JSON(status, echo.Map{"error": err.Error()})
    }
    log.Error().Err(err).
        Str("method", c.Request().Method).
        Str("path", c.Path()).
        Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
        Msg("request failed")
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
