package middleware

// identity.go turns the claims stored by JWTAuth into a model.Caller and
// a string key for rate limiting.

import (
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
)

// CallerFrom returns the authenticated caller.  ok is false when the
// request did not pass through JWTAuth.
func CallerFrom(c echo.Context) (model.Caller, bool) {
    id, ok := c.Get(CtxUserID).(uint64)
    if !ok || id == 0 {
        return model.Caller{}, false
    }
    role, _ := c.Get(CtxRole).(string)
    return model.Caller{ID: id, Role: role}, true
}

// userKey identifies the caller for rate limiting; unauthenticated
// requests share the "anon" bucket for their IP.
func userKey(c echo.Context) string {
    if caller, ok := CallerFrom(c); ok {
        return strconv.FormatUint(caller.ID, 10)
    }
    return "anon"
}
