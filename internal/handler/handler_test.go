package handler

import (
    "encoding/json"
    "io"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/sports-session-scheduler/internal/middleware"
    "github.com/iliyamo/sports-session-scheduler/internal/utils"
)

const testSecret = "handler-test-secret"

func newEcho() *echo.Echo {
    e := echo.New()
    e.Validator = NewValidator()
    return e
}

func bearer(t *testing.T, id uint64, role string) string {
    t.Helper()
    tok, err := utils.NewAccessToken(testSecret, id, role, time.Hour, time.Now())
    require.NoError(t, err)
    return "Bearer " + tok.Token
}

func authed() echo.MiddlewareFunc { return middleware.JWTAuth(testSecret) }

func call(e *echo.Echo, method, path, auth, body string) *httptest.ResponseRecorder {
    var r io.Reader
    if body != "" {
        r = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, path, r)
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    if auth != "" {
        req.Header.Set(echo.HeaderAuthorization, auth)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
    t.Helper()
    var m map[string]interface{}
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
    return m
}
