package handler

import (
    "context"
    "database/sql"
    "net/http"
    "testing"
    "time"

    "github.com/google/uuid"
    "github.com/jonboulle/clockwork"
    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "github.com/stretchr/testify/suite"
    "golang.org/x/crypto/bcrypt"

    "github.com/iliyamo/sports-session-scheduler/internal/config"
    "github.com/iliyamo/sports-session-scheduler/internal/database"
    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
    t.Helper()
    db, err := database.OpenMemory("handler_" + uuid.NewString())
    require.NoError(t, err)
    t.Cleanup(func() { _ = db.Close() })
    require.NoError(t, database.Migrate(context.Background(), db))
    return db
}

type AuthSuite struct {
    suite.Suite
    e     *echo.Echo
    clock *clockwork.FakeClock
    cfg   config.Config
    db    *sql.DB
}

func TestAuthSuite(t *testing.T) {
    suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) SetupTest() {
    s.db = openTestDB(s.T())
    s.clock = clockwork.NewFakeClockAt(time.Now())
    s.cfg = config.Config{
        JWTSecret:      testSecret,
        AccessTTLMin:   15,
        RefreshTTLDays: 7,
        BcryptCost:     bcrypt.MinCost,
    }
    s.mount()
}

func (s *AuthSuite) mount() {
    h := NewAuthHandler(s.cfg, repository.NewUserRepo(s.db), repository.NewTokenRepo(s.db), s.clock, zerolog.Nop())
    s.e = newEcho()
    g := s.e.Group("/api/auth")
    g.POST("/signup", h.Signup)
    g.POST("/signin", h.Signin)
    g.POST("/refresh", h.Refresh)
    g.POST("/logout", h.Logout)
    g.GET("/me", h.Me, authed())
}

func (s *AuthSuite) signup(body string) map[string]interface{} {
    rec := call(s.e, http.MethodPost, "/api/auth/signup", "", body)
    s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
    return decode(s.T(), rec)
}

func token(m map[string]interface{}, part string) string {
    return m[part].(map[string]interface{})["token"].(string)
}

func (s *AuthSuite) TestSignupSigninAndMe() {
    resp := s.signup(`{"email":"Alice@Example.com","password":"secret1","name":"Alice"}`)
    user := resp["user"].(map[string]interface{})
    s.Equal("alice@example.com", user["email"])
    s.Equal(model.RolePlayer, user["role"])

    rec := call(s.e, http.MethodPost, "/api/auth/signup", "", `{"email":"alice@example.com","password":"secret1","name":"Again"}`)
    s.Equal(http.StatusConflict, rec.Code)

    rec = call(s.e, http.MethodPost, "/api/auth/signin", "", `{"email":"alice@example.com","password":"wrong"}`)
    s.Equal(http.StatusUnauthorized, rec.Code)
    rec = call(s.e, http.MethodPost, "/api/auth/signin", "", `{"email":"nobody@example.com","password":"secret1"}`)
    s.Equal(http.StatusUnauthorized, rec.Code)

    rec = call(s.e, http.MethodPost, "/api/auth/signin", "", `{"email":"ALICE@example.com","password":"secret1"}`)
    s.Require().Equal(http.StatusOK, rec.Code)
    access := token(decode(s.T(), rec), "access")

    rec = call(s.e, http.MethodGet, "/api/auth/me", "Bearer "+access, "")
    s.Require().Equal(http.StatusOK, rec.Code)
    me := decode(s.T(), rec)
    s.Equal("Alice", me["name"])
    s.Equal(model.RolePlayer, me["role"])
}

func (s *AuthSuite) TestSignupValidation() {
    for _, body := range []string{
        `{"password":"secret1","name":"A"}`,
        `{"email":"not-an-email","password":"secret1","name":"A"}`,
        `{"email":"a@example.com","password":"123","name":"A"}`,
        `{"email":"a@example.com","password":"secret1"}`,
        `{"email":"a@example.com","password":"secret1","name":"A","role":"owner"}`,
        `{"email":`,
    } {
        rec := call(s.e, http.MethodPost, "/api/auth/signup", "", body)
        s.Equal(http.StatusBadRequest, rec.Code, body)
        s.NotEmpty(decode(s.T(), rec)["error"], body)
    }
}

func (s *AuthSuite) TestAdminSignupNeedsFlag() {
    resp := s.signup(`{"email":"a1@example.com","password":"secret1","name":"A","role":"admin"}`)
    s.Equal(model.RolePlayer, resp["user"].(map[string]interface{})["role"])

    s.cfg.AllowAdminSignup = true
    s.mount()
    resp = s.signup(`{"email":"a2@example.com","password":"secret1","name":"B","role":"admin"}`)
    s.Equal(model.RoleAdmin, resp["user"].(map[string]interface{})["role"])
}

func (s *AuthSuite) TestRefreshRotatesToken() {
    resp := s.signup(`{"email":"r@example.com","password":"secret1","name":"R"}`)
    old := token(resp, "refresh")

    rec := call(s.e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+old+`"}`)
    s.Require().Equal(http.StatusOK, rec.Code)
    fresh := token(decode(s.T(), rec), "refresh")
    s.NotEqual(old, fresh)

    // The rotated token is revoked.
    rec = call(s.e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+old+`"}`)
    s.Equal(http.StatusUnauthorized, rec.Code)

    s.clock.Advance(8 * 24 * time.Hour)
    rec = call(s.e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+fresh+`"}`)
    s.Equal(http.StatusUnauthorized, rec.Code, "expired refresh token")

    s.Equal(http.StatusBadRequest, call(s.e, http.MethodPost, "/api/auth/refresh", "", `{}`).Code)
}

func (s *AuthSuite) TestLogout() {
    resp := s.signup(`{"email":"l@example.com","password":"secret1","name":"L"}`)
    refresh := token(resp, "refresh")
    access := token(resp, "access")

    rec := call(s.e, http.MethodPost, "/api/auth/logout", "", `{"refresh_token":"`+refresh+`"}`)
    s.Equal(http.StatusNoContent, rec.Code)
    rec = call(s.e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+refresh+`"}`)
    s.Equal(http.StatusUnauthorized, rec.Code)

    rec = call(s.e, http.MethodPost, "/api/auth/signin", "", `{"email":"l@example.com","password":"secret1"}`)
    s.Require().Equal(http.StatusOK, rec.Code)
    second := token(decode(s.T(), rec), "refresh")

    rec = call(s.e, http.MethodPost, "/api/auth/logout", "Bearer "+access, "")
    s.Equal(http.StatusNoContent, rec.Code)
    rec = call(s.e, http.MethodPost, "/api/auth/refresh", "", `{"refresh_token":"`+second+`"}`)
    s.Equal(http.StatusUnauthorized, rec.Code, "logout without a body revokes every token")

    s.Equal(http.StatusBadRequest, call(s.e, http.MethodPost, "/api/auth/logout", "", "").Code)
    s.Equal(http.StatusUnauthorized, call(s.e, http.MethodPost, "/api/auth/logout", "Bearer junk", "").Code)
}

func TestMeWithoutToken(t *testing.T) {
    e := newEcho()
    h := NewAuthHandler(config.Config{JWTSecret: testSecret}, nil, nil, nil, zerolog.Nop())
    e.GET("/api/auth/me", h.Me)
    rec := call(e, http.MethodGet, "/api/auth/me", "", "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
