package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/jonboulle/clockwork"
    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/sports-session-scheduler/internal/config"
    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/repository"
    "github.com/iliyamo/sports-session-scheduler/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
    Cfg    config.Config
    Users  *repository.UserRepo
    Tokens *repository.TokenRepo
    Clock  clockwork.Clock
    Log    zerolog.Logger
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, clock clockwork.Clock, log zerolog.Logger) *AuthHandler {
    if clock == nil {
        clock = clockwork.NewRealClock()
    }
    return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Clock: clock, Log: log}
}

// ----- DTOs -----

type signupReq struct {
    Email    string `json:"email" validate:"required,email"`
    Password string `json:"password" validate:"required,min=6,max=72"`
    Name     string `json:"name" validate:"required"`
    Role     string `json:"role" validate:"omitempty,oneof=admin player"`
}
type signinReq struct {
    Email    string `json:"email" validate:"required"`
    Password string `json:"password" validate:"required"`
}
type refreshReq struct {
    RefreshToken string `json:"refresh_token"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}
type userPart struct {
    ID    uint64 `json:"id"`
    Email string `json:"email"`
    Name  string `json:"name"`
    Role  string `json:"role"`
}
type authResp struct {
    User    userPart  `json:"user"`
    Access  tokenPart `json:"access"`
    Refresh tokenPart `json:"refresh"`
}

// signupRole picks the stored role; admin is honoured only when the
// deployment allows self-service admin accounts.
func (h *AuthHandler) signupRole(requested string) string {
    if strings.ToLower(strings.TrimSpace(requested)) == model.RoleAdmin && h.Cfg.AllowAdminSignup {
        return model.RoleAdmin
    }
    return model.RolePlayer
}

// issue creates an access/refresh pair for u and stores the refresh hash.
func (h *AuthHandler) issue(c echo.Context, u userPart, status int) error {
    ctx, cancel := requestCtx(c)
    defer cancel()

    now := h.Clock.Now()
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, time.Duration(h.Cfg.AccessTTLMin)*time.Minute, now)
    if err != nil {
        h.Log.Error().Err(err).Msg("issue access token")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
    }
    refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays, now)
    if err != nil {
        h.Log.Error().Err(err).Msg("issue refresh token")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
    }
    if err := h.Tokens.StoreRefresh(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
        h.Log.Error().Err(err).Uint64("user_id", u.ID).Msg("store refresh token")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save refresh failed"})
    }
    return c.JSON(status, authResp{
        User:    u,
        Access:  tokenPart{Token: access.Token, Expires: access.Exp},
        Refresh: tokenPart{Token: refresh.Raw, Expires: refresh.Exp}, // raw back to client
    })
}

// Signup creates a user and returns tokens immediately.
func (h *AuthHandler) Signup(c echo.Context) error {
    var req signupReq
    if err := bindValid(c, &req); err != nil {
        return badRequest(c, err.Error())
    }
    email := strings.ToLower(strings.TrimSpace(req.Email))
    role := h.signupRole(req.Role)

    hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
    if err != nil {
        if errors.Is(err, utils.ErrPasswordTooLong) {
            return badRequest(c, err.Error())
        }
        h.Log.Error().Err(err).Msg("hash password")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    uid, err := h.Users.Create(ctx, email, hash, req.Name, role)
    if err != nil {
        if errors.Is(err, repository.ErrEmailExists) {
            return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
        }
        h.Log.Error().Err(err).Msg("create user")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
    }
    return h.issue(c, userPart{ID: uid, Email: email, Name: strings.TrimSpace(req.Name), Role: role}, http.StatusCreated)
}

// Signin verifies the password and returns a new token pair.
func (h *AuthHandler) Signin(c echo.Context) error {
    var req signinReq
    if err := bindValid(c, &req); err != nil {
        return badRequest(c, err.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    u, err := h.Users.GetByEmail(ctx, req.Email)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
        }
        h.Log.Error().Err(err).Msg("load user by email")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
    }
    if !utils.VerifyPassword(u.PasswordHash, req.Password) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
    }
    return h.issue(c, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, http.StatusOK)
}

// Refresh validates a refresh token by hash, revokes it and issues a new
// pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
    var req refreshReq
    if err := c.Bind(&req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
        return badRequest(c, "refresh_token required")
    }
    hash := utils.HashRefreshRaw(strings.TrimSpace(req.RefreshToken))

    ctx, cancel := requestCtx(c)
    defer cancel()

    now := h.Clock.Now()
    userID, err := h.Tokens.ValidateRefresh(ctx, hash, now)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
    }
    if err := h.Tokens.RevokeByHash(ctx, hash, now); err != nil {
        h.Log.Error().Err(err).Uint64("user_id", userID).Msg("revoke rotated refresh token")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "rotate refresh failed"})
    }
    u, err := h.Users.GetByID(ctx, userID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh"})
        }
        h.Log.Error().Err(err).Uint64("user_id", userID).Msg("load user")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
    }
    return h.issue(c, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}, http.StatusOK)
}

// Logout revokes the refresh token in the body, or every refresh token of
// the bearer's user when the body carries none.  The route is public so a
// client holding only a refresh token can still end its session.
func (h *AuthHandler) Logout(c echo.Context) error {
    var req refreshReq
    _ = c.Bind(&req)
    raw := strings.TrimSpace(req.RefreshToken)

    ctx, cancel := requestCtx(c)
    defer cancel()
    now := h.Clock.Now()

    if raw != "" {
        hash := utils.HashRefreshRaw(raw)
        if _, err := h.Tokens.ValidateRefresh(ctx, hash, now); err != nil {
            return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid refresh token"})
        }
        if err := h.Tokens.RevokeByHash(ctx, hash, now); err != nil {
            h.Log.Error().Err(err).Msg("revoke refresh token")
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
        }
        return c.NoContent(http.StatusNoContent)
    }

    auth := c.Request().Header.Get(echo.HeaderAuthorization)
    if !strings.HasPrefix(auth, "Bearer ") {
        return badRequest(c, "provide Authorization header or refresh_token")
    }
    claims, err := utils.ParseAccessToken(h.Cfg.JWTSecret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    uid, _ := claims.UserID()
    if err := h.Tokens.RevokeAllForUser(ctx, uid, now); err != nil {
        h.Log.Error().Err(err).Uint64("user_id", uid).Msg("revoke all refresh tokens")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
    }
    return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    u, err := h.Users.GetByID(ctx, caller.ID)
    if err != nil {
        if errors.Is(err, repository.ErrNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
        }
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, userPart{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}
