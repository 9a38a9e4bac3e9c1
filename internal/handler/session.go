package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/service"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_sessions.go github.com/iliyamo/sports-session-scheduler/internal/handler SessionCommands,SessionQueries

// SessionCommands is the mutating side served by service.CapacityManager.
type SessionCommands interface {
    Create(ctx context.Context, in service.CreateSessionInput, caller model.Caller) (*model.Session, error)
    Join(ctx context.Context, sessionID uint64, caller model.Caller) error
    Leave(ctx context.Context, sessionID uint64, caller model.Caller) (bool, error)
    Cancel(ctx context.Context, sessionID uint64, caller model.Caller, reason string) (*model.Session, error)
    Delete(ctx context.Context, sessionID uint64, caller model.Caller, reason string) error
}

// SessionQueries is the read side served by service.QueryService.
type SessionQueries interface {
    ListSessions(ctx context.Context) ([]*model.Session, error)
    ListCreatedBy(ctx context.Context, userID uint64) ([]*model.Session, error)
    ListJoinedBy(ctx context.Context, userID uint64) ([]*model.Session, error)
    ListParticipants(ctx context.Context, sessionID uint64) ([]model.Participant, error)
    Stats(ctx context.Context, rng model.DateRange) (model.Stats, error)
    SportPopularity(ctx context.Context, rng model.DateRange) ([]model.SportPopularity, error)
    SessionsByDate(ctx context.Context, rng model.DateRange) ([]model.DateCount, error)
}

// SessionHandler serves /api/sessions.
type SessionHandler struct {
    Commands SessionCommands
    Queries  SessionQueries
    Log      zerolog.Logger
}

func NewSessionHandler(cmd SessionCommands, q SessionQueries, log zerolog.Logger) *SessionHandler {
    if cmd == nil || q == nil {
        panic("nil service passed to NewSessionHandler")
    }
    return &SessionHandler{Commands: cmd, Queries: q, Log: log}
}

type cancelReq struct {
    Reason string `json:"cancellation_reason"`
}

type deleteReq struct {
    Reason string `json:"deletion_reason"`
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    var in service.CreateSessionInput
    if err := bindValid(c, &in); err != nil {
        return badRequest(c, err.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    s, err := h.Commands.Create(ctx, in, caller)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, s)
}

// Join handles POST /api/sessions/:id/join.
func (h *SessionHandler) Join(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid session id")
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    if err := h.Commands.Join(ctx, id, caller); err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "successfully joined the session"})
}

// Leave handles DELETE /api/sessions/:id/leave.  Leaving a session the
// caller is not a member of succeeds with left=false.
func (h *SessionHandler) Leave(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid session id")
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    left, err := h.Commands.Leave(ctx, id, caller)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    msg := "successfully left the session"
    if !left {
        msg = "not a participant of this session"
    }
    return c.JSON(http.StatusOK, echo.Map{"message": msg, "left": left})
}

// Cancel handles PUT /api/sessions/:id/cancel.
func (h *SessionHandler) Cancel(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid session id")
    }
    var req cancelReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, errInvalidBody.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    s, err := h.Commands.Cancel(ctx, id, caller, req.Reason)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, s)
}

// Delete handles DELETE /api/sessions/:id.
func (h *SessionHandler) Delete(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid session id")
    }
    var req deleteReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, errInvalidBody.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    if err := h.Commands.Delete(ctx, id, caller, req.Reason); err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "session deleted"})
}

// List handles GET /api/sessions.
func (h *SessionHandler) List(c echo.Context) error {
    ctx, cancel := requestCtx(c)
    defer cancel()

    list, err := h.Queries.ListSessions(ctx)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, nonNil(list))
}

// MyCreated handles GET /api/sessions/my-created.
func (h *SessionHandler) MyCreated(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    list, err := h.Queries.ListCreatedBy(ctx, caller.ID)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, nonNil(list))
}

// MyJoined handles GET /api/sessions/my-joined.
func (h *SessionHandler) MyJoined(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    list, err := h.Queries.ListJoinedBy(ctx, caller.ID)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, nonNil(list))
}

// Participants handles GET /api/sessions/:id/participants.
func (h *SessionHandler) Participants(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid session id")
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    list, err := h.Queries.ListParticipants(ctx, id)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    if list == nil {
        list = []model.Participant{}
    }
    return c.JSON(http.StatusOK, list)
}

// nonNil keeps empty listings rendered as [] rather than null.
func nonNil(list []*model.Session) []*model.Session {
    if list == nil {
        return []*model.Session{}
    }
    return list
}
