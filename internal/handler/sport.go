package handler

import (
    "errors"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/repository"
)

// SportHandler serves the sports catalogue.
type SportHandler struct {
    Sports *repository.SportRepo
    Log    zerolog.Logger
}

func NewSportHandler(sports *repository.SportRepo, log zerolog.Logger) *SportHandler {
    if sports == nil {
        panic("nil repository passed to NewSportHandler")
    }
    return &SportHandler{Sports: sports, Log: log}
}

type sportReq struct {
    Name        string `json:"name" validate:"required,max=100"`
    Description string `json:"description" validate:"required"`
    MaxPlayers  int    `json:"max_players" validate:"required,min=1"`
}

// List handles GET /api/sports.  ?created_by=me limits the result to
// sports the caller created.
func (h *SportHandler) List(c echo.Context) error {
    var createdBy *uint64
    if strings.EqualFold(c.QueryParam("created_by"), "me") {
        caller, err := callerOf(c)
        if err != nil {
            return writeError(c, h.Log, err)
        }
        createdBy = &caller.ID
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    list, err := h.Sports.List(ctx, createdBy)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    if list == nil {
        list = []model.Sport{}
    }
    return c.JSON(http.StatusOK, list)
}

// Create handles POST /api/sports (admin).
func (h *SportHandler) Create(c echo.Context) error {
    caller, err := callerOf(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    var req sportReq
    if err := bindValid(c, &req); err != nil {
        return badRequest(c, err.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    sp := &model.Sport{
        Name:        strings.TrimSpace(req.Name),
        Description: strings.TrimSpace(req.Description),
        MaxPlayers:  req.MaxPlayers,
        CreatedBy:   &caller.ID,
    }
    if err := h.Sports.Create(ctx, sp); err != nil {
        if errors.Is(err, repository.ErrSportExists) {
            return badRequest(c, err.Error())
        }
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusCreated, sp)
}

// Update handles PUT /api/sports/:id (admin).
func (h *SportHandler) Update(c echo.Context) error {
    id, ok := parseID(c, "id")
    if !ok {
        return badRequest(c, "invalid sport id")
    }
    var req sportReq
    if err := bindValid(c, &req); err != nil {
        return badRequest(c, err.Error())
    }

    ctx, cancel := requestCtx(c)
    defer cancel()

    sp := &model.Sport{
        ID:          id,
        Name:        strings.TrimSpace(req.Name),
        Description: strings.TrimSpace(req.Description),
        MaxPlayers:  req.MaxPlayers,
    }
    if err := h.Sports.Update(ctx, sp); err != nil {
        switch {
        case errors.Is(err, repository.ErrNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "sport not found"})
        case errors.Is(err, repository.ErrSportExists):
            return badRequest(c, err.Error())
        }
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, sp)
}
