package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/service"
)

// ReportHandler serves /api/reports.  Every report accepts optional
// start_date and end_date query parameters (YYYY-MM-DD, inclusive).
type ReportHandler struct {
    Queries SessionQueries
    Log     zerolog.Logger
}

func NewReportHandler(q SessionQueries, log zerolog.Logger) *ReportHandler {
    return &ReportHandler{Queries: q, Log: log}
}

func dateRange(c echo.Context) (model.DateRange, error) {
    return service.ParseDateRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
}

// Stats handles GET /api/reports/stats.
func (h *ReportHandler) Stats(c echo.Context) error {
    rng, err := dateRange(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    st, err := h.Queries.Stats(ctx, rng)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    return c.JSON(http.StatusOK, st)
}

// SportPopularity handles GET /api/reports/sport-popularity.
func (h *ReportHandler) SportPopularity(c echo.Context) error {
    rng, err := dateRange(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    out, err := h.Queries.SportPopularity(ctx, rng)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    if out == nil {
        out = []model.SportPopularity{}
    }
    return c.JSON(http.StatusOK, out)
}

// SessionsByDate handles GET /api/reports/sessions-by-date.
func (h *ReportHandler) SessionsByDate(c echo.Context) error {
    rng, err := dateRange(c)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    ctx, cancel := requestCtx(c)
    defer cancel()

    out, err := h.Queries.SessionsByDate(ctx, rng)
    if err != nil {
        return writeError(c, h.Log, err)
    }
    if out == nil {
        out = []model.DateCount{}
    }
    return c.JSON(http.StatusOK, out)
}
