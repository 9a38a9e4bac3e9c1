package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-session-scheduler/internal/handler"
	"github.com/iliyamo/sports-session-scheduler/internal/middleware"
	"github.com/iliyamo/sports-session-scheduler/internal/model"
)

// RegisterSports registers the sports catalogue.  Listing is open to any
// authenticated user; writes are admin only.
func RegisterSports(e *echo.Echo, h *handler.SportHandler, jwtSecret string) {
	g := e.Group("/api/sports", middleware.JWTAuth(jwtSecret))
	g.GET("", h.List)

	admin := middleware.RequireRole(model.RoleAdmin)
	g.POST("", h.Create, admin)
	g.PUT("/:id", h.Update, admin)
}

// RegisterReports registers /api/reports.  The stats summary is open to
// any authenticated user; the breakdowns are admin only.  cache, when
// non-nil, is applied after authorization so only permitted callers can
// read cached bodies.
func RegisterReports(e *echo.Echo, h *handler.ReportHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/api/reports", middleware.JWTAuth(jwtSecret))

	var cached []echo.MiddlewareFunc
	if cache != nil {
		cached = append(cached, cache)
	}
	admin := append([]echo.MiddlewareFunc{middleware.RequireRole(model.RoleAdmin)}, cached...)

	g.GET("/stats", h.Stats, cached...)
	g.GET("/sport-popularity", h.SportPopularity, admin...)
	g.GET("/sessions-by-date", h.SessionsByDate, admin...)
}
