package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/sports-session-scheduler/internal/handler"
	"github.com/iliyamo/sports-session-scheduler/internal/middleware"
	"github.com/iliyamo/sports-session-scheduler/internal/model"
)

// RegisterSessions registers /api/sessions.  Every route requires a
// player or admin access token.
func RegisterSessions(e *echo.Echo, h *handler.SessionHandler, jwtSecret string) {
	g := e.Group("/api/sessions",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RolePlayer, model.RoleAdmin),
	)

	g.GET("", h.List)
	g.POST("", h.Create)
	// Static segments win over :id in echo's router.
	g.GET("/my-created", h.MyCreated)
	g.GET("/my-joined", h.MyJoined)

	g.POST("/:id/join", h.Join)
	g.DELETE("/:id/leave", h.Leave)
	g.PUT("/:id/cancel", h.Cancel)
	g.DELETE("/:id", h.Delete)
	g.GET("/:id/participants", h.Participants)
}
