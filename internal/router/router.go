package router // package router defines how HTTP routes are registered for the API

import (
	"context"

	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/seatplan/internal/handler"    // handlers operating on the open store
	"github.com/iliyamo/seatplan/internal/middleware" // JWT authentication, role checks and image cache
	"github.com/iliyamo/seatplan/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPlanner registers the seating API.  POST /v1/session is open and
// exchanges a role passphrase for a token.  Reads and check-in are allowed
// to every role; everything that changes the plan, including the
// settings that feed seat creation, needs EDITOR.
func RegisterPlanner(e *echo.Echo, h *handler.PlannerHandler, jwtSecret string, imageCache echo.MiddlewareFunc) {
	e.POST("/v1/session", h.CreateSession)
	auth := middleware.JWTAuth(jwtSecret, h.Store.Name(context.Background()))

	// Any valid session.
	read := e.Group("/v1", auth, middleware.RequireRole(model.RoleEditor, model.RoleUsher))
	read.GET("/store", h.GetStore)
	read.GET("/floors", h.ListFloors)
	if imageCache != nil {
		read.GET("/floors/:id/image", h.GetFloorImage, imageCache)
	} else {
		read.GET("/floors/:id/image", h.GetFloorImage)
	}
	read.GET("/floors/:id/seats", h.ListSeats)
	read.GET("/seats/:id", h.GetSeat)
	read.GET("/guests", h.ListGuests)
	read.POST("/guests/:id/checkin", h.ToggleCheckIn)
	read.PUT("/guests/:id/companions", h.SetCompanions)
	read.GET("/occupancy", h.GetOccupancy)
	read.GET("/settings", h.GetSettings)

	// Editing the plan.
	edit := e.Group("/v1", auth, middleware.RequireRole(model.RoleEditor))
	edit.PATCH("/floors/:id", h.UpdateFloor)
	edit.POST("/floors/:id/seats", h.CreateSeat)
	edit.DELETE("/seats/:id", h.DeleteSeat)
	edit.POST("/guests", h.CreateGuest)
	edit.DELETE("/guests/:id", h.DeleteGuest)
	edit.PUT("/guests/:id/seat", h.AssignSeat)
	edit.DELETE("/guests/:id/seat", h.UnassignSeat)
	edit.PUT("/settings", h.UpdateSettings)
}
