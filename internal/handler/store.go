package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/repository"
)

// GetStore handles GET /v1/store and reports the markers and the size of
// the open store.
func (h *PlannerHandler) GetStore(c echo.Context) error {
	ctx := c.Request().Context()
	version, _ := h.Store.Version(ctx)

	floors, err := h.Floors.List(ctx)
	if err != nil {
		return repoError(c, "list floors", err)
	}
	seats, err := h.Seats.Count(ctx)
	if err != nil {
		return repoError(c, "count seats", err)
	}
	guests, err := h.Guests.Count(ctx)
	if err != nil {
		return repoError(c, "count guests", err)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"name":            h.Store.Name(ctx),
		"version":         version,
		"current_version": repository.CurrentStoreVersion,
		"valid":           h.Store.IsValid(ctx),
		"floors":          len(floors),
		"seats":           seats,
		"guests":          guests,
	})
}
