package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/model"
)

// GetOccupancy handles GET /v1/occupancy.  The optional floor_id query
// parameter restricts the snapshot to one floor.  Every seat appears,
// including empty ones.
func (h *PlannerHandler) GetOccupancy(c echo.Context) error {
	ctx := c.Request().Context()
	var (
		snap model.OccupancySnapshot
		err  error
	)
	if raw := c.QueryParam("floor_id"); raw != "" {
		floorID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || floorID <= 0 {
			return badRequest(c, "invalid floor_id")
		}
		snap, err = h.Occupancy.SnapshotForFloor(ctx, floorID)
	} else {
		snap, err = h.Occupancy.Snapshot(ctx)
	}
	if err != nil {
		return repoError(c, "compute occupancy", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": snap})
}
