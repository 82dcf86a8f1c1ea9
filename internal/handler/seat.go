package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/model"
)

type seatRequest struct {
	Name     string  `json:"name" validate:"max=255"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=0"`
	Lat1     float64 `json:"lat1"`
	Lng1     float64 `json:"lng1"`
	Lat2     float64 `json:"lat2"`
	Lng2     float64 `json:"lng2"`
}

// ListSeats handles GET /v1/floors/:id/seats.
func (h *PlannerHandler) ListSeats(c echo.Context) error {
	floorID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid floor id")
	}
	ctx := c.Request().Context()
	if _, err := h.Floors.GetByID(ctx, floorID); err != nil {
		return repoError(c, "load floor", err)
	}
	seats, err := h.Seats.ListByFloor(ctx, floorID)
	if err != nil {
		return repoError(c, "list seats", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": seats})
}

// CreateSeat handles POST /v1/floors/:id/seats.  Rectangles smaller than
// the configured minimum area are rejected as accidental clicks.  Without
// an explicit capacity the default from the settings is used.
func (h *PlannerHandler) CreateSeat(c echo.Context) error {
	floorID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid floor id")
	}
	var req seatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "capacity must not be negative and name at most 255 characters")
	}

	s := &model.Seat{
		Name:    req.Name,
		FloorID: floorID,
		Bounds:  model.Bounds{Lat1: req.Lat1, Lng1: req.Lng1, Lat2: req.Lat2, Lng2: req.Lng2},
	}
	if s.Area() < h.MinSeatArea {
		return badRequest(c, "seat area is too small")
	}
	if req.Capacity != nil {
		s.Capacity = *req.Capacity
	} else {
		s.Capacity = h.Settings.Get().DefaultSeatCapacity
	}

	if err := h.Seats.Create(c.Request().Context(), s); err != nil {
		return repoError(c, "create seat", err)
	}
	return c.JSON(http.StatusCreated, s)
}

// GetSeat handles GET /v1/seats/:id and includes the current occupancy.
func (h *PlannerHandler) GetSeat(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid seat id")
	}
	ctx := c.Request().Context()
	s, err := h.Seats.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load seat", err)
	}
	snap, err := h.Occupancy.SnapshotForFloor(ctx, s.FloorID)
	if err != nil {
		return repoError(c, "compute occupancy", err)
	}
	occ, _ := snap.Find(s.ID)
	return c.JSON(http.StatusOK, map[string]any{"seat": s, "occupancy": occ})
}

// DeleteSeat handles DELETE /v1/seats/:id.  Guests on the seat become
// unassigned.
func (h *PlannerHandler) DeleteSeat(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid seat id")
	}
	if err := h.Seats.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, "delete seat", err)
	}
	return c.NoContent(http.StatusNoContent)
}
