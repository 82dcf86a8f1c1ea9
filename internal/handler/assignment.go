package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/queue"
	"github.com/iliyamo/seatplan/internal/repository"
)

type assignRequest struct {
	SeatID int64 `json:"seat_id" validate:"required,gt=0"`
}

// AssignSeat handles PUT /v1/guests/:id/seat.  The guard either writes
// the assignment or answers 409 with the remaining and required units;
// nothing is written in that case.  A committed assignment is published
// as a seat.assigned event; publish failures are logged only.
func (h *PlannerHandler) AssignSeat(c echo.Context) error {
	guestID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid guest id")
	}
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "seat_id is required")
	}
	ctx := c.Request().Context()

	res, err := h.Assignments.Assign(ctx, guestID, req.SeatID)
	if err != nil {
		return repoError(c, "assign seat", err)
	}
	h.publishAssignment(ctx, res)
	return c.JSON(http.StatusOK, res)
}

// UnassignSeat handles DELETE /v1/guests/:id/seat.
func (h *PlannerHandler) UnassignSeat(c echo.Context) error {
	guestID, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid guest id")
	}
	if err := h.Assignments.Unassign(c.Request().Context(), guestID); err != nil {
		return repoError(c, "unassign seat", err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PlannerHandler) publishAssignment(ctx context.Context, res *repository.Assignment) {
	g, err := h.Guests.GetByID(ctx, res.GuestID)
	if err != nil {
		log.Printf("handler: skip seat.assigned event for guest %d: %v", res.GuestID, err)
		return
	}
	s, err := h.Seats.GetByID(ctx, res.SeatID)
	if err != nil {
		log.Printf("handler: skip seat.assigned event for seat %d: %v", res.SeatID, err)
		return
	}
	ev := queue.SeatAssignedEvent{
		Store:          h.Store.Name(ctx),
		GuestID:        g.ID,
		GuestName:      strings.TrimSpace(g.FirstName + " " + g.LastName),
		PartySize:      g.Party(),
		SeatID:         s.ID,
		SeatName:       s.Name,
		FloorID:        s.FloorID,
		PreviousSeatID: res.PreviousSeatID,
		Remaining:      res.Remaining,
		AssignedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publisher.PublishSeatAssigned(ctx, ev); err != nil {
		log.Printf("handler: publish seat.assigned for guest %d failed: %v", g.ID, err)
	}
}
