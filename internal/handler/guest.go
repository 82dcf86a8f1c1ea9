package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/model"
)

type guestRequest struct {
	FirstName        string `json:"first_name" validate:"max=255"`
	LastName         string `json:"last_name" validate:"max=255"`
	AdditionalGuests int    `json:"additional_guests" validate:"gte=0"`
}

type companionsRequest struct {
	Count int `json:"count"`
}

// ListGuests handles GET /v1/guests.  With q the guests whose first or
// last name starts with q are returned; otherwise limit and offset page
// through all guests.
func (h *PlannerHandler) ListGuests(c echo.Context) error {
	ctx := c.Request().Context()
	if q := c.QueryParam("q"); q != "" {
		guests, err := h.Guests.Search(ctx, q)
		if err != nil {
			return repoError(c, "search guests", err)
		}
		return c.JSON(http.StatusOK, map[string]any{"items": guests})
	}

	if c.QueryParam("limit") == "" {
		guests, err := h.Guests.List(ctx)
		if err != nil {
			return repoError(c, "list guests", err)
		}
		return c.JSON(http.StatusOK, map[string]any{"items": guests})
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil {
		return badRequest(c, "invalid limit")
	}
	offset := 0
	if raw := c.QueryParam("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil {
			return badRequest(c, "invalid offset")
		}
	}
	guests, err := h.Guests.ListPage(ctx, limit, offset)
	if err != nil {
		return repoError(c, "list guests", err)
	}
	total, err := h.Guests.Count(ctx)
	if err != nil {
		return repoError(c, "count guests", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": guests, "total": total, "limit": limit, "offset": offset})
}

// CreateGuest handles POST /v1/guests.
func (h *PlannerHandler) CreateGuest(c echo.Context) error {
	var req guestRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "additional_guests must not be negative and names at most 255 characters")
	}
	g := &model.Guest{FirstName: req.FirstName, LastName: req.LastName, AdditionalGuests: req.AdditionalGuests}
	if err := h.Guests.Create(c.Request().Context(), g); err != nil {
		return repoError(c, "create guest", err)
	}
	return c.JSON(http.StatusCreated, g)
}

// DeleteGuest handles DELETE /v1/guests/:id.
func (h *PlannerHandler) DeleteGuest(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid guest id")
	}
	if err := h.Guests.Delete(c.Request().Context(), id); err != nil {
		return repoError(c, "delete guest", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ToggleCheckIn handles POST /v1/guests/:id/checkin and flips the
// checked-in flag of the primary guest.
func (h *PlannerHandler) ToggleCheckIn(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid guest id")
	}
	on, err := h.Guests.ToggleCheckedIn(c.Request().Context(), id)
	if err != nil {
		return repoError(c, "toggle check-in", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": id, "checked_in": on})
}

// SetCompanions handles PUT /v1/guests/:id/companions.  The count is
// clamped to [0, additional guests].
func (h *PlannerHandler) SetCompanions(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid guest id")
	}
	var req companionsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx := c.Request().Context()

	g, err := h.Guests.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load guest", err)
	}
	n := g.ClampCompanions(req.Count)
	if err := h.Guests.UpdateCheckedInCompanions(ctx, id, n); err != nil {
		return repoError(c, "update companions", err)
	}
	g.CompanionsCheckedIn = n
	return c.JSON(http.StatusOK, g)
}
