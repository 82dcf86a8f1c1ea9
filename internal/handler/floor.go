package handler

import (
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labstack/echo/v4"
)

// ListFloors handles GET /v1/floors.  Floors are ordered by level and
// returned without their images.
func (h *PlannerHandler) ListFloors(c echo.Context) error {
	floors, err := h.Floors.List(c.Request().Context())
	if err != nil {
		return repoError(c, "list floors", err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": floors})
}

// GetFloorImage handles GET /v1/floors/:id/image.  The bytes are served
// exactly as imported, with a content type sniffed from them.
func (h *PlannerHandler) GetFloorImage(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid floor id")
	}
	img, err := h.Floors.Image(c.Request().Context(), id)
	if err != nil {
		return repoError(c, "load floor image", err)
	}
	return c.Blob(http.StatusOK, mimetype.Detect(img).String(), img)
}

type floorPatch struct {
	Level *int    `json:"level"`
	Name  *string `json:"name"`
}

// UpdateFloor handles PATCH /v1/floors/:id.  Omitted fields keep their
// current value.
func (h *PlannerHandler) UpdateFloor(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return badRequest(c, "invalid floor id")
	}
	var body floorPatch
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	ctx := c.Request().Context()

	f, err := h.Floors.GetByID(ctx, id)
	if err != nil {
		return repoError(c, "load floor", err)
	}
	if body.Level != nil {
		f.Level = *body.Level
	}
	if body.Name != nil {
		f.Name = strings.TrimSpace(*body.Name)
	}
	if err := h.Floors.Update(ctx, id, f.Level, f.Name); err != nil {
		return repoError(c, "update floor", err)
	}
	return c.JSON(http.StatusOK, f)
}
