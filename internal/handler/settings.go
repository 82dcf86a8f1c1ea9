package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// GetSettings handles GET /v1/settings.
func (h *PlannerHandler) GetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Settings.Get())
}

// UpdateSettings handles PUT /v1/settings.  Omitted fields keep their
// current value; the result is validated before it is written.
func (h *PlannerHandler) UpdateSettings(c echo.Context) error {
	s := h.Settings.Get()
	if err := c.Bind(&s); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.Validate(); err != nil {
		return badRequest(c, "invalid settings: "+err.Error())
	}
	if err := h.Settings.Update(s); err != nil {
		log.Printf("handler: write settings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "write settings failed"})
	}
	return c.JSON(http.StatusOK, h.Settings.Get())
}
