package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/seatplan/internal/model"
	"github.com/iliyamo/seatplan/internal/utils"
)

type sessionRequest struct {
	Role       string `json:"role" validate:"required,oneof=EDITOR USHER"`
	Passphrase string `json:"passphrase"`
}

// CreateSession handles POST /v1/session.  It checks the passphrase of the
// requested role against the hash kept in the store and issues a signed
// session token.  A role without a stored hash needs no passphrase.
func (h *PlannerHandler) CreateSession(c echo.Context) error {
	var req sessionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return badRequest(c, "role must be EDITOR or USHER")
	}
	ctx := c.Request().Context()

	if hash, ok := h.Store.PassphraseHash(ctx, req.Role); ok {
		if !utils.VerifyPassphrase(hash, req.Passphrase) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid passphrase"})
		}
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, h.Store.Name(ctx), req.Role, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "token issue failed"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"access_token": tok.Token,
		"expires_at":   tok.Exp,
		"role":         req.Role,
		"can_edit":     req.Role == model.RoleEditor,
	})
}
