package profile

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"sewabarang/model"
	authsvc "sewabarang/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/users/me
func (h *Controller) Me(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	u, err := h.Svc.Profile(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, authsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("profile", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// PUT /v1/users/me
func (h *Controller) Update(c echo.Context) error {
	var req model.UpdateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	uid, _ := c.Get("user_id").(int64)

	u, err := h.Svc.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		if errors.Is(err, authsvc.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "user not found"})
		}
		h.Log.Error("profile update", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}
