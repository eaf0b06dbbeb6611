package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"sewabarang/model"
	carts "sewabarang/service/cart"
	"sewabarang/service/pricing"
	rs "sewabarang/service/rental"
)

type Controller struct {
	Svc carts.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/cart
func (h *Controller) Add(c echo.Context) error {
	var req model.AddCartItemReq
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

	id, err := h.Svc.Add(c.Request().Context(), uid, req)
	if err != nil {
		if pricing.Code(err) == pricing.ErrInvalidDuration {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown duration code"})
		}
		if carts.Code(err) == carts.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		h.Log.Error("cart add", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/cart
func (h *Controller) List(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	totals, err := h.Svc.Totals(c.Request().Context(), uid)
	if err != nil {
		h.Log.Error("cart totals", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": totals})
}

// PUT /v1/cart/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req model.UpdateCartItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Update(c.Request().Context(), uid, id, req); err != nil {
		return h.mapCartErr(c, "cart update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "updated"})
}

// DELETE /v1/cart/:id
func (h *Controller) Remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Remove(c.Request().Context(), uid, id); err != nil {
		return h.mapCartErr(c, "cart remove", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed"})
}

// DELETE /v1/cart
func (h *Controller) Clear(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	if err := h.Svc.Clear(c.Request().Context(), uid); err != nil {
		h.Log.Error("cart clear", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

// POST /v1/cart/checkout
func (h *Controller) Checkout(c echo.Context) error {
	var req struct {
		PayerEmail string `json:"payer_email" validate:"required,email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	uid, _ := c.Get("user_id").(int64)

	created, err := h.Svc.Checkout(c.Request().Context(), uid, req.PayerEmail)
	if err != nil {
		if carts.Code(err) == carts.ErrNotFound {
			return c.JSON(http.StatusConflict, echo.Map{"message": "cart is empty"})
		}
		switch pricing.Code(err) {
		case pricing.ErrOutOfStock, pricing.ErrQuantityOutOfRange:
			return c.JSON(http.StatusConflict, echo.Map{
				"message": "a cart line is no longer available",
				"created": created,
			})
		case pricing.ErrMissingDeliveryAddress:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "delivery address missing on profile"})
		}
		if rs.Code(err) == rs.ErrNoStock {
			return c.JSON(http.StatusConflict, echo.Map{
				"message": "a cart line is no longer available",
				"created": created,
			})
		}
		h.Log.Error("cart checkout", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"data": created})
}

func (h *Controller) mapCartErr(c echo.Context, op string, err error) error {
	if pricing.Code(err) == pricing.ErrInvalidDuration {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown duration code"})
	}
	switch carts.Code(err) {
	case carts.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "cart item not found"})
	case carts.ErrNotOwner:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	}
	h.Log.Error(op, "err", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}
