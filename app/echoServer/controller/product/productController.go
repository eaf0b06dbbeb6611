package product

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"sewabarang/model"
	cs "sewabarang/service/catalog"
	"sewabarang/service/pricing"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/products
func (h *Controller) List(c echo.Context) error {
	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		h.Log.Error("product list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": items})
}

// GET /v1/products/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		h.Log.Error("product detail", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": p})
}

// GET /v1/products/:id/quote?durasi=1_hari&tambah_tv=true&metode_pengiriman=DELIVERED&start_date=2025-03-10&jumlah=2
func (h *Controller) Quote(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}

	dur, err := pricing.ParseDuration(c.QueryParam("durasi"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown duration code"})
	}
	qty, _ := strconv.ParseInt(c.QueryParam("jumlah"), 10, 64)
	sel := pricing.Selection{
		Duration:       dur,
		AddTV:          c.QueryParam("tambah_tv") == "true",
		DeliveryMethod: pricing.DeliveryMethod(c.QueryParam("metode_pengiriman")),
		StartDate:      c.QueryParam("start_date"),
		Quantity:       qty,
	}

	q, err := h.Svc.QuoteFor(c.Request().Context(), id, sel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		switch pricing.Code(err) {
		case pricing.ErrInvalidDate:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "start date missing or malformed"})
		case pricing.ErrQuantityOutOfRange:
			return c.JSON(http.StatusConflict, echo.Map{"message": "quantity out of range"})
		}
		h.Log.Error("product quote", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": q})
}

// POST /v1/products (admin)
func (h *Controller) Create(c echo.Context) error {
	var req model.CreateProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	id, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		h.Log.Error("product create", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// POST /v1/products/:id/stock (admin)
func (h *Controller) AddStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req struct {
		N int64 `json:"jumlah" validate:"required,gt=0"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	if err := h.Svc.AddStock(c.Request().Context(), id, req.N); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "product not found"})
		}
		h.Log.Error("add stock", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "stock added"})
}
