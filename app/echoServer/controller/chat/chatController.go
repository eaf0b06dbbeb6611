package chat

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"sewabarang/model"
	chatsvc "sewabarang/service/chat"
)

type Controller struct {
	Svc chatsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/chat
func (h *Controller) Send(c echo.Context) error {
	var req model.SendChatReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error"})
	}
	uid, _ := c.Get("user_id").(int64)

	id, err := h.Svc.Send(c.Request().Context(), uid, model.ChatFromUser, req.Body)
	if err != nil {
		if errors.Is(err, chatsvc.ErrEmptyBody) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "empty message"})
		}
		h.Log.Error("chat send", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// GET /v1/chat?after=<last seen id>
func (h *Controller) Poll(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	after, _ := strconv.ParseInt(c.QueryParam("after"), 10, 64)

	msgs, err := h.Svc.Poll(c.Request().Context(), uid, after)
	if err != nil {
		h.Log.Error("chat poll", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": msgs})
}
