package handler

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "orderdesk/internal/application/orders"
	"orderdesk/internal/domain/order"
)

type OrderHandler struct {
	svc *app.Service
}

func NewOrderHandler(svc *app.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// ListOrders runs the selection pipeline over the cached collection.
// The status filter accepts either a numeric code or a status label.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	q := app.Query{
		Search: c.Query("search"),
		Sort:   c.Query("sort"),
	}

	if raw := c.Query("status"); raw != "" {
		code, err := parseStatusFilter(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		q.Status = &code
	}

	page := intQuery(c, "page", 1)
	pageSize := intQuery(c, "page_size", app.DefaultPageSize)

	c.JSON(http.StatusOK, h.svc.List(q, page, pageSize))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	rec, err := h.svc.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var cmd app.CreateOrderCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Create(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "order created"})
}

type updateStatusRequest struct {
	Status interface{} `json:"status" binding:"required"`
}

// UpdateOrderStatus accepts {"status": 3} or {"status": "Shipped"}.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := statusCode(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), code); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func (h *OrderHandler) RestoreOrder(c *gin.Context) {
	if err := h.svc.Restore(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order restored"})
}

func (h *OrderHandler) RefreshOrders(c *gin.Context) {
	if err := h.svc.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order list refreshed"})
}

func parseStatusFilter(raw string) (int, error) {
	if code, err := strconv.Atoi(raw); err == nil {
		return code, nil
	}
	if code, ok := order.EncodeStatusLabel(raw); ok {
		return code, nil
	}
	return 0, errors.New("unknown status filter: " + raw)
}

func statusCode(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, errors.New("status code must be an integer")
		}
		return int(t), nil
	case string:
		if code, ok := order.EncodeStatusLabel(t); ok {
			return code, nil
		}
		return 0, errors.New("unknown status label: " + t)
	default:
		return 0, errors.New("status must be a code or a label")
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, order.ErrNoResponse), errors.Is(err, order.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
