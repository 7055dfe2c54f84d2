package router

import (
	"github.com/gin-gonic/gin"

	"orderdesk/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, orderHandler *handler.OrderHandler) {
	api := r.Group("/api")
	{
		api.GET("/orders", orderHandler.ListOrders)
		api.POST("/orders", orderHandler.CreateOrder)
		api.POST("/orders/refresh", orderHandler.RefreshOrders)
		api.GET("/orders/by-number/:number", orderHandler.GetOrderByNumber)
		api.GET("/orders/:id", orderHandler.GetOrder)
		api.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		api.DELETE("/orders/:id", orderHandler.DeleteOrder)
		api.POST("/orders/:id/restore", orderHandler.RestoreOrder)
	}
}
